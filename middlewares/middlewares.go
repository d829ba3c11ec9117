package middlewares

import (
	"time"

	"github.com/gotd/contrib/middleware/floodwait"
	"github.com/gotd/contrib/middleware/ratelimit"
	"github.com/gotd/td/telegram"
	"golang.org/x/time/rate"
)

// FloodWait retries requests that hit FLOOD_WAIT, up to a bounded number
// of attempts. Suitable for the bot client where bursts are short.
func FloodWait() []telegram.Middleware {
	return []telegram.Middleware{
		floodwait.NewSimpleWaiter().WithMaxRetries(5),
	}
}

// NewDefaultMiddlewares additionally rate limits outgoing requests. The
// user client pages channel history in bulk and needs the throttle.
func NewDefaultMiddlewares() []telegram.Middleware {
	return []telegram.Middleware{
		floodwait.NewSimpleWaiter().WithMaxRetries(10),
		ratelimit.New(rate.Every(100*time.Millisecond), 5),
	}
}

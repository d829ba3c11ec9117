package userclient

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"

	"github.com/celestix/gotgproto"
	"github.com/celestix/gotgproto/ext"
	"github.com/celestix/gotgproto/sessionMaker"
	"github.com/charmbracelet/log"
	"github.com/krau/mediadex/config"
	"github.com/krau/mediadex/middlewares"
	"github.com/ncruces/go-sqlite3/gormlite"
)

var uc *UserClient

// UserClient is a regular account session. Bots cannot page channel
// history, so the backfill command runs on a user session instead.
type UserClient struct {
	TClient *gotgproto.Client
	logger  *zap.Logger
	ectx    *ext.Context
}

func (u *UserClient) GetContext() *ext.Context {
	if u.ectx == nil {
		u.ectx = u.TClient.CreateContext()
	}
	return u.ectx
}

func (u *UserClient) Close() error {
	if u.logger != nil {
		return u.logger.Sync()
	}
	return nil
}

func NewUserClient(ctx context.Context) (*UserClient, error) {
	log.FromContext(ctx).Debug("Initializing user client")
	if uc != nil {
		return uc, nil
	}
	res := make(chan struct {
		client *UserClient
		err    error
	})
	go func() {
		tclientLog := zap.New(zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(&lumberjack.Logger{
				Filename:   filepath.Join("data", "logs", "client.jsonl"),
				MaxBackups: 3,
				MaxAge:     7,
			}),
			zap.DebugLevel,
		))
		tclient, err := gotgproto.NewClient(
			config.C.AppID,
			config.C.AppHash,
			gotgproto.ClientTypePhone(config.C.Phone),
			&gotgproto.ClientOpts{
				Session:          sessionMaker.SqlSession(gormlite.Open("data/session_user.db")),
				Logger:           tclientLog,
				Context:          ctx,
				DisableCopyright: true,
				Middlewares:      middlewares.NewDefaultMiddlewares(),
			},
		)
		res <- struct {
			client *UserClient
			err    error
		}{&UserClient{TClient: tclient, logger: tclientLog}, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-res:
		if r.err != nil {
			return nil, r.err
		}
		uc = r.client
		return uc, nil
	}
}

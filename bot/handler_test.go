package bot

import (
	"testing"

	"github.com/krau/mediadex/config"
)

func TestCommandAccess(t *testing.T) {
	adminOnly := make(map[string]bool, len(botCommands))
	for _, cmd := range botCommands {
		if _, dup := adminOnly[cmd.Name]; dup {
			t.Errorf("Command %q registered twice", cmd.Name)
		}
		adminOnly[cmd.Name] = cmd.AdminOnly
		if cmd.Handler == nil {
			t.Errorf("Command %q has no handler", cmd.Name)
		}
	}

	for _, name := range []string{"start", "help", "search", "total"} {
		only, ok := adminOnly[name]
		if !ok {
			t.Errorf("Command %q not registered", name)
			continue
		}
		if only {
			t.Errorf("Command %q should be open to everyone", name)
		}
	}
	for _, name := range []string{"channel", "logger", "del", "add", "rm", "ls"} {
		only, ok := adminOnly[name]
		if !ok {
			t.Errorf("Command %q not registered", name)
			continue
		}
		if !only {
			t.Errorf("Command %q should be admin only", name)
		}
	}
}

func TestCheckInlineAllowed(t *testing.T) {
	oldAuth, oldAdmins := config.C.AuthUsers, config.C.Admins
	defer func() {
		config.C.AuthUsers, config.C.Admins = oldAuth, oldAdmins
	}()

	config.C.AuthUsers = nil
	config.C.Admins = []int64{1}
	if !CheckInlineAllowed(42) {
		t.Error("Empty auth_users should allow everyone")
	}

	config.C.AuthUsers = []int64{42}
	if !CheckInlineAllowed(42) {
		t.Error("Listed user should be allowed")
	}
	if CheckInlineAllowed(43) {
		t.Error("Unlisted user should be rejected")
	}
	if !CheckInlineAllowed(1) {
		t.Error("Admins should always be allowed")
	}
}

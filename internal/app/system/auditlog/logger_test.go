package auditlog_test

import (
	"testing"

	"github.com/dalemusser/tujitume/internal/app/store/audit"
	"github.com/dalemusser/tujitume/internal/app/system/auditlog"
	"github.com/dalemusser/tujitume/internal/domain/models"
	"github.com/dalemusser/tujitume/internal/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var admin = models.AdminUser{ID: "u1", Email: "admin@tujitume.org", Name: "Admin", Role: models.RoleSuperAdmin}

func TestLogger_NilLogger(t *testing.T) {
	// nil logger should be a no-op (not panic)
	var logger *auditlog.Logger
	ctx, cancel := testutil.TestContext()
	defer cancel()

	logger.Log(ctx, audit.Event{EventType: "test"})
	logger.LoginSuccess(ctx, admin)
	logger.Logout(ctx, admin)
}

func TestLogger_Destinations(t *testing.T) {
	tests := []struct {
		setting    string
		wantStored int
		wantZap    int
	}{
		{"off", 0, 0},
		{"db", 1, 0},
		{"log", 0, 1},
		{"all", 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.setting, func(t *testing.T) {
			ctx, cancel := testutil.TestContext()
			defer cancel()
			store := audit.New(testutil.SetupTestSlots(t))
			core, logs := observer.New(zap.InfoLevel)
			logger := auditlog.New(store, zap.New(core), auditlog.Config{Auth: tt.setting, Admin: tt.setting})

			logger.LoginSuccess(ctx, admin)

			events, err := store.GetByUser(ctx, admin.ID, 10)
			if err != nil {
				t.Fatalf("GetByUser failed: %v", err)
			}
			if len(events) != tt.wantStored {
				t.Errorf("stored: got %d, want %d", len(events), tt.wantStored)
			}
			if got := logs.FilterMessage("audit event").Len(); got != tt.wantZap {
				t.Errorf("zap entries: got %d, want %d", got, tt.wantZap)
			}
		})
	}
}

func TestLogger_LoginFailed(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()
	store := audit.New(testutil.SetupTestSlots(t))
	logger := auditlog.New(store, zap.NewNop(), auditlog.Config{Auth: "db"})

	logger.LoginFailed(ctx, "unknown@example.com")

	events, err := store.GetRecent(ctx, 10)
	if err != nil {
		t.Fatalf("GetRecent failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	event := events[0]
	if event.EventType != audit.EventLoginFailed {
		t.Errorf("EventType: got %q, want %q", event.EventType, audit.EventLoginFailed)
	}
	if event.Success {
		t.Error("expected Success to be false")
	}
	if event.Details["attempted_email"] != "unknown@example.com" {
		t.Errorf("attempted_email: got %q, want %q", event.Details["attempted_email"], "unknown@example.com")
	}
}

func TestLogger_RecordChanged(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()
	store := audit.New(testutil.SetupTestSlots(t))
	logger := auditlog.New(store, zap.NewNop(), auditlog.Config{Auth: "off", Admin: "db"})

	logger.RecordChanged(ctx, admin, audit.EventRecordDeleted, "team", "missing", false)

	events, err := store.Query(ctx, audit.QueryFilter{Category: audit.CategoryAdmin})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].ActorID != admin.ID {
		t.Errorf("ActorID: got %q, want %q", events[0].ActorID, admin.ID)
	}
	if events[0].FailureReason != "record not found" {
		t.Errorf("FailureReason: got %q, want %q", events[0].FailureReason, "record not found")
	}
}

func TestParseConfig(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"all", "all"},
		{" DB ", "db"},
		{"log", "log"},
		{"off", "off"},
		{"", "all"},
		{"verbose", "all"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := auditlog.ParseConfig(tt.in)
			if got.Auth != tt.want || got.Admin != tt.want {
				t.Errorf("ParseConfig(%q): got %+v, want %q for both", tt.in, got, tt.want)
			}
		})
	}
}

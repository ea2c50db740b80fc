// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"strings"

	"github.com/dalemusser/tujitume/internal/app/store/audit"
	"github.com/dalemusser/tujitume/internal/domain/models"
	"go.uber.org/zap"
)

// Config holds audit logging configuration.
type Config struct {
	// Auth controls logging for login, logout and session events.
	// Values: "all" (slot + zap), "db" (slot only), "log" (zap only), "off" (disabled)
	Auth string
	// Admin controls logging for content, directory and submission changes.
	Admin string
}

// ParseConfig builds a Config applying one setting to both categories.
// Unknown values fall back to "all".
func ParseConfig(setting string) Config {
	v := strings.ToLower(strings.TrimSpace(setting))
	switch v {
	case "all", "db", "log", "off":
	default:
		v = "all"
	}
	return Config{Auth: v, Admin: v}
}

// Logger records audit events to the audit store and to zap.
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	if zapLog == nil {
		zapLog = zap.NewNop()
	}
	return &Logger{
		store:  store,
		zapLog: zapLog,
		config: config,
	}
}

func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
	}
	if event.UserID != "" {
		fields = append(fields, zap.String("user_id", event.UserID))
	}
	if event.ActorID != "" {
		fields = append(fields, zap.String("actor_id", event.ActorID))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records an audit event based on configuration.
// A nil Logger is a no-op.
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	var setting string
	switch event.Category {
	case audit.CategoryAuth:
		setting = l.config.Auth
	case audit.CategoryAdmin:
		setting = l.config.Admin
	default:
		setting = "all"
	}

	if setting == "off" {
		return
	}
	if setting == "all" || setting == "log" {
		l.logToZap(event)
	}
	if (setting == "all" || setting == "db") && l.store != nil {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

// --- Authentication Events ---

// LoginSuccess logs a successful admin login.
func (l *Logger) LoginSuccess(ctx context.Context, user models.AdminUser) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLoginSuccess,
		UserID:    user.ID,
		Success:   true,
		Details: map[string]string{
			"email": user.Email,
			"role":  string(user.Role),
		},
	})
}

// LoginFailed logs a rejected login. The reason stays in the audit trail
// and is never shown to the caller.
func (l *Logger) LoginFailed(ctx context.Context, attemptedEmail string) {
	l.Log(ctx, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventLoginFailed,
		Success:       false,
		FailureReason: "invalid credentials",
		Details: map[string]string{
			"attempted_email": attemptedEmail,
		},
	})
}

// LoginFailedRateLimit logs a login refused by the attempt limiter.
func (l *Logger) LoginFailedRateLimit(ctx context.Context, attemptedEmail string) {
	l.Log(ctx, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventLoginFailedRateLimit,
		Success:       false,
		FailureReason: "rate limit exceeded",
		Details: map[string]string{
			"attempted_email": attemptedEmail,
		},
	})
}

// Logout logs an admin logout.
func (l *Logger) Logout(ctx context.Context, user models.AdminUser) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLogout,
		UserID:    user.ID,
		Success:   true,
	})
}

// SessionRestored logs a persisted session accepted at startup.
func (l *Logger) SessionRestored(ctx context.Context, user models.AdminUser) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventSessionRestored,
		UserID:    user.ID,
		Success:   true,
	})
}

// SessionCleared logs a persisted session discarded at startup.
func (l *Logger) SessionCleared(ctx context.Context, reason string) {
	l.Log(ctx, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventSessionCleared,
		Success:       false,
		FailureReason: reason,
	})
}

// --- Admin Events ---

// RecordChanged logs a create, update or delete of a content record.
// eventType is one of audit.EventRecordCreated, EventRecordUpdated or
// EventRecordDeleted.
func (l *Logger) RecordChanged(ctx context.Context, actor models.AdminUser, eventType, aggregate, recordID string, found bool) {
	e := audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: eventType,
		ActorID:   actor.ID,
		Success:   found,
		Details: map[string]string{
			"aggregate":  aggregate,
			"record_id":  recordID,
			"actor_role": string(actor.Role),
		},
	}
	if !found {
		e.FailureReason = "record not found"
	}
	l.Log(ctx, e)
}

// SettingsUpdated logs a change to the site settings.
func (l *Logger) SettingsUpdated(ctx context.Context, actor models.AdminUser, fieldsChanged string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: audit.EventSettingsUpdated,
		ActorID:   actor.ID,
		Success:   true,
		Details: map[string]string{
			"fields_changed": fieldsChanged,
		},
	})
}

// ExpertChanged logs a directory change. eventType is one of
// audit.EventExpertAdded, EventExpertRemoved or EventExpertVerifiedToggled.
func (l *Logger) ExpertChanged(ctx context.Context, actor models.AdminUser, eventType, expertID string, found bool) {
	e := audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: eventType,
		ActorID:   actor.ID,
		Success:   found,
		Details: map[string]string{
			"expert_id": expertID,
		},
	}
	if !found {
		e.FailureReason = "listing not found"
	}
	l.Log(ctx, e)
}

// SubmissionStatusUpdated logs an admin review of a form submission. An
// empty failure means the review was stored.
func (l *Logger) SubmissionStatusUpdated(ctx context.Context, actor models.AdminUser, submissionID string, status models.SubmissionStatus, failure string) {
	l.Log(ctx, audit.Event{
		Category:      audit.CategoryAdmin,
		EventType:     audit.EventSubmissionStatusUpdated,
		ActorID:       actor.ID,
		Success:       failure == "",
		FailureReason: failure,
		Details: map[string]string{
			"submission_id": submissionID,
			"status":        string(status),
		},
	})
}

// ContentImported logs a full content restore.
func (l *Logger) ContentImported(ctx context.Context, actor models.AdminUser, source string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: audit.EventContentImported,
		ActorID:   actor.ID,
		Success:   true,
		Details: map[string]string{
			"source": source,
		},
	})
}

// MediaUploaded logs a stored image.
func (l *Logger) MediaUploaded(ctx context.Context, actor models.AdminUser, ref string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: audit.EventMediaUploaded,
		ActorID:   actor.ID,
		Success:   true,
		Details: map[string]string{
			"ref": ref,
		},
	})
}

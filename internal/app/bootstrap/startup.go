// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/tujitume/internal/app/store/audit"
	"github.com/dalemusser/tujitume/internal/app/store/content"
	"github.com/dalemusser/tujitume/internal/app/store/directory"
	"github.com/dalemusser/tujitume/internal/app/store/media"
	"github.com/dalemusser/tujitume/internal/app/store/slots"
	"github.com/dalemusser/tujitume/internal/app/store/submissions"
	"github.com/dalemusser/tujitume/internal/app/system/auditlog"
	"github.com/dalemusser/tujitume/internal/app/system/auth"
	"github.com/dalemusser/tujitume/internal/app/system/forms"
	"github.com/dalemusser/tujitume/internal/app/system/mailer"
	"github.com/dalemusser/tujitume/internal/app/system/metrics"
	"github.com/dalemusser/tujitume/internal/app/system/ratelimit"
	"go.uber.org/zap"
)

// ConnectSlots opens the configured slot backend.
func ConnectSlots(ctx context.Context, cfg AppConfig, logger *zap.Logger) (slots.Store, error) {
	st, err := slots.Open(ctx, slots.Config{
		Backend:       cfg.SlotBackend,
		BoltPath:      cfg.BoltPath,
		SQLitePath:    cfg.SQLitePath,
		PostgresDSN:   cfg.PostgresDSN,
		MongoURI:      cfg.MongoURI,
		MongoDatabase: cfg.MongoDatabase,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("open %s slots: %w", cfg.SlotBackend, err)
	}
	logger.Debug("slot store ready", zap.String("backend", cfg.SlotBackend))
	return st, nil
}

// Startup builds every store and service on top of st and loads persisted
// state. The content and directory stores are attached; the session is
// restored.
func Startup(ctx context.Context, cfg AppConfig, st slots.Store, logger *zap.Logger) (*Deps, error) {
	m := metrics.New()

	auditStore := audit.New(st)
	auditLog := auditlog.New(auditStore, logger, auditlog.ParseConfig(cfg.AuditLog))

	accounts, err := auth.DefaultAccounts()
	if err != nil {
		return nil, fmt.Errorf("build admin accounts: %w", err)
	}
	provider, err := auth.NewStaticProvider(cfg.SessionKey, auth.DefaultTokenTTL, accounts)
	if err != nil {
		return nil, err
	}
	session := auth.NewManager(st, provider, logger,
		auth.WithAudit(auditLog),
		auth.WithMetrics(m),
		auth.WithLimiter(ratelimit.NewLoginLimiter(cfg.LoginRatePerMinute)),
	)

	mediaStore, err := media.Open(ctx, media.Config{
		Type:       cfg.StorageType,
		LocalPath:  cfg.StorageLocalPath,
		LocalURL:   cfg.StorageLocalURL,
		S3Region:   cfg.StorageS3Region,
		S3Bucket:   cfg.StorageS3Bucket,
		S3Prefix:   cfg.StorageS3Prefix,
		S3Endpoint: cfg.StorageS3Endpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("open media storage: %w", err)
	}

	contentStore := content.New(st, logger, content.WithMetrics(m))
	contentStore.Init(ctx)
	dir := directory.New(st, logger, directory.WithMetrics(m))
	dir.Init(ctx)
	session.Init(ctx)

	subs := submissions.New(st, logger)
	sender := mailer.NewMockSender(cfg.MailMockDelay, logger, mailer.WithFrom(cfg.MailFrom, cfg.MailFromName))
	gateway := forms.New(subs, sender, logger,
		forms.WithMetrics(m),
		forms.WithAudit(auditLog),
		forms.WithNotifyTo(cfg.AdminEmail),
		forms.WithSiteName(contentStore.SiteSettings().OrganizationName),
	)

	return &Deps{
		Config:      cfg,
		Log:         logger,
		Metrics:     m,
		Slots:       st,
		Content:     contentStore,
		Directory:   dir,
		Submissions: subs,
		Audit:       auditStore,
		AuditLog:    auditLog,
		Session:     session,
		Mailer:      sender,
		Forms:       gateway,
		Media:       mediaStore,
	}, nil
}

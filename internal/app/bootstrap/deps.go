// internal/app/bootstrap/deps.go
package bootstrap

import (
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
	"go.uber.org/zap"
)

// Deps holds everything built by Startup. Commands use it to reach the
// stores; Shutdown releases it.
type Deps struct {
	Config AppConfig
	Log    *zap.Logger

	Metrics *metrics.Metrics
	Slots   slots.Store

	Content     *content.Store
	Directory   *directory.Store
	Submissions *submissions.Store
	Audit       *audit.Store
	AuditLog    *auditlog.Logger
	Session     *auth.Manager
	Mailer      mailer.Sender
	Forms       *forms.Gateway
	Media       media.Store
}

// internal/app/system/forms/gateway.go
package forms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/dalemusser/tujitume/internal/app/store/submissions"
	"github.com/dalemusser/tujitume/internal/app/system/auditlog"
	"github.com/dalemusser/tujitume/internal/app/system/htmlsanitize"
	"github.com/dalemusser/tujitume/internal/app/system/inputval"
	"github.com/dalemusser/tujitume/internal/app/system/mailer"
	"github.com/dalemusser/tujitume/internal/app/system/metrics"
	"github.com/dalemusser/tujitume/internal/domain/models"
	"go.uber.org/zap"
)

// Response messages.
const (
	MsgInvalid     = "Please correct the highlighted fields and try again."
	MsgFailure     = "Sorry, we could not submit your form right now. Please try again later."
	MsgUnknownForm = "Unknown form type"
	msgBadValue    = "Please enter a valid value"
)

// DefaultNotifyTo receives admin notifications when none is configured.
const DefaultNotifyTo = "info@tujitume.org"

// Response is the outcome of Submit. Errors maps JSON field paths to
// messages and is set only for validation failures.
type Response struct {
	Success      bool              `json:"success"`
	SubmissionID string            `json:"submissionId,omitempty"`
	Message      string            `json:"message"`
	Errors       map[string]string `json:"errors,omitempty"`
}

// Gateway validates public form payloads, stores them and sends the
// admin notification and submitter confirmation.
type Gateway struct {
	store    *submissions.Store
	sender   mailer.Sender
	log      *zap.Logger
	metrics  *metrics.Metrics
	audit    *auditlog.Logger
	notifyTo string
	siteName string
	now      func() time.Time
}

type Option func(*Gateway)

func WithMetrics(m *metrics.Metrics) Option { return func(g *Gateway) { g.metrics = m } }
func WithAudit(a *auditlog.Logger) Option { return func(g *Gateway) { g.audit = a } }
func WithClock(now func() time.Time) Option { return func(g *Gateway) { g.now = now } }

// WithNotifyTo sets the admin notification address. Empty keeps the default.
func WithNotifyTo(addr string) Option {
	return func(g *Gateway) {
		if addr != "" {
			g.notifyTo = addr
		}
	}
}

// WithSiteName sets the organization name used in emails.
func WithSiteName(name string) Option {
	return func(g *Gateway) {
		if name != "" {
			g.siteName = name
		}
	}
}

func New(store *submissions.Store, sender mailer.Sender, logger *zap.Logger, opts ...Option) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Gateway{
		store:    store,
		sender:   sender,
		log:      logger,
		notifyTo: DefaultNotifyTo,
		siteName: models.DefaultOrganizationName,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Submit validates data for formType. A valid payload is stored with status
// pending and the notifications are sent. Submit never panics and never
// returns an error: every failure is reported in the Response.
func (g *Gateway) Submit(ctx context.Context, formType models.FormType, data map[string]any) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			g.log.Error("form submission panicked",
				zap.String("form_type", string(formType)),
				zap.Any("panic", r),
			)
			g.metrics.Submission(string(formType), "error")
			resp = Response{Message: MsgFailure}
		}
	}()

	e, ok := catalog[formType]
	if !ok {
		g.metrics.Submission("unknown", "invalid")
		return Response{Message: MsgInvalid, Errors: map[string]string{"formType": MsgUnknownForm}}
	}

	clean, _ := cleanValue(data).(map[string]any)
	if clean == nil {
		clean = map[string]any{}
	}
	f := e.new()
	if res := decodeAndValidate(clean, f); res.HasErrors() {
		g.metrics.Submission(string(formType), "invalid")
		return Response{Message: MsgInvalid, Errors: res.Map()}
	}

	sub := models.FormSubmission{
		ID:          models.NewID(),
		FormType:    formType,
		Data:        clean,
		SubmittedAt: g.now().UTC(),
		Status:      models.SubmissionPending,
	}
	if err := g.store.Append(ctx, sub); err != nil {
		g.log.Error("store form submission", zap.String("form_type", string(formType)), zap.Error(err))
		g.metrics.Submission(string(formType), "error")
		return Response{Message: MsgFailure}
	}

	g.notify(ctx, e, f, sub)
	g.metrics.Submission(string(formType), "success")
	g.log.Info("form submitted",
		zap.String("form_type", string(formType)),
		zap.String("submission_id", sub.ID),
	)
	return Response{Success: true, SubmissionID: sub.ID, Message: e.success}
}

// decodeAndValidate fills f from data. Values of the wrong JSON type are
// reported against their field and validation still runs on the rest.
func decodeAndValidate(data map[string]any, f form) *inputval.Result {
	res := &inputval.Result{}
	raw, err := json.Marshal(data)
	if err != nil {
		res.Add("form", "decode", msgBadValue)
		return res
	}
	if err := json.Unmarshal(raw, f); err != nil {
		var te *json.UnmarshalTypeError
		if !errors.As(err, &te) || te.Field == "" {
			res.Add("form", "decode", msgBadValue)
			return res
		}
		res.Add(te.Field, "type", msgBadValue)
	}
	res.Errors = append(res.Errors, inputval.Validate(f).Errors...)
	if c, ok := f.(extraChecker); ok {
		c.check(res)
	}
	return res
}

// cleanValue trims strings and strips markup, recursing into maps and lists.
func cleanValue(v any) any {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(htmlsanitize.StripTags(x))
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = cleanValue(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = cleanValue(e)
		}
		return out
	case []string:
		out := make([]string, len(x))
		for i, e := range x {
			out[i] = strings.TrimSpace(htmlsanitize.StripTags(e))
		}
		return out
	default:
		return v
	}
}

func (g *Gateway) notify(ctx context.Context, e entry, f form, sub models.FormSubmission) {
	name, email := f.sender()
	data := mailer.NotificationData{
		SiteName:     g.siteName,
		FormLabel:    e.label,
		SubmissionID: sub.ID,
		SubmittedAt:  sub.SubmittedAt.Format("2006-01-02 15:04 MST"),
		Name:         name,
		Fields:       notificationFields(sub.Data),
	}

	admin := mailer.BuildAdminNotification(data)
	admin.To = g.notifyTo
	g.send(ctx, "admin", admin)

	if email == "" {
		return
	}
	confirm := mailer.BuildConfirmation(data)
	confirm.To = email
	g.send(ctx, "confirmation", confirm)
}

func (g *Gateway) send(ctx context.Context, kind string, msg mailer.Email) {
	if g.sender == nil {
		return
	}
	if err := g.sender.Send(ctx, msg); err != nil {
		g.log.Warn("send form notification", zap.String("kind", kind), zap.Error(err))
		g.metrics.Notification(kind, "failure")
		return
	}
	g.metrics.Notification(kind, "success")
}

// notificationFields lists data in key order with readable labels.
func notificationFields(data map[string]any) []mailer.Field {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]mailer.Field, 0, len(keys))
	for _, k := range keys {
		out = append(out, mailer.Field{Label: humanize(k), Value: formatValue(data[k])})
	}
	return out
}

// humanize turns "numberOfParticipants" into "Number of participants".
func humanize(key string) string {
	var b strings.Builder
	for i, r := range key {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte(' ')
			r = unicode.ToLower(r)
		}
		if i == 0 {
			r = unicode.ToUpper(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []string:
		return strings.Join(x, ", ")
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = formatValue(e)
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		fields := notificationFields(x)
		parts := make([]string, len(fields))
		for i, f := range fields {
			parts[i] = f.Label + ": " + f.Value
		}
		return strings.Join(parts, "; ")
	default:
		return fmt.Sprint(x)
	}
}

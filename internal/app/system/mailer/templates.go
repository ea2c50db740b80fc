// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"
	texttemplate "text/template"

	"github.com/dalemusser/tujitume/internal/app/system/htmlsanitize"
)

// Field is one labelled value shown in a notification.
type Field struct {
	Label string
	Value string
}

// NotificationData describes a stored form submission.
type NotificationData struct {
	SiteName     string
	FormLabel    string // e.g. "Volunteer application"
	SubmissionID string
	SubmittedAt  string
	Name         string // submitter, may be empty
	Fields       []Field
}

// BuildAdminNotification tells the organization about a new submission.
// The caller sets To.
func BuildAdminNotification(data NotificationData) Email {
	return Email{
		Subject:  fmt.Sprintf("[%s] New %s (%s)", data.SiteName, strings.ToLower(data.FormLabel), data.SubmissionID),
		TextBody: render(adminText, data),
		HTMLBody: render(adminHTML, data),
	}
}

// BuildConfirmation acknowledges a submission to the person who sent it.
// The caller sets To.
func BuildConfirmation(data NotificationData) Email {
	return Email{
		Subject:  fmt.Sprintf("We received your %s", strings.ToLower(data.FormLabel)),
		TextBody: render(confirmText, data),
		HTMLBody: render(confirmHTML, data),
	}
}

type executor interface {
	Execute(w io.Writer, data any) error
}

func render(t executor, data NotificationData) string {
	var buf bytes.Buffer
	_ = t.Execute(&buf, data)
	return buf.String()
}

var funcs = template.FuncMap{"display": htmlsanitize.PrepareForDisplay}

var (
	adminText = texttemplate.Must(texttemplate.New("admin.txt").Parse(`A new {{.FormLabel}} was submitted on {{.SiteName}}.

Submission ID: {{.SubmissionID}}
Received: {{.SubmittedAt}}
{{range .Fields}}
{{.Label}}: {{.Value}}{{end}}
`))

	confirmText = texttemplate.Must(texttemplate.New("confirm.txt").Parse(`{{if .Name}}Dear {{.Name}},{{else}}Hello,{{end}}

Thank you for contacting {{.SiteName}}. We have received your {{.FormLabel}} and a member of our team will get back to you soon.

Your reference number is {{.SubmissionID}}.

{{.SiteName}}
`))

	adminHTML = template.Must(template.New("admin.html").Funcs(funcs).Parse(layoutHead + `
              <p style="margin: 0 0 16px; font-size: 16px; color: #374151;">A new <strong>{{.FormLabel}}</strong> was submitted.</p>
              <p style="margin: 0 0 24px; font-size: 13px; color: #6b7280;">Submission {{.SubmissionID}} &middot; {{.SubmittedAt}}</p>
              <table role="presentation" width="100%" cellspacing="0" cellpadding="0">
                {{range .Fields}}
                <tr>
                  <td style="padding: 8px 12px 8px 0; font-size: 14px; font-weight: 600; color: #374151; vertical-align: top; white-space: nowrap;">{{.Label}}</td>
                  <td style="padding: 8px 0; font-size: 14px; color: #374151;">{{display .Value}}</td>
                </tr>
                {{end}}
              </table>` + layoutFoot))

	confirmHTML = template.Must(template.New("confirm.html").Funcs(funcs).Parse(layoutHead + `
              <p style="margin: 0 0 16px; font-size: 16px; color: #374151;">{{if .Name}}Dear {{.Name}},{{else}}Hello,{{end}}</p>
              <p style="margin: 0 0 16px; font-size: 16px; color: #374151; line-height: 1.5;">
                Thank you for contacting {{.SiteName}}. We have received your {{.FormLabel}} and a member of our team will get back to you soon.
              </p>
              <p style="margin: 0; font-size: 14px; color: #6b7280;">Your reference number is <strong>{{.SubmissionID}}</strong>.</p>` + layoutFoot))
)

const layoutHead = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.SiteName}}</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f3f4f6;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 560px; background-color: #ffffff; border-radius: 8px;">
          <tr>
            <td style="padding: 24px 32px; text-align: center; border-bottom: 1px solid #e5e7eb;">
              <h1 style="margin: 0; font-size: 22px; font-weight: 600; color: #15803d;">{{.SiteName}}</h1>
            </td>
          </tr>
          <tr>
            <td style="padding: 32px;">`

const layoutFoot = `
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`

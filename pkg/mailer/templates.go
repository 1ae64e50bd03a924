package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

var otpTemplate = template.Must(template.New(TemplateOTPCode).Parse(`
<div style="font-family: Arial, sans-serif; padding: 20px;">
  <h2>Welcome to Rewear!</h2>
  <p>Your verification code is:</p>
  <h1 style="color: #4CAF50; font-size: 32px;">{{.Code}}</h1>
  <p>This code expires in {{.ExpiresIn}}.</p>
  <p>If you didn't request this, please ignore this email.</p>
</div>`))

var itemRedeemedTemplate = template.Must(template.New(TemplateItemRedeemed).Parse(`
<div style="font-family: Arial, sans-serif; padding: 20px;">
  <h2>Your item was redeemed</h2>
  <p>{{.ItemTitle}} has been redeemed by another member.</p>
  <p>{{.Points}} points were credited to your account. Your balance is now {{.Balance}} points.</p>
</div>`))

// Render produces subject and HTML body for a known template name.
func Render(name string, data map[string]any) (subject, html string, err error) {
	var tpl *template.Template
	switch name {
	case TemplateOTPCode:
		tpl = otpTemplate
		subject = "Your Rewear verification code"
	case TemplateItemRedeemed:
		tpl = itemRedeemedTemplate
		subject = "Your Rewear item was redeemed"
	default:
		return "", "", fmt.Errorf("unknown email template %q", name)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", "", err
	}
	return subject, buf.String(), nil
}

package delivery

import (
	"bytes"
	"fmt"
	"html/template"
)

// Notice subjects.
const (
	subjectVerification    = "Verify Your Email - FRENTAL"
	subjectPasswordReset   = "Reset Your Password - FRENTAL"
	subjectPasswordChanged = "Password Changed Successfully - FRENTAL"
)

var (
	verificationTmpl = template.Must(template.New("verification").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="text-align: center; margin-bottom: 30px;">
    <h1 style="color: #0ea5e9; margin: 0; font-size: 28px;">FRENTAL</h1>
    <p style="color: #666; margin: 5px 0 0 0; font-size: 16px;">Property Management</p>
  </div>
  <h2 style="color: #333; text-align: center;">Verify Your Email</h2>
  <p>Hello <strong style="color: #0ea5e9;">{{.Name}}</strong>,</p>
  <p>Welcome to FRENTAL! Use the verification code below to complete your registration:</p>
  <div style="text-align: center; margin: 40px 0;">
    <div style="background: #0ea5e9; color: white; padding: 25px; border-radius: 12px; font-size: 36px; font-weight: bold; letter-spacing: 8px; display: inline-block;">{{.Code}}</div>
  </div>
  <p style="color: #856404; text-align: center; font-size: 14px;">This code expires in 24 hours. If you didn't request this, please ignore this email.</p>
</body>
</html>`))

	passwordResetTmpl = template.Must(template.New("reset").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="text-align: center; margin-bottom: 30px;">
    <h1 style="color: #0ea5e9; margin: 0; font-size: 28px;">FRENTAL</h1>
  </div>
  <h2 style="color: #333; text-align: center;">Password Reset</h2>
  <p>Hello <strong style="color: #0ea5e9;">{{.Name}}</strong>,</p>
  <p>You requested to reset your password. Use the code below:</p>
  <div style="text-align: center; margin: 40px 0;">
    <div style="background: #dc2626; color: white; padding: 20px; border-radius: 10px; font-size: 32px; font-weight: bold; letter-spacing: 5px; display: inline-block;">{{.Code}}</div>
  </div>
  <p style="color: #dc2626; text-align: center; font-size: 14px;">This code expires in 1 hour. If you didn't request this, please secure your account.</p>
</body>
</html>`))

	passwordChangedTmpl = template.Must(template.New("changed").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="text-align: center; margin-bottom: 30px;">
    <h1 style="color: #0ea5e9; margin: 0; font-size: 28px;">FRENTAL</h1>
  </div>
  <h2 style="color: #16a34a; text-align: center;">Password Updated</h2>
  <p>Hello <strong style="color: #0ea5e9;">{{.Name}}</strong>,</p>
  <p>Your FRENTAL password has been changed successfully.</p>
  <p style="color: #166534; text-align: center; font-size: 14px;">If you didn't make this change, contact support immediately.</p>
</body>
</html>`))
)

type noticeData struct {
	Name string
	Code string
}

func renderNotice(t *template.Template, data noticeData) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s template: %w", t.Name(), err)
	}
	return buf.String(), nil
}

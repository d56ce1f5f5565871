package service

import (
	"bytes"
	"fmt"
	"html/template"
	"mime"
	"net/smtp"
	"strings"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	FromName string
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailService sends HTML mail through SMTP
type EmailService struct {
	config EmailConfig
	server string
	auth   smtp.Auth
	send   sendFunc
}

func NewEmailService(config EmailConfig) *EmailService {
	var auth smtp.Auth
	if config.Username != "" {
		auth = smtp.PlainAuth("", config.Username, config.Password, config.Host)
	}

	return &EmailService{
		config: config,
		server: config.Host + ":" + config.Port,
		auth:   auth,
		send:   smtp.SendMail,
	}
}

// IsConfigured returns true if email is configured
func (s *EmailService) IsConfigured() bool {
	return s != nil && s.config.Host != "" && s.config.Port != "" && s.config.From != ""
}

func (s *EmailService) SendHTMLEmail(to []string, subject, htmlBody string) error {
	if !s.IsConfigured() {
		return fmt.Errorf("email not configured")
	}

	from := headerValue(s.config.From)
	if name := headerValue(s.config.FromName); name != "" {
		from = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", name), from)
	}

	boundary := "boundary-innovationhub"

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", headerValue(subject)))
	fmt.Fprintf(&msg, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/alternative; boundary=\"%s\"\r\n", boundary)
	fmt.Fprintf(&msg, "\r\n")

	fmt.Fprintf(&msg, "--%s\r\n", boundary)
	fmt.Fprintf(&msg, "Content-Type: text/plain; charset=UTF-8\r\n")
	fmt.Fprintf(&msg, "\r\n")
	fmt.Fprintf(&msg, "A new suggestion was submitted. Open this email in an HTML-capable client for details.\r\n")
	fmt.Fprintf(&msg, "\r\n")

	fmt.Fprintf(&msg, "--%s\r\n", boundary)
	fmt.Fprintf(&msg, "Content-Type: text/html; charset=UTF-8\r\n")
	fmt.Fprintf(&msg, "\r\n")
	fmt.Fprintf(&msg, "%s\r\n", htmlBody)
	fmt.Fprintf(&msg, "\r\n")
	fmt.Fprintf(&msg, "--%s--\r\n", boundary)

	return s.send(s.server, s.auth, s.config.From, to, msg.Bytes())
}

// headerValue folds CR and LF into spaces so user text cannot start a new header line.
func headerValue(v string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if r == '\r' || r == '\n' {
			return ' '
		}
		return r
	}, v))
}

type suggestionEmailData struct {
	Title       string
	Content     string
	Category    string
	SubmittedBy string
}

func renderSuggestionEmail(data suggestionEmailData) (string, error) {
	t, err := template.New("suggestion").Parse(suggestionEmailTemplate)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const suggestionEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New Suggestion</title>
</head>
<body style="margin: 0; padding: 0; font-family: Arial, sans-serif; background-color: #f4f4f4;">
    <div style="padding: 20px 0; text-align: center; background-color: #4bdcf5;">
        <h1 style="margin: 0; color: #ffffff; font-size: 24px;">Innovation Hub</h1>
    </div>
    <div style="max-width: 600px; margin: 20px auto; background-color: #ffffff; padding: 20px;">
        <h2 style="margin: 0 0 10px 0; color: #333333;">New Suggestion Received</h2>
        <p style="color: #666666;">A new suggestion has been submitted to the Innovation Hub.</p>
        <div style="background-color: #f9f9f9; border-left: 4px solid #4bdcf5; padding: 15px; margin-bottom: 20px;">
            <h3 style="margin: 0 0 10px 0; color: #333333;">{{.Title}}</h3>
            <p style="margin: 0; color: #666666; white-space: pre-wrap;">{{.Content}}</p>
        </div>
        <p><strong>Category:</strong> {{.Category}}</p>
        <p><strong>Submitted by:</strong> {{.SubmittedBy}}</p>
    </div>
</body>
</html>`

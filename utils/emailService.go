package utils

import (
	"fmt"
	"html"
	"log"
	"net/smtp"
	"net/url"
	"strings"
	"sync"
	"time"

	"lms/config"

	"github.com/go-resty/resty/v2"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer delivers one HTML e-mail.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// AppMailer is the transport chosen at startup by NewMailer.
var AppMailer Mailer = &LogMailer{}

// NewMailer picks the transport named by cfg.MailProvider.
func NewMailer(cfg *config.Config) Mailer {
	switch cfg.MailProvider {
	case "smtp":
		return &SMTPMailer{Host: cfg.SMTPHost, Port: cfg.SMTPPort, From: cfg.EmailSender, Password: cfg.Password}
	case "sendgrid":
		return &SendGridMailer{APIKey: cfg.SendGridAPIKey, From: cfg.EmailSender}
	case "resend":
		return NewResendMailer(cfg.ResendAPIKey, cfg.EmailSender)
	default:
		return &LogMailer{}
	}
}

// SMTPMailer sends through an authenticated SMTP relay.
type SMTPMailer struct {
	Host     string
	Port     string
	From     string
	Password string
}

func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: LMS <%s>\r\n", m.From)
	msg += fmt.Sprintf("To: %s\r\n", to)
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	var auth smtp.Auth
	if m.Password != "" {
		auth = smtp.PlainAuth("", m.From, m.Password, m.Host)
	}

	if err := smtp.SendMail(m.Host+":"+m.Port, auth, m.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// SendGridMailer sends through the SendGrid v3 API.
type SendGridMailer struct {
	APIKey string
	From   string
}

func (m *SendGridMailer) Send(to, subject, htmlBody string) error {
	message := mail.NewSingleEmail(
		mail.NewEmail("LMS", m.From),
		subject,
		mail.NewEmail("", to),
		"",
		htmlBody,
	)
	resp, err := sendgrid.NewSendClient(m.APIKey).Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid API error: status %d", resp.StatusCode)
	}
	return nil
}

// ResendMailer sends through the Resend HTTP API.
type ResendMailer struct {
	From   string
	client *resty.Client
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func NewResendMailer(apiKey, from string) *ResendMailer {
	client := resty.New().
		SetBaseURL("https://api.resend.com").
		SetAuthToken(apiKey).
		SetTimeout(10 * time.Second)
	return &ResendMailer{From: from, client: client}
}

func (m *ResendMailer) Send(to, subject, htmlBody string) error {
	resp, err := m.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(resendRequest{From: m.From, To: []string{to}, Subject: subject, HTML: htmlBody}).
		Post("/emails")
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("resend API error: status %d", resp.StatusCode())
	}
	return nil
}

// LogMailer only logs. Development default.
type LogMailer struct{}

func (LogMailer) Send(to, subject, htmlBody string) error {
	log.Printf("[MAILER] to=%s subject=%q (%d bytes, log transport)", to, subject, len(htmlBody))
	return nil
}

// SentMail is one message captured by CaptureMailer.
type SentMail struct {
	To      string
	Subject string
	HTML    string
}

// CaptureMailer records messages in memory; Fail makes every Send return it.
type CaptureMailer struct {
	mu   sync.Mutex
	Sent []SentMail
	Fail error
}

func (m *CaptureMailer) Send(to, subject, htmlBody string) error {
	if m.Fail != nil {
		return m.Fail
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, SentMail{To: to, Subject: subject, HTML: htmlBody})
	return nil
}

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #1E1B4B; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1E1B4B; line-height: 1.6; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #6366F1; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>LMS</h1></div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">You received this e-mail because an account was created with this address.</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// VerificationLink builds the client URL that carries the token.
func VerificationLink(clientURL, token string) string {
	return strings.TrimRight(clientURL, "/") + "/verify-email?token=" + url.QueryEscape(token)
}

// SendVerificationEmail mails the one-time verification link.
func SendVerificationEmail(m Mailer, email, name, token string) error {
	link := VerificationLink(config.AppConfig.ClientURL, token)
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Confirm your e-mail address to activate your account.</p>
		<a href="%s" class="btn">Verify e-mail</a>
		<p>If the button does not work, open this link: %s</p>
	`, html.EscapeString(name), link, link)

	return m.Send(email, "Verify your e-mail address", getEmailTemplate("Welcome!", body))
}

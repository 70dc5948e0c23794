package mailing

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strconv"

	"gopkg.in/gomail.v2"

	"souschef/internal/utils"
)

var ErrMailDisabled = errors.New("smtp is not configured")

type (
	MailConfig struct {
		AppURL       string
		SMTPHost     string
		SMTPPort     string
		SMTPSender   string
		SMTPEmail    string
		SMTPPassword string
	}

	Mailer interface {
		SendMail(toEmail string, subject string, body string) error
	}

	smtpMailer struct {
		config MailConfig
	}
)

func LoadMailConfig() MailConfig {
	return MailConfig{
		AppURL:       utils.GetConfig("APP_URL"),
		SMTPHost:     utils.GetConfig("SMTP_HOST"),
		SMTPPort:     utils.GetConfig("SMTP_PORT"),
		SMTPSender:   utils.GetConfig("SMTP_SENDER_NAME"),
		SMTPEmail:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		SMTPPassword: utils.GetConfig("SMTP_AUTH_PASSWORD"),
	}
}

func NewMailer(config MailConfig) Mailer {
	return &smtpMailer{config: config}
}

func (m *smtpMailer) SendMail(toEmail string, subject string, body string) error {
	if m.config.SMTPHost == "" {
		return ErrMailDisabled
	}

	port, err := strconv.Atoi(m.config.SMTPPort)
	if err != nil {
		return fmt.Errorf("smtp port: %w", err)
	}
	dialer := gomail.NewDialer(
		m.config.SMTPHost,
		port,
		m.config.SMTPEmail,
		m.config.SMTPPassword,
	)

	return dialer.DialAndSend(NewMessage(m.config, toEmail, subject, body))
}

func NewMessage(config MailConfig, toEmail string, subject string, body string) *gomail.Message {
	mailer := gomail.NewMessage()
	if config.SMTPSender != "" {
		mailer.SetAddressHeader("From", config.SMTPEmail, config.SMTPSender)
	} else {
		mailer.SetHeader("From", config.SMTPEmail)
	}
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)
	return mailer
}

var welcomeTemplate = template.Must(template.New("welcome").Parse(
	`<p>Hi {{.Name}},</p>
<p>Your SousChef kitchen is ready. Scan a receipt or add your first item to get started.</p>
{{if .AppURL}}<p><a href="{{.AppURL}}">Open SousChef</a></p>{{end}}`))

const WelcomeSubject = "Welcome to SousChef"

func WelcomeBody(name, appURL string) (string, error) {
	var buf bytes.Buffer
	err := welcomeTemplate.Execute(&buf, struct{ Name, AppURL string }{name, appURL})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

package mail

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"

	"go.uber.org/zap"
)

// Mailer sends account credentials to new users.
type Mailer interface {
	// SendCredentials emails a freshly generated access code or password.
	SendCredentials(to, accessCode string) error
}

// SMTPMailer delivers mail over SMTP with implicit TLS.
type SMTPMailer struct {
	cfg    Config
	logger *zap.Logger
}

// NewMailer creates a mailer from the configuration.
func NewMailer(cfg Config, logger *zap.Logger) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, logger: logger}
}

// SendCredentials sends the welcome email with the account's access code.
// When no SMTP password is configured the send is skipped with a warning,
// matching the behaviour of an unconfigured development environment.
func (m *SMTPMailer) SendCredentials(to, accessCode string) error {
	if m.cfg.Password == "" {
		m.logger.Warn("SMTP password not configured, credentials email not sent",
			zap.String("to", to))
		return nil
	}

	subject := "Bienvenido a Psicouja"
	body := credentialsBody(accessCode)
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		m.cfg.From, to, subject, body)

	addr := net.JoinHostPort(m.cfg.Host, fmt.Sprintf("%d", m.cfg.Port))
	tlsConfig := &tls.Config{ServerName: m.cfg.Host}

	conn, err := tls.Dial("tcp", addr, tlsConfig)
	if err != nil {
		return fmt.Errorf("failed to dial SMTP server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Close()

	auth := smtp.PlainAuth("", m.cfg.From, m.cfg.Password, m.cfg.Host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP auth failed: %w", err)
	}
	if err := client.Mail(m.cfg.From); err != nil {
		return fmt.Errorf("SMTP MAIL FROM failed: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("SMTP RCPT TO failed: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("SMTP DATA failed: %w", err)
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish message: %w", err)
	}

	return client.Quit()
}

func credentialsBody(accessCode string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f9f9f9; border-radius: 8px;">
    <div style="background-color: #0cc0df; color: white; padding: 20px; text-align: center; border-radius: 8px 8px 0 0;">
      <h1>Bienvenido a Psicouja</h1>
    </div>
    <div style="background-color: white; padding: 20px; border-radius: 0 0 8px 8px;">
      <p>Tu cuenta ha sido creada. Utiliza el siguiente código de acceso para entrar:</p>
      <div style="background-color: #f0f9ff; border-left: 4px solid #0cc0df; padding: 15px; margin: 20px 0; border-radius: 4px;">
        <div style="font-size: 12px; color: #666; text-transform: uppercase; letter-spacing: 1px;">Código de acceso</div>
        <div style="font-size: 24px; font-weight: bold;">%s</div>
      </div>
      <p>Guarda este código en un lugar seguro.</p>
    </div>
    <div style="text-align: center; margin-top: 20px; font-size: 12px; color: #666;">
      Psicouja · Universidad de Jaén
    </div>
  </div>
</body>
</html>`, accessCode)
}

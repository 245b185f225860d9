package services

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/Juan-Devgo/Clothes/internal/cms"
)

// DispatchError is a provider-reported email failure (as opposed to a
// transport failure, which propagates as a plain error).
type DispatchError struct {
	Status  int
	Message string
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("email dispatch failed (%d): %s", e.Status, e.Message)
}

type EmailService interface {
	// SendRegisterCode delivers the registration verification code. With the
	// cms provider the CMS mints and remembers the code itself and the code
	// argument is ignored.
	SendRegisterCode(ctx context.Context, email, username, code string) error
	SendResetCode(ctx context.Context, email, username, code string) error
	SendTest(ctx context.Context, to string) error
	// LocalCodes reports whether the application generates and verifies
	// codes itself instead of delegating to the CMS mailer.
	LocalCodes() bool
}

// --- CMS mailer provider (default) ---

type cmsEmailService struct {
	client *cms.Client
}

func NewCMSEmailService(client *cms.Client) EmailService {
	return &cmsEmailService{client: client}
}

func (s *cmsEmailService) LocalCodes() bool { return false }

func (s *cmsEmailService) SendRegisterCode(ctx context.Context, email, username, _ string) error {
	return s.send(ctx, cms.PathMailerAuthRegister, map[string]string{
		"email":    email,
		"username": username,
	})
}

func (s *cmsEmailService) SendResetCode(ctx context.Context, email, username, _ string) error {
	return s.send(ctx, cms.PathMailerResetPasswd, map[string]string{
		"email":    email,
		"username": username,
	})
}

func (s *cmsEmailService) SendTest(ctx context.Context, to string) error {
	return s.send(ctx, cms.PathMailerTest, map[string]string{"to": to})
}

func (s *cmsEmailService) send(ctx context.Context, path string, body map[string]string) error {
	res, err := s.client.Post(ctx, path, s.client.APIKey, body)
	if err != nil {
		return err
	}
	if !res.Success {
		return &DispatchError{Status: res.Status, Message: res.Message}
	}
	return nil
}

// --- direct SMTP provider ---

type smtpEmailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	return &smtpEmailService{
		dialer: gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword),
		from:   fromEmail,
	}
}

func (s *smtpEmailService) LocalCodes() bool { return true }

func (s *smtpEmailService) SendRegisterCode(_ context.Context, email, username, code string) error {
	body := fmt.Sprintf(`
		<h2>Bienvenido a Clothes Saldos Americanos, %s</h2>
		<p>Su código de verificación es: <strong>%s</strong></p>
		<p>Ingréselo en la página de verificación para completar su registro.</p>
	`, username, code)
	return s.send(email, "Código de verificación de registro", body)
}

func (s *smtpEmailService) SendResetCode(_ context.Context, email, username, code string) error {
	body := fmt.Sprintf(`
		<h3>Restablecimiento de contraseña</h3>
		<p>Hola %s, recibimos una solicitud para restablecer su contraseña.</p>
		<p>Su código es: <strong>%s</strong></p>
		<p>Si usted no solicitó este cambio, puede ignorar este correo.</p>
	`, username, code)
	return s.send(email, "Restablecimiento de contraseña", body)
}

func (s *smtpEmailService) SendTest(_ context.Context, to string) error {
	return s.send(to, "Correo de prueba - Clothes Saldos Americanos",
		"<p>Este es un correo de prueba del servicio de email.</p>")
}

func (s *smtpEmailService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return &DispatchError{Status: 500, Message: err.Error()}
	}
	return nil
}

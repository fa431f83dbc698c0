// FILE: internal/pkg/mailer/email_service.go
package mailer

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendVerificationCode(toEmail, code string) error
	SendInvitation(toEmail, fullName, planName, token string, expiresAt time.Time) error
	SendDunningNotice(toEmail, fullName string, graceEndsAt time.Time) error
	SendCancellationConfirmation(toEmail, fullName string, expiresAt *time.Time) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	frontendURL string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)
	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		frontendURL: os.Getenv("FRONTEND_URL"),
	}
}

func (s *emailService) send(toEmail, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send %q to %s: %v\n", subject, toEmail, err)
		return err
	}
	fmt.Printf("[MAILER] %q sent to %s\n", subject, toEmail)
	return nil
}

func (s *emailService) SendVerificationCode(toEmail, code string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Bem-vindo ao EUA na Prática!</h2>
			<p>Seu código de verificação é:</p>
			<h1 style="color: #1A73E8; letter-spacing: 5px;">%s</h1>
			<p>Este código expira em 15 minutos.</p>
			<p>Se você não solicitou este código, ignore este e-mail.</p>
		</div>
	`, code)
	return s.send(toEmail, "Seu código de verificação", body)
}

func (s *emailService) SendInvitation(toEmail, fullName, planName, token string, expiresAt time.Time) error {
	link := fmt.Sprintf("%s/convite?token=%s", s.frontendURL, token)
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Olá, %s!</h2>
			<p>Você foi convidado(a) para o plano <strong>%s</strong> do EUA na Prática.</p>
			<a href="%s" style="background-color: #1A73E8; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Aceitar convite</a>
			<p>Ou copie este link:</p>
			<p>%s</p>
			<p>O convite expira em %s.</p>
		</div>
	`, fullName, planName, link, link, expiresAt.Format("02/01/2006"))
	return s.send(toEmail, "Seu convite para o EUA na Prática", body)
}

func (s *emailService) SendDunningNotice(toEmail, fullName string, graceEndsAt time.Time) error {
	link := fmt.Sprintf("%s/assinatura", s.frontendURL)
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Olá, %s</h2>
			<p>Não conseguimos processar o pagamento da sua assinatura.</p>
			<p>Atualize sua forma de pagamento até <strong>%s</strong> para manter o acesso ao seu plano.</p>
			<a href="%s" style="background-color: #D93025; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Atualizar pagamento</a>
		</div>
	`, fullName, graceEndsAt.Format("02/01/2006"), link)
	return s.send(toEmail, "Problema com o pagamento da sua assinatura", body)
}

func (s *emailService) SendCancellationConfirmation(toEmail, fullName string, expiresAt *time.Time) error {
	until := "imediatamente"
	if expiresAt != nil {
		until = "até " + expiresAt.Format("02/01/2006")
	}
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Olá, %s</h2>
			<p>Confirmamos o cancelamento da sua assinatura.</p>
			<p>Seu acesso permanece ativo %s.</p>
			<p>Sentiremos sua falta! Você pode reativar seu plano a qualquer momento.</p>
		</div>
	`, fullName, until)
	return s.send(toEmail, "Cancelamento confirmado", body)
}

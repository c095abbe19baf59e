package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v2"

	"amersur-crm/internal/config"
)

type Service interface {
	SendNotificationEmail(ctx context.Context, toEmail, titulo, mensaje, tipo string) error
}

type service struct {
	client *resend.Client
	config *config.Config
	tmpl   *template.Template
}

// notificationTemplate is deliberately minimal: the CRM front end is where
// notifications are really consumed, email is a secondary channel.
const notificationTemplate = `
<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #1a56db;">{{.Titulo}}</h2>
  <p>{{.Mensaje}}</p>
  <p style="margin-top: 24px;">
    <a href="{{.Link}}" style="background: #1a56db; color: #fff; padding: 10px 18px; border-radius: 6px; text-decoration: none;">
      Ver en AmerSur CRM
    </a>
  </p>
  <p style="color: #6b7280; font-size: 12px; margin-top: 32px;">
    Recibiste este correo porque tienes activadas las notificaciones por email.
  </p>
</div>`

func NewService(cfg *config.Config) Service {
	return &service{
		client: resend.NewClient(cfg.ResendAPIKey),
		config: cfg,
		tmpl:   template.Must(template.New("notification").Parse(notificationTemplate)),
	}
}

func (s *service) SendNotificationEmail(ctx context.Context, toEmail, titulo, mensaje, tipo string) error {
	data := struct {
		Titulo  string
		Mensaje string
		Link    string
	}{
		Titulo:  titulo,
		Mensaje: mensaje,
		Link:    s.config.AppBaseURL + "/dashboard",
	}

	var body bytes.Buffer
	if err := s.tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render notification email: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("AmerSur CRM <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    body.String(),
		Subject: titulo,
	}

	_, err := s.client.Emails.Send(params)
	return err
}

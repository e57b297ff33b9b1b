package notify

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// SMTPConfig holds the delivery settings for the mail notifier.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPNotifier delivers recovery mail over SMTP.
type SMTPNotifier struct {
	client *mail.Client
	from   string
}

func NewSMTPNotifier(cfg SMTPConfig) (*SMTPNotifier, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}
	return &SMTPNotifier{client: client, from: cfg.From}, nil
}

func (n *SMTPNotifier) SendResetToken(ctx context.Context, email, token string) error {
	subject := "Recuperación de contraseña - NutriFit"
	body := fmt.Sprintf(
		"Hola,\n\n"+
			"Recibimos una solicitud para restablecer tu contraseña en NutriFit.\n\n"+
			"Este es tu token de recuperación:\n\n    %s\n\n"+
			"Este token expirará en 15 minutos. Si no solicitaste este cambio, puedes ignorar este mensaje.\n\n"+
			"Gracias,\nEl equipo de NutriFit\n",
		token,
	)
	return n.send(ctx, email, subject, body)
}

func (n *SMTPNotifier) SendUsernameReminder(ctx context.Context, email, name string) error {
	subject := "Recordatorio de usuario - NutriFit"
	body := fmt.Sprintf(
		"Hola,\n\nTu nombre de usuario en NutriFit es: %s\n\nGracias,\nEl equipo de NutriFit\n",
		name,
	)
	return n.send(ctx, email, subject, body)
}

func (n *SMTPNotifier) send(ctx context.Context, to, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(n.from); err != nil {
		return fmt.Errorf("set mail from: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("set mail to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := n.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

var _ Notifier = (*SMTPNotifier)(nil)

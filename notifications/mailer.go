package notifications

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"food-delivery/config"
	"food-delivery/metrics"
	"food-delivery/models"

	"github.com/sony/gobreaker"
	"gopkg.in/gomail.v2"
)

var ErrMailNotConfigured = errors.New("SMTP configuration missing")

// EmailService sends transactional mail over SMTP.
type EmailService struct {
	deliver func(*gomail.Message) error
	from    string
	breaker *gobreaker.CircuitBreaker
}

func NewEmailService(c *config.Config) (*EmailService, error) {
	if c.SMTPHost == "" || c.SMTPUser == "" || c.SMTPPass == "" {
		return nil, ErrMailNotConfigured
	}

	dialer := gomail.NewDialer(c.SMTPHost, c.SMTPPort, c.SMTPUser, c.SMTPPass)
	return &EmailService{
		deliver: func(m *gomail.Message) error { return dialer.DialAndSend(m) },
		from:    c.SMTPFrom,
		breaker: metrics.NewCircuitBreaker("smtp"),
	}, nil
}

var resetCodeTemplate = template.Must(template.New("reset").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
    <div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px;">
        <h2 style="color: #333;">Password Reset Request</h2>
        <p>Use the following code to reset your password:</p>
        <div style="background-color: #fff7ed; border: 2px dashed #f97316; padding: 20px; text-align: center; margin: 30px 0; border-radius: 8px;">
            <div style="font-size: 36px; font-weight: bold; color: #f97316; letter-spacing: 8px;">{{.Code}}</div>
        </div>
        <p><strong>This code will expire in 15 minutes.</strong></p>
        <p>If you did not request a password reset, please ignore this email.</p>
    </div>
</body>
</html>`))

var orderTemplate = template.Must(template.New("order").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
    <div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px;">
        <h2 style="color: #333;">Thank you for your order!</h2>
        <p>Order <strong>#{{.OrderNumber}}</strong> from {{.RestaurantName}} has been placed.</p>
        <table style="width: 100%; border-collapse: collapse;">
            {{range .Items}}<tr><td>{{.Quantity}} x {{.MenuItemName}}</td><td style="text-align: right;">{{.Subtotal.StringFixed 2}}</td></tr>
            {{end}}<tr><td>Delivery fee</td><td style="text-align: right;">{{.DeliveryFee.StringFixed 2}}</td></tr>
            <tr><td><strong>Total</strong></td><td style="text-align: right;"><strong>{{.TotalAmount.StringFixed 2}}</strong></td></tr>
        </table>
        <p>Estimated delivery: {{.EstimatedDeliveryTime.Format "15:04"}}</p>
    </div>
</body>
</html>`))

func (s *EmailService) SendResetCode(ctx context.Context, to, code string) error {
	var body strings.Builder
	if err := resetCodeTemplate.Execute(&body, struct{ Code string }{code}); err != nil {
		return fmt.Errorf("render reset email: %w", err)
	}
	return s.send(ctx, to, "Password Reset Code", body.String())
}

func (s *EmailService) SendOrderConfirmation(ctx context.Context, to string, order *models.Order) error {
	var body strings.Builder
	if err := orderTemplate.Execute(&body, order); err != nil {
		return fmt.Errorf("render order email: %w", err)
	}
	return s.send(ctx, to, fmt.Sprintf("Order Confirmation #%s", order.OrderNumber), body.String())
}

func (s *EmailService) send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	_, err := s.breaker.Execute(func() (interface{}, error) {
		return nil, s.deliverWithin(ctx, m)
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// deliverWithin gives up on a stalled SMTP session once ctx is done. The
// session itself is left to finish or fail in the background.
func (s *EmailService) deliverWithin(ctx context.Context, m *gomail.Message) error {
	done := make(chan error, 1)
	go func() {
		done <- s.deliver(m)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

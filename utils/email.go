// utils/email.go
package utils

import (
	"fmt"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"tacotown/models"
)

// EmailService sends shop notifications through SendGrid. Delivery is best
// effort; callers fire and forget.
type EmailService struct {
	client *sendgrid.Client
	sender string
}

// NewEmailService initializes the service from SENDGRID_API_KEY. With no key
// set the service is disabled and every send is a no-op, so the shop can run
// without email configured.
func NewEmailService() *EmailService {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	es := &EmailService{
		sender: os.Getenv("EMAIL_SENDER"),
	}
	if apiKey != "" {
		es.client = sendgrid.NewSendClient(apiKey)
	}
	return es
}

// Enabled reports whether an API key was configured.
func (es *EmailService) Enabled() bool {
	return es.client != nil
}

// SendEmail sends a basic email to the specified recipient.
func (es *EmailService) SendEmail(toEmail, subject, htmlContent string) error {
	if es.client == nil {
		return nil
	}

	from := mail.NewEmail("Taco Town", es.sender)
	to := mail.NewEmail(toEmail, toEmail)
	message := mail.NewSingleEmail(from, subject, to, htmlContent, htmlContent)

	resp, err := es.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("failed to send email: sendgrid status %d", resp.StatusCode)
	}
	return nil
}

// SendNewOrderAlert tells the shop a new order has landed.
func (es *EmailService) SendNewOrderAlert(toEmail string, order models.Order) error {
	subject := fmt.Sprintf("New Order %s - Taco Town", order.OrderID)
	htmlContent := fmt.Sprintf(
		"<strong>New order received!</strong><br><br>Order ID: %s<br>Customer: %s (%s)<br>Total: ₹%.2f<br><br>Open the order desk to accept or reject it.",
		order.OrderID,
		order.CustomerName,
		order.CustomerPhone,
		order.TotalAmount,
	)
	return es.SendEmail(toEmail, subject, htmlContent)
}

// SendContactMessage forwards a contact-form submission to the shop inbox.
func (es *EmailService) SendContactMessage(toEmail string, msg models.ContactMessage) error {
	subject := fmt.Sprintf("Contact form message from %s", msg.Name)
	htmlContent := fmt.Sprintf(
		"<strong>From:</strong> %s (%s)<br><br>%s",
		msg.Name,
		msg.Email,
		msg.Message,
	)
	return es.SendEmail(toEmail, subject, htmlContent)
}

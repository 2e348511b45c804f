package notifier

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"marketplace-api/configs"
	"marketplace-api/models"
)

type userDirectory interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// EmailNotifier sends the post-checkout emails: one confirmation to the
// buyer covering all seller orders, and one email per seller covering only
// that seller's order.
type EmailNotifier struct {
	host     string
	port     string
	username string
	password string
	from     string
	users    userDirectory
}

func NewEmailNotifier(users userDirectory) *EmailNotifier {
	return &EmailNotifier{
		host:     configs.EnvSMTPHost(),
		port:     configs.EnvSMTPPort(),
		username: configs.EnvSMTPUsername(),
		password: configs.EnvSMTPPassword(),
		from:     configs.EnvSMTPFrom(),
		users:    users,
	}
}

func (n *EmailNotifier) SendOrderEmails(ctx context.Context, buyer *models.User, orders []models.Order, grandFinalTotal float64) error {
	if n.host == "" {
		log.Warn().Msg("notifier: SMTP not configured, skipping order emails")
		return nil
	}

	var body bytes.Buffer
	if err := buyerEmailTmpl.Execute(&body, buyerEmailData{
		Name:            buyer.Name,
		Orders:          orders,
		GrandFinalTotal: grandFinalTotal,
	}); err != nil {
		return fmt.Errorf("notifier: render buyer email: %w", err)
	}
	if err := n.send(buyer.Email, "Your order is confirmed", body.Bytes()); err != nil {
		return fmt.Errorf("notifier: buyer email: %w", err)
	}

	// Seller emails are independent of each other; one bad seller record
	// does not stop the rest.
	for _, order := range orders {
		seller, err := n.users.GetByID(ctx, order.Seller)
		if err != nil || seller == nil {
			log.Warn().Err(err).Str("seller", order.Seller.Hex()).Msg("notifier: seller lookup failed, skipping email")
			continue
		}

		body.Reset()
		if err := sellerEmailTmpl.Execute(&body, sellerEmailData{
			SellerName: seller.Name,
			BuyerName:  buyer.Name,
			BuyerEmail: buyer.Email,
			Order:      order,
		}); err != nil {
			log.Warn().Err(err).Str("seller", seller.Id.Hex()).Msg("notifier: render seller email failed")
			continue
		}
		if err := n.send(seller.Email, "New order received", body.Bytes()); err != nil {
			log.Warn().Err(err).Str("seller", seller.Id.Hex()).Msg("notifier: seller email failed")
		}
	}

	return nil
}

func (n *EmailNotifier) send(to, subject string, html []byte) error {
	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", n.from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.Write(html)

	auth := smtp.PlainAuth("", n.username, n.password, n.host)
	return smtp.SendMail(n.host+":"+n.port, auth, n.from, []string{to}, msg.Bytes())
}

// Package notification delivers user-facing notifications.
//
// The mail channel is the only one wired today; order confirmations go
// out through it after a settlement completes.
//
// Define a Notification:
//
//	type OrderConfirmation struct { Payment models.PaymentRecord }
//	func (n *OrderConfirmation) Via() []string { return []string{"mail"} }
//	func (n *OrderConfirmation) ToMail() notification.MailData {
//	    return notification.MailData{
//	        Subject: "Your order is confirmed",
//	        Body:    "<h1>Thank you!</h1>",
//	    }
//	}
//
// Send:
//
//	notification.Send("diner@example.com", &OrderConfirmation{Payment: p})
package notification

import (
	"fmt"

	"github.com/mahimDev/bistro-boss-server/pkg/logger"
	"github.com/mahimDev/bistro-boss-server/pkg/mail"
)

// MailData carries the data needed to send an email notification.
type MailData struct {
	To      string // overrides the notifiable address if set
	Subject string
	Body    string // HTML
	Text    string // plain-text fallback
}

// Notification is the interface every notification must satisfy.
type Notification interface {
	// Via returns the list of channel names. Only "mail" is supported.
	Via() []string
}

// Mailable can be implemented to support the mail channel.
type Mailable interface {
	ToMail() MailData
}

// Send dispatches the notification through all channels returned by Via().
// address is the recipient email used by the mail channel.
func Send(address string, n Notification) []error {
	var errs []error
	for _, channel := range n.Via() {
		if err := dispatch(address, channel, n); err != nil {
			logger.Error("notification: channel failed",
				"channel", channel, "error", err)
			errs = append(errs, err)
		}
	}
	return errs
}

func dispatch(address, channel string, n Notification) error {
	switch channel {
	case "mail":
		m, ok := n.(Mailable)
		if !ok {
			return fmt.Errorf("notification: %T does not implement Mailable", n)
		}
		return sendMail(address, m.ToMail())

	default:
		return fmt.Errorf("notification: unknown channel %q", channel)
	}
}

func sendMail(address string, d MailData) error {
	to := d.To
	if to == "" {
		to = address
	}

	body := d.Body
	if body == "" {
		body = d.Text
	}

	return mail.To(to).Subject(d.Subject).Body(body).Send()
}

// Package listeners wires event handlers to the dispatcher.
package listeners

import (
	"fmt"

	"github.com/mahimDev/bistro-boss-server/app/models"
	"github.com/mahimDev/bistro-boss-server/app/services"
	"github.com/mahimDev/bistro-boss-server/pkg/event"
	"github.com/mahimDev/bistro-boss-server/pkg/logger"
	"github.com/mahimDev/bistro-boss-server/pkg/metrics"
	"github.com/mahimDev/bistro-boss-server/pkg/notification"
	"github.com/mahimDev/bistro-boss-server/pkg/workerpool"
)

// OrderConfirmation is the email sent after a payment settles.
type OrderConfirmation struct {
	Payment models.PaymentRecord
}

func (n *OrderConfirmation) Via() []string { return []string{"mail"} }

func (n *OrderConfirmation) ToMail() notification.MailData {
	return notification.MailData{
		Subject: "Your Bistro Boss order is confirmed",
		Body: fmt.Sprintf(
			"<h1>Thank you for your order!</h1><p>We received your payment of %.2f %s (ref %s). Your food is on its way to the kitchen.</p>",
			n.Payment.Amount, n.Payment.Currency, n.Payment.TransactionID,
		),
	}
}

// Register attaches all listeners. The confirmation email runs on the
// worker pool: settlement must not wait on SMTP, and a failed or dropped
// send never affects the recorded payment.
func Register(pool *workerpool.Pool) {
	event.Listen(services.EventPaymentSettled, func(payload interface{}) {
		rec, ok := payload.(models.PaymentRecord)
		if !ok {
			return
		}

		err := pool.Submit(func() {
			if errs := notification.Send(rec.Email, &OrderConfirmation{Payment: rec}); len(errs) > 0 {
				metrics.NotificationFailures.Inc()
			}
		})
		if err != nil {
			metrics.NotificationFailures.Inc()
			logger.Warn("confirmation email dropped", "email", rec.Email, "error", err)
		}
	})
}

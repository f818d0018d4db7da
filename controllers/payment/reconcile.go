package paymentControllers

import (
	"errors"
	"log"

	orderControllers "github.com/Guillermo-Costilla/store-backend/controllers/order"
	"github.com/Guillermo-Costilla/store-backend/mailer"
	"github.com/Guillermo-Costilla/store-backend/models"
	"github.com/Guillermo-Costilla/store-backend/payments/stripe"
	"gorm.io/gorm"
)

var errNoOrderRef = errors.New("intent carries no order_id metadata")

// applyOutcome resolves the order referenced by the intent's metadata and
// drives its payment status to the given terminal state. The ledger's
// conditional update makes this safe to call from the synchronous confirm
// path and the webhook path concurrently: exactly one caller applies the
// transition, and only that caller triggers the confirmation email.
func applyOutcome(db *gorm.DB, mail mailer.Sender, intent *stripe.Intent, status models.PaymentStatus) (bool, error) {
	orderID := intent.Metadata["order_id"]
	if orderID == "" {
		return false, errNoOrderRef
	}

	applied, err := orderControllers.SetPaymentStatus(db, orderID, status)
	if err != nil {
		return false, err
	}
	if !applied {
		return false, nil
	}

	if status == models.PaymentPaid {
		var order models.Order
		if err := db.Preload("User").First(&order, "id = ?", orderID).Error; err == nil {
			mailer.SendAsync(mail, order.User.Email,
				"✅ Pago confirmado - Tienda Online",
				mailer.PaymentConfirmedBody(order.User.Name, order.ID))
		}
	}
	return true, nil
}

// logOutcome is the webhook-side wrapper: anomalies (missing order, races
// that lost against an earlier terminal write) are logged and swallowed so
// the event can be acknowledged. Gateways retry non-2xx deliveries, and a
// retry loop on a permanently missing order helps nobody.
func logOutcome(db *gorm.DB, mail mailer.Sender, intent *stripe.Intent, status models.PaymentStatus) {
	applied, err := applyOutcome(db, mail, intent, status)
	switch {
	case errors.Is(err, errNoOrderRef):
		log.Printf("⚠️ Webhook for intent %s has no order reference", intent.ID)
	case errors.Is(err, orderControllers.ErrOrderNotFound):
		log.Printf("⚠️ Webhook for intent %s references unknown order %s", intent.ID, intent.Metadata["order_id"])
	case errors.Is(err, orderControllers.ErrInvalidTransition):
		log.Printf("⚠️ Webhook for intent %s lost to an earlier terminal state: %v", intent.ID, err)
	case err != nil:
		log.Printf("❌ Failed to apply webhook outcome for intent %s: %v", intent.ID, err)
	case applied:
		log.Printf("✅ Order %s marked %s via webhook", intent.Metadata["order_id"], status)
	}
}

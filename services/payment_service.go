package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"stayfinder-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EventPaymentCaptured = "payment.captured"
	EventPaymentFailed   = "payment.failed"

	gatewayName = "razorpay"
)

// PaymentService owns payment records and webhook reconciliation.
type PaymentService struct {
	DB            *gorm.DB
	WebhookSecret string
}

func NewPaymentService(db *gorm.DB, webhookSecret string) *PaymentService {
	return &PaymentService{DB: db, WebhookSecret: webhookSecret}
}

// PaymentEntity is the gateway's payment object inside a webhook payload.
type PaymentEntity struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
	Captured bool   `json:"captured"`
	Method   string `json:"method"`
}

type webhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity PaymentEntity `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// VerifySignature checks the hex HMAC-SHA-256 of the exact raw body against
// the signature header value. Comparison is constant-time.
func (s *PaymentService) VerifySignature(rawBody []byte, signature string) bool {
	signature = strings.TrimSpace(signature)
	if signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(s.WebhookSecret))
	mac.Write(rawBody)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// HandleWebhookEvent parses an already-verified body and routes it. Unknown
// event types are acknowledged without action so the gateway stops retrying.
// Returns ErrMalformedPayload for bad JSON; persistence problems are wrapped
// so the controller can log-and-ack them.
func (s *PaymentService) HandleWebhookEvent(rawBody []byte) error {
	var ev webhookEvent
	if err := json.Unmarshal(rawBody, &ev); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if ev.Event == "" {
		return fmt.Errorf("%w: missing event name", ErrMalformedPayload)
	}

	switch ev.Event {
	case EventPaymentCaptured:
		if !ev.Payload.Payment.Entity.Captured {
			// Authorized but not captured yet: stay pending.
			return nil
		}
		return s.reconcile(ev.Payload.Payment.Entity, models.PaymentStatusCompleted)
	case EventPaymentFailed:
		return s.reconcile(ev.Payload.Payment.Entity, models.PaymentStatusFailed)
	default:
		log.Printf("ℹ️ ignoring webhook event %q", ev.Event)
		return nil
	}
}

// reconcile applies an idempotent status transition keyed by the gateway's
// transaction id. The local row that initiated the payment may not know its
// transaction id yet, so the local primary key is never used here.
func (s *PaymentService) reconcile(entity PaymentEntity, status string) error {
	if entity.ID == "" {
		return fmt.Errorf("%w: missing payment entity id", ErrMalformedPayload)
	}

	var payment models.Payment
	err := s.DB.Where("transaction_id = ?", entity.ID).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Local reconciliation gap: log it, let the caller ack anyway.
			log.Printf("⚠️ no payment record for transaction %s (event status %s)", entity.ID, status)
			return nil
		}
		return fmt.Errorf("failed to look up payment by transaction id: %w", err)
	}

	if payment.Terminal() && payment.Status != status {
		log.Printf("⚠️ payment %d already %s, ignoring %s for transaction %s",
			payment.ID, payment.Status, status, entity.ID)
		return nil
	}

	updates := map[string]interface{}{
		"status":         status,
		"gateway":        gatewayName,
		"transaction_id": entity.ID,
		"updated_at":     time.Now().UTC(),
	}
	if entity.Method != "" {
		updates["method"] = entity.Method
	}

	if err := s.DB.Model(&models.Payment{}).
		Where("transaction_id = ?", entity.ID).
		Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update payment %d: %w", payment.ID, err)
	}
	return nil
}

// CreateCheckout opens a pending payment row before the client is redirected
// to the gateway. The booking id may be unknown at this point.
func (s *PaymentService) CreateCheckout(bookingID *uint, amount int64, currency string) (models.Payment, error) {
	if amount <= 0 {
		return models.Payment{}, fmt.Errorf("validation: amount must be positive")
	}
	if currency == "" {
		currency = "INR"
	}

	payment := models.Payment{
		BookingID: bookingID,
		Amount:    amount,
		Currency:  currency,
		Status:    models.PaymentStatusPending,
		Gateway:   gatewayName,
		ReceiptID: uuid.NewString(),
	}
	if err := s.DB.Create(&payment).Error; err != nil {
		return models.Payment{}, fmt.Errorf("failed to create payment: %w", err)
	}
	return payment, nil
}

// ConfirmPayment is the client-side completion path, keyed by local id. It
// races the webhook by design: if the webhook already settled the record,
// re-applying the same terminal status is a no-op and a conflicting one is
// ignored in favor of what the gateway said.
func (s *PaymentService) ConfirmPayment(paymentID uint, transactionID, method, status string) (models.Payment, error) {
	if status != models.PaymentStatusCompleted && status != models.PaymentStatusFailed {
		return models.Payment{}, fmt.Errorf("validation: unsupported status %q", status)
	}

	var payment models.Payment
	if err := s.DB.First(&payment, paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Payment{}, ErrPaymentNotFound
		}
		return models.Payment{}, fmt.Errorf("failed to load payment: %w", err)
	}

	if payment.Terminal() {
		if payment.Status != status {
			log.Printf("⚠️ payment %d already %s, client reported %s; keeping gateway state",
				payment.ID, payment.Status, status)
		}
		return payment, nil
	}

	updates := map[string]interface{}{
		"status":     status,
		"gateway":    gatewayName,
		"updated_at": time.Now().UTC(),
	}
	if transactionID != "" {
		updates["transaction_id"] = transactionID
	}
	if method != "" {
		updates["method"] = method
	}

	if err := s.DB.Model(&payment).Updates(updates).Error; err != nil {
		return models.Payment{}, fmt.Errorf("failed to update payment %d: %w", payment.ID, err)
	}

	if err := s.DB.First(&payment, paymentID).Error; err != nil {
		return models.Payment{}, err
	}
	return payment, nil
}

// AttachBooking links a payment created before its booking existed.
func (s *PaymentService) AttachBooking(paymentID, bookingID uint) error {
	res := s.DB.Model(&models.Payment{}).
		Where("id = ?", paymentID).
		Update("booking_id", bookingID)
	if res.Error != nil {
		return fmt.Errorf("failed to attach booking: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func (s *PaymentService) GetPayment(paymentID uint) (*models.Payment, error) {
	var payment models.Payment
	if err := s.DB.First(&payment, paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to load payment: %w", err)
	}
	return &payment, nil
}

package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"

	"stayfinder-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "whsec_test"

func signBody(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func seedPayment(t *testing.T, db *gorm.DB, status string, txnID *string) models.Payment {
	t.Helper()
	payment := models.Payment{
		Amount:        1041600,
		Currency:      "INR",
		Status:        status,
		Gateway:       "razorpay",
		TransactionID: txnID,
	}
	require.NoError(t, db.Create(&payment).Error)
	return payment
}

func strp(s string) *string { return &s }

func capturedEvent(txnID string, captured bool) []byte {
	return []byte(fmt.Sprintf(
		`{"event":"payment.captured","payload":{"payment":{"entity":{"id":%q,"amount":1041600,"currency":"INR","status":"captured","captured":%t,"method":"upi"}}}}`,
		txnID, captured))
}

func failedEvent(txnID string) []byte {
	return []byte(fmt.Sprintf(
		`{"event":"payment.failed","payload":{"payment":{"entity":{"id":%q,"amount":1041600,"currency":"INR","status":"failed","captured":false,"method":"card"}}}}`,
		txnID))
}

func TestVerifySignature(t *testing.T) {
	svc := &PaymentService{WebhookSecret: testSecret}
	body := capturedEvent("pay_ABC123", true)

	t.Run("valid signature", func(t *testing.T) {
		assert.True(t, svc.VerifySignature(body, signBody(testSecret, body)))
	})

	t.Run("tampered body", func(t *testing.T) {
		sig := signBody(testSecret, body)
		tampered := append([]byte{}, body...)
		tampered[len(tampered)-2] ^= 0x01
		assert.False(t, svc.VerifySignature(tampered, sig))
	})

	t.Run("wrong secret", func(t *testing.T) {
		assert.False(t, svc.VerifySignature(body, signBody("other_secret", body)))
	})

	t.Run("empty signature", func(t *testing.T) {
		assert.False(t, svc.VerifySignature(body, ""))
	})
}

func TestHandleWebhookEvent(t *testing.T) {
	db := newTestDB(t)
	svc := NewPaymentService(db, testSecret)

	t.Run("captured event completes pending payment", func(t *testing.T) {
		payment := seedPayment(t, db, models.PaymentStatusPending, strp("pay_CAP1"))

		require.NoError(t, svc.HandleWebhookEvent(capturedEvent("pay_CAP1", true)))

		var reloaded models.Payment
		require.NoError(t, db.First(&reloaded, payment.ID).Error)
		assert.Equal(t, models.PaymentStatusCompleted, reloaded.Status)
		assert.Equal(t, "upi", reloaded.Method)
		assert.Equal(t, "razorpay", reloaded.Gateway)
	})

	t.Run("uncaptured event leaves payment pending", func(t *testing.T) {
		payment := seedPayment(t, db, models.PaymentStatusPending, strp("pay_AUTH1"))

		require.NoError(t, svc.HandleWebhookEvent(capturedEvent("pay_AUTH1", false)))

		var reloaded models.Payment
		require.NoError(t, db.First(&reloaded, payment.ID).Error)
		assert.Equal(t, models.PaymentStatusPending, reloaded.Status)
	})

	t.Run("failed event fails pending payment", func(t *testing.T) {
		payment := seedPayment(t, db, models.PaymentStatusPending, strp("pay_FAIL1"))

		require.NoError(t, svc.HandleWebhookEvent(failedEvent("pay_FAIL1")))

		var reloaded models.Payment
		require.NoError(t, db.First(&reloaded, payment.ID).Error)
		assert.Equal(t, models.PaymentStatusFailed, reloaded.Status)
	})

	t.Run("duplicate captured event is idempotent", func(t *testing.T) {
		payment := seedPayment(t, db, models.PaymentStatusCompleted, strp("pay_DUP1"))

		require.NoError(t, svc.HandleWebhookEvent(capturedEvent("pay_DUP1", true)))

		var reloaded models.Payment
		require.NoError(t, db.First(&reloaded, payment.ID).Error)
		assert.Equal(t, models.PaymentStatusCompleted, reloaded.Status)
	})

	t.Run("terminal status is never reverted", func(t *testing.T) {
		payment := seedPayment(t, db, models.PaymentStatusCompleted, strp("pay_TERM1"))

		require.NoError(t, svc.HandleWebhookEvent(failedEvent("pay_TERM1")))

		var reloaded models.Payment
		require.NoError(t, db.First(&reloaded, payment.ID).Error)
		assert.Equal(t, models.PaymentStatusCompleted, reloaded.Status)
	})

	t.Run("missing payment row is swallowed", func(t *testing.T) {
		assert.NoError(t, svc.HandleWebhookEvent(capturedEvent("pay_NOROW", true)))
	})

	t.Run("unknown event is acknowledged without action", func(t *testing.T) {
		payment := seedPayment(t, db, models.PaymentStatusPending, strp("pay_OTHER1"))
		body := []byte(`{"event":"refund.processed","payload":{"payment":{"entity":{"id":"pay_OTHER1"}}}}`)

		require.NoError(t, svc.HandleWebhookEvent(body))

		var reloaded models.Payment
		require.NoError(t, db.First(&reloaded, payment.ID).Error)
		assert.Equal(t, models.PaymentStatusPending, reloaded.Status)
	})

	t.Run("malformed json", func(t *testing.T) {
		err := svc.HandleWebhookEvent([]byte(`{"event":`))
		assert.ErrorIs(t, err, ErrMalformedPayload)
	})

	t.Run("missing event name", func(t *testing.T) {
		err := svc.HandleWebhookEvent([]byte(`{"payload":{}}`))
		assert.ErrorIs(t, err, ErrMalformedPayload)
	})
}

func TestCreateCheckout(t *testing.T) {
	db := newTestDB(t)
	svc := NewPaymentService(db, testSecret)

	t.Run("creates pending payment without booking", func(t *testing.T) {
		payment, err := svc.CreateCheckout(nil, 500000, "")
		require.NoError(t, err)
		assert.Equal(t, models.PaymentStatusPending, payment.Status)
		assert.Equal(t, "INR", payment.Currency)
		assert.Nil(t, payment.BookingID)
		assert.Nil(t, payment.TransactionID)
		assert.NotEmpty(t, payment.ReceiptID)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := svc.CreateCheckout(nil, 0, "INR")
		assert.Error(t, err)
	})
}

func TestConfirmPayment(t *testing.T) {
	db := newTestDB(t)
	svc := NewPaymentService(db, testSecret)

	t.Run("client confirm sets transaction id", func(t *testing.T) {
		payment := seedPayment(t, db, models.PaymentStatusPending, nil)

		updated, err := svc.ConfirmPayment(payment.ID, "pay_CLIENT1", "upi", models.PaymentStatusCompleted)
		require.NoError(t, err)
		assert.Equal(t, models.PaymentStatusCompleted, updated.Status)
		require.NotNil(t, updated.TransactionID)
		assert.Equal(t, "pay_CLIENT1", *updated.TransactionID)
	})

	t.Run("webhook already won the race", func(t *testing.T) {
		payment := seedPayment(t, db, models.PaymentStatusCompleted, strp("pay_RACE1"))

		updated, err := svc.ConfirmPayment(payment.ID, "pay_RACE1", "upi", models.PaymentStatusFailed)
		require.NoError(t, err)
		// gateway state wins
		assert.Equal(t, models.PaymentStatusCompleted, updated.Status)
	})

	t.Run("same terminal status re-applied is a no-op", func(t *testing.T) {
		payment := seedPayment(t, db, models.PaymentStatusCompleted, strp("pay_RACE2"))

		updated, err := svc.ConfirmPayment(payment.ID, "pay_RACE2", "upi", models.PaymentStatusCompleted)
		require.NoError(t, err)
		assert.Equal(t, models.PaymentStatusCompleted, updated.Status)
	})

	t.Run("unknown payment", func(t *testing.T) {
		_, err := svc.ConfirmPayment(9999, "pay_X", "upi", models.PaymentStatusCompleted)
		assert.ErrorIs(t, err, ErrPaymentNotFound)
	})

	t.Run("unsupported status", func(t *testing.T) {
		payment := seedPayment(t, db, models.PaymentStatusPending, nil)
		_, err := svc.ConfirmPayment(payment.ID, "", "", "refunded")
		assert.Error(t, err)
	})
}

func TestAttachBooking(t *testing.T) {
	db := newTestDB(t)
	svc := NewPaymentService(db, testSecret)
	payment := seedPayment(t, db, models.PaymentStatusPending, nil)

	require.NoError(t, svc.AttachBooking(payment.ID, 42))

	var reloaded models.Payment
	require.NoError(t, db.First(&reloaded, payment.ID).Error)
	require.NotNil(t, reloaded.BookingID)
	assert.Equal(t, uint(42), *reloaded.BookingID)

	assert.ErrorIs(t, svc.AttachBooking(9999, 42), ErrPaymentNotFound)
}

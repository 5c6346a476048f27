package controllers

import (
	"errors"
	"io"
	"log"
	"net/http"

	"stayfinder-backend/services"
	"stayfinder-backend/utils"

	"github.com/gin-gonic/gin"
)

// SignatureHeader is the gateway's webhook signature header: a hex
// HMAC-SHA-256 digest of the raw request body.
const SignatureHeader = "X-Razorpay-Signature"

type CreateCheckoutRequest struct {
	BookingID *uint  `json:"booking_id,omitempty"`
	Amount    int64  `json:"amount" binding:"required"`
	Currency  string `json:"currency"`
}

type ConfirmPaymentRequest struct {
	TransactionID string `json:"transaction_id"`
	Method        string `json:"method"`
	Status        string `json:"status" binding:"required"`
}

type PaymentController struct {
	PaymentSvc *services.PaymentService
}

func NewPaymentController(svc *services.PaymentService) *PaymentController {
	return &PaymentController{PaymentSvc: svc}
}

// CreateCheckout (POST /api/payments/checkout) opens a pending payment row
// and returns what the client-side checkout needs.
func (ctrl *PaymentController) CreateCheckout(c *gin.Context) {
	var req CreateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONErrorWithDetails(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	payment, err := ctrl.PaymentSvc.CreateCheckout(req.BookingID, req.Amount, req.Currency)
	if err != nil {
		log.Printf("❌ DB ERROR creating payment: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create payment")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"payment_id": payment.ID,
		"amount":     payment.Amount,
		"currency":   payment.Currency,
		"receipt":    payment.ReceiptID,
		"key_id":     utils.EnvOrDefault("RAZORPAY_KEY_ID", ""),
	})
}

// ConfirmPayment (POST /api/payments/:id/confirm) is the client-side success
// handler path, keyed by local id. The webhook may already have settled the
// record; that is fine either way.
func (ctrl *PaymentController) ConfirmPayment(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "Invalid payment id")
		return
	}

	var req ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONErrorWithDetails(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	payment, err := ctrl.PaymentSvc.ConfirmPayment(id, req.TransactionID, req.Method, req.Status)
	if err != nil {
		if errors.Is(err, services.ErrPaymentNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Payment not found")
			return
		}
		log.Printf("❌ DB ERROR confirming payment %d: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to confirm payment")
		return
	}
	c.JSON(http.StatusOK, payment)
}

// GetPayment (GET /api/payments/:id)
func (ctrl *PaymentController) GetPayment(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "Invalid payment id")
		return
	}

	payment, err := ctrl.PaymentSvc.GetPayment(id)
	if err != nil {
		if errors.Is(err, services.ErrPaymentNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Payment not found")
			return
		}
		log.Printf("❌ DB ERROR loading payment %d: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load payment")
		return
	}
	c.JSON(http.StatusOK, payment)
}

// HandleGatewayWebhook (POST /api/webhooks/payment) verifies the signature
// over the exact raw bytes before parsing anything, then applies an
// idempotent reconciliation. Once signature and JSON pass, the response is
// always 200 "ok" — persistence trouble is logged, not surfaced, so the
// gateway does not retry-storm us.
func (ctrl *PaymentController) HandleGatewayWebhook(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Failed to read request body")
		return
	}

	signature := c.GetHeader(SignatureHeader)
	if !ctrl.PaymentSvc.VerifySignature(raw, signature) {
		log.Printf("⚠️ webhook rejected: bad signature from %s", c.ClientIP())
		utils.JSONError(c, http.StatusBadRequest, "invalid signature")
		return
	}

	if err := ctrl.PaymentSvc.HandleWebhookEvent(raw); err != nil {
		if errors.Is(err, services.ErrMalformedPayload) {
			log.Printf("⚠️ webhook rejected: %v", err)
			utils.JSONError(c, http.StatusBadRequest, "malformed payload")
			return
		}
		// Verified event that failed downstream: ack anyway.
		log.Printf("❌ webhook reconciliation error (acked): %v", err)
	}

	c.String(http.StatusOK, "ok")
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/RobertoSuarez97/almacenBackend/internal/payment"
	"github.com/RobertoSuarez97/almacenBackend/pkg/logger"
	"github.com/RobertoSuarez97/almacenBackend/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CheckoutHandler delegates purchases to the payment collaborator
type CheckoutHandler struct {
	payments *payment.Client
}

// NewCheckoutHandler creates a CheckoutHandler
func NewCheckoutHandler(payments *payment.Client) *CheckoutHandler {
	return &CheckoutHandler{payments: payments}
}

// CrearPreferencia registers a purchase intent with the payment
// provider and returns the redirect URL for the buyer.
func (h *CheckoutHandler) CrearPreferencia(c echo.Context) error {
	log := logger.FromEcho(c)

	var req payment.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Solicitud de checkout inválida", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "El carrito está vacío o es inválido"})
	}

	result, err := h.payments.CreatePreference(c.Request().Context(), &req)
	if err != nil {
		return respondError(c, log, err, "Error al crear preferencia")
	}
	prometheus.PreferencesCreatedCounter.Inc()

	return c.JSON(http.StatusOK, echo.Map{
		"init_point":    result.InitPoint,
		"preference_id": result.PreferenceID,
	})
}

// webhookNotification is the asynchronous payment-status notification
type webhookNotification struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// Webhook acknowledges payment notifications. Payment lookups are best
// effort: a failed lookup is logged but the notification is still
// acknowledged so the provider does not retry forever.
func (h *CheckoutHandler) Webhook(c echo.Context) error {
	log := logger.FromEcho(c)

	var notification webhookNotification
	if err := c.Bind(&notification); err != nil {
		log.Error("Error en webhook", zap.Error(err))
		return c.String(http.StatusInternalServerError, "Error")
	}

	prometheus.WebhooksReceivedCounter.WithLabelValues(notification.Type).Inc()
	log.Info("Webhook recibido",
		zap.String("type", notification.Type),
		zap.String("data_id", notification.Data.ID))

	if notification.Type == "payment" {
		if paymentID, err := strconv.Atoi(notification.Data.ID); err == nil {
			status, err := h.payments.LookupPayment(c.Request().Context(), paymentID)
			if err != nil {
				log.Warn("No se pudo consultar el pago",
					zap.Int("payment_id", paymentID),
					zap.Error(err))
			} else {
				log.Info("Pago procesado",
					zap.Int("payment_id", paymentID),
					zap.String("status", status))
			}
		}
	}

	return c.String(http.StatusOK, "OK")
}

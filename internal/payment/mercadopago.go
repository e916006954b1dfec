// Package payment wraps the MercadoPago collaborator behind the
// create-preference / look-up-payment contract the checkout handlers
// consume.
package payment

import (
	"context"

	"github.com/RobertoSuarez97/almacenBackend/internal/apperr"
	"github.com/RobertoSuarez97/almacenBackend/internal/catalog"
	appconfig "github.com/RobertoSuarez97/almacenBackend/pkg/config"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	mppayment "github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"go.uber.org/zap"
)

// CartItem is one product line of the buyer's cart
type CartItem struct {
	ID        uint    `json:"id"`
	Nombre    string  `json:"nombre"`
	Cantidad  int     `json:"cantidad"`
	Precio    float64 `json:"precio"`
	Descuento int     `json:"descuento"`
}

// CheckoutRequest is the body of a create-preference call
type CheckoutRequest struct {
	Carrito        []CartItem             `json:"carrito"`
	Envio          map[string]interface{} `json:"envio"`
	EmailComprador string                 `json:"emailComprador"`
}

// PreferenceResult carries the provider identifiers the front end needs
type PreferenceResult struct {
	PreferenceID string `json:"preference_id"`
	InitPoint    string `json:"init_point"`
}

// Client talks to the payment provider
type Client struct {
	preferences preference.Client
	payments    mppayment.Client
	frontendURL string
	backendURL  string
	log         *zap.Logger
}

// New creates a payment client from the application configuration
func New(cfg *appconfig.Config, log *zap.Logger) (*Client, error) {
	mpCfg, err := mpconfig.New(cfg.MercadoPago.AccessToken)
	if err != nil {
		return nil, err
	}
	return &Client{
		preferences: preference.NewClient(mpCfg),
		payments:    mppayment.NewClient(mpCfg),
		frontendURL: cfg.Server.FrontendURL,
		backendURL:  cfg.Server.BackendURL,
		log:         log,
	}, nil
}

// CreatePreference validates the cart and registers a purchase intent
// with the provider. Unit prices carry the catalog discount, rounded at
// the cent like everywhere else.
func (c *Client) CreatePreference(ctx context.Context, req *CheckoutRequest) (*PreferenceResult, error) {
	if len(req.Carrito) == 0 {
		return nil, apperr.Validationf("El carrito está vacío o es inválido")
	}
	if req.EmailComprador == "" {
		return nil, apperr.Validationf("El email del comprador es requerido")
	}

	items := make([]preference.ItemRequest, 0, len(req.Carrito))
	cartSnapshot := make([]map[string]interface{}, 0, len(req.Carrito))
	for _, producto := range req.Carrito {
		items = append(items, preference.ItemRequest{
			Title:      producto.Nombre,
			Quantity:   producto.Cantidad,
			UnitPrice:  catalog.FinalUnitPrice(producto.Precio, producto.Descuento),
			CurrencyID: "MXN",
		})
		cartSnapshot = append(cartSnapshot, map[string]interface{}{
			"id":              producto.ID,
			"nombre":          producto.Nombre,
			"cantidad":        producto.Cantidad,
			"precio_original": producto.Precio,
			"descuento":       producto.Descuento,
		})
	}

	request := preference.Request{
		Items: items,
		Payer: &preference.PayerRequest{
			Email: req.EmailComprador,
		},
		BackURLs: &preference.BackURLsRequest{
			Success: c.frontendURL + "/pago-exitoso",
			Failure: c.frontendURL + "/pago-fallido",
			Pending: c.frontendURL + "/pago-pendiente",
		},
		AutoReturn:      "approved",
		NotificationURL: c.backendURL + "/api/checkout/webhook",
		Metadata: map[string]interface{}{
			"envio":   req.Envio,
			"carrito": cartSnapshot,
		},
	}

	resource, err := c.preferences.Create(ctx, request)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "No se pudo crear la preferencia de pago", err)
	}

	c.log.Info("Preferencia creada exitosamente",
		zap.String("preference_id", resource.ID))

	return &PreferenceResult{
		PreferenceID: resource.ID,
		InitPoint:    resource.InitPoint,
	}, nil
}

// LookupPayment fetches a payment referenced by a webhook notification.
// Best effort: callers log failures and keep acknowledging the webhook.
func (c *Client) LookupPayment(ctx context.Context, paymentID int) (string, error) {
	resource, err := c.payments.Get(ctx, paymentID)
	if err != nil {
		return "", err
	}
	return resource.Status, nil
}

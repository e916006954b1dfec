package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/RobertoSuarez97/almacenBackend/internal/apperr"
)

type fakePreferences struct {
	request  *preference.Request
	response *preference.Response
	err      error
}

func (f *fakePreferences) Create(ctx context.Context, request preference.Request) (*preference.Response, error) {
	f.request = &request
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func (f *fakePreferences) Get(ctx context.Context, id string) (*preference.Response, error) {
	return nil, nil
}

func (f *fakePreferences) Update(ctx context.Context, id string, request preference.Request) (*preference.Response, error) {
	return nil, nil
}

func (f *fakePreferences) Search(ctx context.Context, request preference.SearchRequest) (*preference.PagingResponse, error) {
	return nil, nil
}

func newTestClient(fake *fakePreferences) *Client {
	return &Client{
		preferences: fake,
		frontendURL: "https://tienda.example.com",
		backendURL:  "https://api.example.com",
		log:         zap.NewNop(),
	}
}

func TestCreatePreference_EmptyCart(t *testing.T) {
	c := newTestClient(&fakePreferences{})

	_, err := c.CreatePreference(context.Background(), &CheckoutRequest{
		EmailComprador: "comprador@example.com",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
	assert.Equal(t, "El carrito está vacío o es inválido", apperr.Message(err))
}

func TestCreatePreference_MissingEmail(t *testing.T) {
	c := newTestClient(&fakePreferences{})

	_, err := c.CreatePreference(context.Background(), &CheckoutRequest{
		Carrito: []CartItem{{ID: 1, Nombre: "Mochila", Cantidad: 1, Precio: 499.90}},
	})
	require.Error(t, err)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
	assert.Equal(t, "El email del comprador es requerido", apperr.Message(err))
}

func TestCreatePreference_BuildsDiscountedItems(t *testing.T) {
	fake := &fakePreferences{
		response: &preference.Response{ID: "pref-123", InitPoint: "https://mp.example.com/init"},
	}
	c := newTestClient(fake)

	result, err := c.CreatePreference(context.Background(), &CheckoutRequest{
		Carrito: []CartItem{
			{ID: 1, Nombre: "Mochila", Cantidad: 2, Precio: 19.99, Descuento: 10},
			{ID: 2, Nombre: "Botella", Cantidad: 1, Precio: 100, Descuento: 0},
		},
		Envio:          map[string]interface{}{"cp": "06600"},
		EmailComprador: "comprador@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "pref-123", result.PreferenceID)
	assert.Equal(t, "https://mp.example.com/init", result.InitPoint)

	require.NotNil(t, fake.request)
	require.Len(t, fake.request.Items, 2)
	assert.Equal(t, preference.ItemRequest{
		Title:      "Mochila",
		Quantity:   2,
		UnitPrice:  17.99,
		CurrencyID: "MXN",
	}, fake.request.Items[0])
	assert.Equal(t, 100.0, fake.request.Items[1].UnitPrice)

	require.NotNil(t, fake.request.Payer)
	assert.Equal(t, "comprador@example.com", fake.request.Payer.Email)
	require.NotNil(t, fake.request.BackURLs)
	assert.Equal(t, "https://tienda.example.com/pago-exitoso", fake.request.BackURLs.Success)
	assert.Equal(t, "https://tienda.example.com/pago-fallido", fake.request.BackURLs.Failure)
	assert.Equal(t, "https://tienda.example.com/pago-pendiente", fake.request.BackURLs.Pending)
	assert.Equal(t, "approved", fake.request.AutoReturn)
	assert.Equal(t, "https://api.example.com/api/checkout/webhook", fake.request.NotificationURL)
	assert.Contains(t, fake.request.Metadata, "envio")
	assert.Contains(t, fake.request.Metadata, "carrito")
}

func TestCreatePreference_ProviderFailure(t *testing.T) {
	c := newTestClient(&fakePreferences{err: errors.New("mp: 500")})

	_, err := c.CreatePreference(context.Background(), &CheckoutRequest{
		Carrito:        []CartItem{{ID: 1, Nombre: "Mochila", Cantidad: 1, Precio: 10}},
		EmailComprador: "comprador@example.com",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.Internal, apperr.KindOf(err))
	assert.Equal(t, "No se pudo crear la preferencia de pago", apperr.Message(err))
}

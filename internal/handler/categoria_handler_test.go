package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RobertoSuarez97/almacenBackend/internal/model"
)

type fakeDetalleStore struct {
	inserted  [][]model.ProductoCategoria
	listed    []uint
	deleted   int64
	insertErr error
	listErr   error
	deleteErr error
}

func (f *fakeDetalleStore) InsertDetalles(rows []model.ProductoCategoria) error {
	f.inserted = append(f.inserted, rows)
	return f.insertErr
}

func (f *fakeDetalleStore) ListDetalles(productoID uint) ([]uint, error) {
	return f.listed, f.listErr
}

func (f *fakeDetalleStore) DeleteDetalles(productoID uint) (int64, error) {
	deleted := f.deleted
	f.deleted = 0
	return deleted, f.deleteErr
}

func detalleRequest(t *testing.T, h *CategoriaHandler, method, body, id string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)

	var err error
	switch method {
	case http.MethodPost:
		err = h.AddDetalleCategoria(c)
	case http.MethodGet:
		err = h.GetDetalleCategoria(c)
	case http.MethodDelete:
		err = h.DeleteDetalleCategoria(c)
	}
	require.NoError(t, err)
	return rec
}

func TestAddDetalleCategoria_EmptyList(t *testing.T) {
	store := &fakeDetalleStore{}
	h := NewCategoriaHandler(store)

	rec := detalleRequest(t, h, http.MethodPost, "[]", "10")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, store.inserted, "no insert may run for an empty list")
}

func TestAddDetalleCategoria_MalformedBody(t *testing.T) {
	store := &fakeDetalleStore{}
	h := NewCategoriaHandler(store)

	rec := detalleRequest(t, h, http.MethodPost, "{not json}", "10")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, store.inserted)
}

func TestAddDetalleCategoria_InvalidProductID(t *testing.T) {
	store := &fakeDetalleStore{}
	h := NewCategoriaHandler(store)

	rec := detalleRequest(t, h, http.MethodPost, "[1,2]", "abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, store.inserted)
}

func TestAddDetalleCategoria_InsertsExactRows(t *testing.T) {
	store := &fakeDetalleStore{}
	h := NewCategoriaHandler(store)

	rec := detalleRequest(t, h, http.MethodPost, "[2,5]", "10")
	assert.Equal(t, http.StatusCreated, rec.Code)

	require.Len(t, store.inserted, 1)
	assert.Equal(t, []model.ProductoCategoria{
		{ProductoID: 10, CategoriaID: 2},
		{ProductoID: 10, CategoriaID: 5},
	}, store.inserted[0])

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(2), body["count"])
}

func TestGetDetalleCategoria_EmptyListIsNotAnError(t *testing.T) {
	h := NewCategoriaHandler(&fakeDetalleStore{})

	rec := detalleRequest(t, h, http.MethodGet, "", "10")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestGetDetalleCategoria_ReturnsAssociatedIDs(t *testing.T) {
	h := NewCategoriaHandler(&fakeDetalleStore{listed: []uint{2, 5}})

	rec := detalleRequest(t, h, http.MethodGet, "", "10")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"categoria_id":2},{"categoria_id":5}]`, rec.Body.String())
}

func TestDeleteDetalleCategoria_Idempotent(t *testing.T) {
	store := &fakeDetalleStore{deleted: 2}
	h := NewCategoriaHandler(store)

	// First delete removes the rows.
	rec := detalleRequest(t, h, http.MethodDelete, "", "10")
	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(2), body["deleted"])

	// Second delete finds nothing and still succeeds.
	rec = detalleRequest(t, h, http.MethodDelete, "", "10")
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(0), body["deleted"])
	assert.Equal(t, "El producto no tenía categorías asociadas.", body["message"])
}

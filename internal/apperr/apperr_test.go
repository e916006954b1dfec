package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validationf("falta el campo nombre"), http.StatusBadRequest},
		{"not found", NotFoundf("Producto no encontrado"), http.StatusNotFound},
		{"conflict", Conflictf("La marca ya existe"), http.StatusConflict},
		{"asset transfer", New(AssetTransfer, "Error al subir el archivo"), http.StatusInternalServerError},
		{"internal", New(Internal, "fallo inesperado"), http.StatusInternalServerError},
		{"unclassified", errors.New("driver: bad connection"), http.StatusInternalServerError},
		{"wrapped by fmt", fmt.Errorf("handler: %w", NotFoundf("Marca no encontrada")), http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Producto no encontrado", Message(NotFoundf("Producto no encontrado")))
	assert.Equal(t, "La galería admite un máximo de 10 imágenes",
		Message(Validationf("La galería admite un máximo de %d imágenes", 10)))

	// Unclassified errors never leak driver detail to the client.
	assert.Equal(t, "Error interno del servidor", Message(errors.New("pq: connection refused")))
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := errors.New("EOF")
	err := Wrap(AssetTransfer, "Error al subir el archivo por FTP", cause)

	assert.Equal(t, AssetTransfer, KindOf(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "EOF")
	assert.Equal(t, "Error al subir el archivo por FTP", Message(err))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, Validation, KindOf(Validationf("x")))
	assert.Equal(t, Internal, KindOf(errors.New("x")))
	assert.Equal(t, Internal, KindOf(nil))

	var appErr *Error
	require.True(t, errors.As(Conflictf("dup"), &appErr))
	assert.Equal(t, Conflict, appErr.Kind)
}

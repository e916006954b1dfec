package upload

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RobertoSuarez97/almacenBackend/internal/apperr"
	"github.com/RobertoSuarez97/almacenBackend/pkg/config"
)

func newStaging(t *testing.T, maxGallery int) *Staging {
	t.Helper()
	s, err := New(&config.UploadConfig{Dir: t.TempDir(), MaxGallery: maxGallery})
	require.NoError(t, err)
	return s
}

// buildForm assembles a parsed multipart form with the given number of
// photo and gallery parts.
func buildForm(t *testing.T, photos, gallery int) *multipart.Form {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for i := 0; i < photos; i++ {
		part, err := w.CreateFormFile(FieldPhoto, fmt.Sprintf("foto%d.jpg", i))
		require.NoError(t, err)
		_, err = part.Write([]byte("photo-bytes"))
		require.NoError(t, err)
	}
	for i := 0; i < gallery; i++ {
		part, err := w.CreateFormFile(FieldGallery, fmt.Sprintf("galeria%d.png", i))
		require.NoError(t, err)
		_, err = part.Write([]byte("gallery-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form
}

func TestStageForm_MissingPhoto(t *testing.T) {
	s := newStaging(t, 10)

	_, err := s.StageForm(buildForm(t, 0, 2))
	require.Error(t, err)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	_, err = s.StageForm(nil)
	require.Error(t, err)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestStageForm_MultiplePhotosRejected(t *testing.T) {
	s := newStaging(t, 10)

	_, err := s.StageForm(buildForm(t, 2, 0))
	require.Error(t, err)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	// Cardinality is checked before any write.
	entries, readErr := os.ReadDir(s.Dir())
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestStageForm_GalleryOverLimit(t *testing.T) {
	s := newStaging(t, 3)

	_, err := s.StageForm(buildForm(t, 1, 4))
	require.Error(t, err)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	entries, readErr := os.ReadDir(s.Dir())
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestStageForm_WritesUniqueNamesKeepingExtension(t *testing.T) {
	s := newStaging(t, 10)

	staged, err := s.StageForm(buildForm(t, 1, 2))
	require.NoError(t, err)

	require.NotNil(t, staged.MainImage)
	assert.Equal(t, "foto0.jpg", staged.MainImage.OriginalName)
	assert.NotEqual(t, "foto0.jpg", staged.MainImage.StoredName)
	assert.True(t, strings.HasSuffix(staged.MainImage.StoredName, ".jpg"))
	assert.FileExists(t, staged.MainImage.LocalPath)
	assert.Equal(t, s.Dir(), filepath.Dir(staged.MainImage.LocalPath))

	require.Len(t, staged.Gallery, 2)
	seen := map[string]bool{staged.MainImage.StoredName: true}
	for _, part := range staged.Gallery {
		assert.True(t, strings.HasSuffix(part.StoredName, ".png"))
		assert.FileExists(t, part.LocalPath)
		assert.False(t, seen[part.StoredName], "stored names must not collide")
		seen[part.StoredName] = true
	}
}

func TestStageUpdateForm_PhotoOptional(t *testing.T) {
	s := newStaging(t, 10)

	staged, err := s.StageUpdateForm(buildForm(t, 0, 1))
	require.NoError(t, err)
	assert.Nil(t, staged.MainImage)
	assert.Len(t, staged.Gallery, 1)

	staged, err = s.StageUpdateForm(nil)
	require.NoError(t, err)
	assert.Nil(t, staged.MainImage)
	assert.Empty(t, staged.Gallery)
}

func TestStageUpdateForm_SinglePhotoStillEnforced(t *testing.T) {
	s := newStaging(t, 10)

	_, err := s.StageUpdateForm(buildForm(t, 2, 0))
	require.Error(t, err)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestCleanupLocal_RemovesRemainingFiles(t *testing.T) {
	s := newStaging(t, 10)

	staged, err := s.StageForm(buildForm(t, 1, 1))
	require.NoError(t, err)

	// Simulate the main image already consumed by an upload attempt.
	require.NoError(t, os.Remove(staged.MainImage.LocalPath))

	staged.CleanupLocal()
	assert.NoFileExists(t, staged.MainImage.LocalPath)
	assert.NoFileExists(t, staged.Gallery[0].LocalPath)
}

func TestNew_DefaultsGalleryLimit(t *testing.T) {
	s, err := New(&config.UploadConfig{Dir: t.TempDir()})
	require.NoError(t, err)

	_, err = s.StageForm(buildForm(t, 1, 10))
	assert.NoError(t, err)

	_, err = s.StageForm(buildForm(t, 1, 11))
	require.Error(t, err)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

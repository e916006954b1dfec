// Package upload stages incoming multipart image parts in a local
// directory before they are relocated to the remote asset store.
package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/RobertoSuarez97/almacenBackend/internal/apperr"
	"github.com/RobertoSuarez97/almacenBackend/pkg/config"

	"github.com/google/uuid"
)

const (
	// FieldPhoto is the required single main-image part
	FieldPhoto = "photo"
	// FieldGallery is the optional repeated gallery part
	FieldGallery = "gallery"
)

// FilePart is one staged file: its temporary local path plus the
// collision-resistant name it will keep on the remote store.
type FilePart struct {
	LocalPath    string
	StoredName   string
	OriginalName string
}

// Form is the typed view of a product multipart submission
type Form struct {
	MainImage *FilePart
	Gallery   []FilePart
}

// Staging writes multipart parts into a local temporary directory
type Staging struct {
	dir        string
	maxGallery int
}

// New creates the staging area, creating the directory if absent
func New(cfg *config.UploadConfig) (*Staging, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create staging directory %s: %w", cfg.Dir, err)
	}
	maxGallery := cfg.MaxGallery
	if maxGallery <= 0 {
		maxGallery = 10
	}
	return &Staging{dir: cfg.Dir, maxGallery: maxGallery}, nil
}

// Dir returns the staging directory
func (s *Staging) Dir() string {
	return s.dir
}

// StageForm validates part cardinality and writes every file part to
// the staging area. The main image is required; the gallery is bounded.
// Nothing is written until cardinality checks pass, and on a mid-stage
// write failure the files staged so far are removed.
func (s *Staging) StageForm(form *multipart.Form) (*Form, error) {
	if form == nil {
		return nil, apperr.Validationf("Debe subir una imagen principal")
	}

	photos := form.File[FieldPhoto]
	if len(photos) == 0 {
		return nil, apperr.Validationf("Debe subir una imagen principal")
	}
	if len(photos) > 1 {
		return nil, apperr.Validationf("Solo se permite una imagen principal")
	}

	gallery := form.File[FieldGallery]
	if len(gallery) > s.maxGallery {
		return nil, apperr.Validationf("La galería admite un máximo de %d imágenes", s.maxGallery)
	}

	staged := &Form{}
	main, err := s.stagePart(photos[0])
	if err != nil {
		return nil, err
	}
	staged.MainImage = main

	for _, header := range gallery {
		part, err := s.stagePart(header)
		if err != nil {
			staged.CleanupLocal()
			return nil, err
		}
		staged.Gallery = append(staged.Gallery, *part)
	}

	return staged, nil
}

// StageUpdateForm behaves like StageForm but the main image part is
// optional, matching the update contract where the existing image may
// be kept.
func (s *Staging) StageUpdateForm(form *multipart.Form) (*Form, error) {
	staged := &Form{}
	if form == nil {
		return staged, nil
	}

	photos := form.File[FieldPhoto]
	if len(photos) > 1 {
		return nil, apperr.Validationf("Solo se permite una imagen principal")
	}

	gallery := form.File[FieldGallery]
	if len(gallery) > s.maxGallery {
		return nil, apperr.Validationf("La galería admite un máximo de %d imágenes", s.maxGallery)
	}

	if len(photos) == 1 {
		main, err := s.stagePart(photos[0])
		if err != nil {
			return nil, err
		}
		staged.MainImage = main
	}

	for _, header := range gallery {
		part, err := s.stagePart(header)
		if err != nil {
			staged.CleanupLocal()
			return nil, err
		}
		staged.Gallery = append(staged.Gallery, *part)
	}

	return staged, nil
}

// stagePart writes a single part under a unique token + original extension
func (s *Staging) stagePart(header *multipart.FileHeader) (*FilePart, error) {
	src, err := header.Open()
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "No se pudo leer el archivo recibido", err)
	}
	defer src.Close()

	storedName := uuid.New().String() + filepath.Ext(header.Filename)
	localPath := filepath.Join(s.dir, storedName)

	dst, err := os.Create(localPath)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "No se pudo guardar el archivo recibido", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(localPath)
		return nil, apperr.Wrap(apperr.Internal, "No se pudo guardar el archivo recibido", err)
	}

	return &FilePart{
		LocalPath:    localPath,
		StoredName:   storedName,
		OriginalName: header.Filename,
	}, nil
}

// CleanupLocal deletes every staged file of the form that still exists.
// Files already consumed by an upload attempt are gone by then; this
// only reaps parts the pipeline never reached.
func (f *Form) CleanupLocal() {
	if f.MainImage != nil {
		os.Remove(f.MainImage.LocalPath)
	}
	for _, part := range f.Gallery {
		os.Remove(part.LocalPath)
	}
}

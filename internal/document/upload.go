package document

import (
	"errors"
	"io"
	"net/http"

	"github.com/saulo-duarte/odontomind-api/internal/config"
	"github.com/saulo-duarte/odontomind-api/internal/pdftext"
)

var (
	ErrNoFile       = errors.New("Por favor, selecione um arquivo PDF.")
	ErrFileTooLarge = errors.New("arquivo excede o tamanho máximo permitido")
)

// ReadUpload reads the "file" part of a multipart request, capped at maxBytes.
func ReadUpload(w http.ResponseWriter, r *http.Request, maxBytes int64) (Upload, error) {
	if r.ContentLength > maxBytes {
		return Upload{}, ErrFileTooLarge
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return Upload{}, ErrFileTooLarge
		}
		return Upload{}, ErrNoFile
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return Upload{}, ErrNoFile
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return Upload{}, err
	}
	if len(data) == 0 {
		return Upload{}, ErrNoFile
	}

	return Upload{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// WriteUploadError maps upload and extraction failures to HTTP errors. It
// returns false for any other error.
func WriteUploadError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, ErrNoFile):
		config.Error(w, http.StatusUnprocessableEntity, "no_file", ErrNoFile.Error())
	case errors.Is(err, ErrFileTooLarge):
		config.Error(w, http.StatusRequestEntityTooLarge, "file_too_large", err.Error())
	case errors.Is(err, pdftext.ErrNotPDF):
		config.Error(w, http.StatusUnsupportedMediaType, "not_pdf", ErrNoFile.Error())
	case errors.Is(err, pdftext.ErrEmptyText):
		config.Error(w, http.StatusUnprocessableEntity, "empty_pdf", pdftext.ErrEmptyText.Error())
	case errors.Is(err, pdftext.ErrExtraction):
		config.Error(w, http.StatusUnprocessableEntity, "extraction_failed", "Ocorreu um erro ao processar o PDF. O arquivo pode estar corrompido.")
	default:
		return false
	}
	return true
}

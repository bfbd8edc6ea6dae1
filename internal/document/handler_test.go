package document_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/saulo-duarte/odontomind-api/internal/aigateway"
	"github.com/saulo-duarte/odontomind-api/internal/auth"
	"github.com/saulo-duarte/odontomind-api/internal/document"
	"github.com/saulo-duarte/odontomind-api/internal/pdftext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartBody(t *testing.T, name, contentType string, data []byte, folder string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+name+`"`)
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("folder", folder))
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func newRouter(svc document.Service, maxBytes int64) http.Handler {
	r := chi.NewRouter()
	r.Mount("/documents", document.Routes(document.NewHandler(svc, maxBytes)))
	return r
}

func withUser(req *http.Request, userID uuid.UUID) *http.Request {
	ctx := auth.WithClaims(req.Context(), &auth.Claims{UserID: userID.String()})
	return req.WithContext(ctx)
}

func TestAnalyzeHandler(t *testing.T) {
	pdf := []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\n")
	userID := uuid.New()

	svcWith := func(p aigateway.Provider) document.Service {
		return document.NewService(document.NewMemoryRepository(), aigateway.NewService(p), func([]byte) (pdftext.Text, error) {
			return pdftext.Text{Pages: []string{"conteúdo"}}, nil
		})
	}

	t.Run("Unauthorized", func(t *testing.T) {
		body, ct := multipartBody(t, "Aula1.pdf", "application/pdf", pdf, "Endodontia")
		req := httptest.NewRequest(http.MethodPost, "/documents/analyze", body)
		req.Header.Set("Content-Type", ct)
		rec := httptest.NewRecorder()
		newRouter(svcWith(aigateway.NewUnavailableProvider()), 1<<20).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("NotPDF", func(t *testing.T) {
		body, ct := multipartBody(t, "foto.png", "image/png", []byte("\x89PNG\r\n"), "Endodontia")
		req := withUser(httptest.NewRequest(http.MethodPost, "/documents/analyze", body), userID)
		req.Header.Set("Content-Type", ct)
		rec := httptest.NewRecorder()
		newRouter(svcWith(aigateway.NewUnavailableProvider()), 1<<20).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})

	t.Run("CredentialMissing", func(t *testing.T) {
		body, ct := multipartBody(t, "Aula1.pdf", "application/pdf", pdf, "Endodontia")
		req := withUser(httptest.NewRequest(http.MethodPost, "/documents/analyze", body), userID)
		req.Header.Set("Content-Type", ct)
		rec := httptest.NewRecorder()
		newRouter(svcWith(aigateway.NewUnavailableProvider()), 1<<20).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, aigateway.CredentialMissingMessage, resp["message"])
	})

	t.Run("TooLarge", func(t *testing.T) {
		body, ct := multipartBody(t, "Aula1.pdf", "application/pdf", bytes.Repeat([]byte("a"), 4096), "Endodontia")
		req := withUser(httptest.NewRequest(http.MethodPost, "/documents/analyze", body), userID)
		req.Header.Set("Content-Type", ct)
		rec := httptest.NewRecorder()
		newRouter(svcWith(aigateway.NewUnavailableProvider()), 512).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})

	t.Run("MissingFile", func(t *testing.T) {
		req := withUser(httptest.NewRequest(http.MethodPost, "/documents/analyze", nil), userID)
		rec := httptest.NewRecorder()
		newRouter(svcWith(aigateway.NewUnavailableProvider()), 1<<20).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestGetDocumentHandler(t *testing.T) {
	repo := document.NewMemoryRepository()
	svc := document.NewService(repo, aigateway.NewService(aigateway.NewUnavailableProvider()), pdftext.Extract)
	userID := uuid.New()
	doc := &document.Document{ID: uuid.New(), UserID: userID, Name: "Aula1.pdf", Folder: "Endodontia"}
	require.NoError(t, repo.Create(context.Background(), doc))

	t.Run("Found", func(t *testing.T) {
		req := withUser(httptest.NewRequest(http.MethodGet, "/documents/"+doc.ID.String(), nil), userID)
		rec := httptest.NewRecorder()
		newRouter(svc, 1<<20).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Aula1.pdf")
	})

	t.Run("OtherUser", func(t *testing.T) {
		req := withUser(httptest.NewRequest(http.MethodGet, "/documents/"+doc.ID.String(), nil), uuid.New())
		rec := httptest.NewRecorder()
		newRouter(svc, 1<<20).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("InvalidID", func(t *testing.T) {
		req := withUser(httptest.NewRequest(http.MethodGet, "/documents/abc", nil), userID)
		rec := httptest.NewRecorder()
		newRouter(svc, 1<<20).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

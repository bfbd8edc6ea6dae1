package recording_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/saulo-duarte/odontomind-api/internal/aigateway"
	"github.com/saulo-duarte/odontomind-api/internal/auth"
	"github.com/saulo-duarte/odontomind-api/internal/config"
	"github.com/saulo-duarte/odontomind-api/internal/recording"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTranscriber struct {
	stream *fakeStream
}

func (f fakeTranscriber) Open(context.Context) (aigateway.LiveStream, error) {
	return f.stream, nil
}

func newRouter(svc recording.Service, live aigateway.LiveTranscriber, userID uuid.UUID) http.Handler {
	r := chi.NewRouter()
	if userID != uuid.Nil {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				ctx := auth.WithClaims(req.Context(), &auth.Claims{UserID: userID.String()})
				next.ServeHTTP(w, req.WithContext(ctx))
			})
		})
	}
	r.Mount("/recordings", recording.Routes(recording.NewHandler(svc, live, nil)))
	return r
}

func TestCreateRecordingHandler(t *testing.T) {
	userID := uuid.New()
	gw := &fakeGateway{summary: "S"}
	svc := recording.NewService(recording.NewMemoryRepository(), gw)

	t.Run("unauthorized", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/recordings", strings.NewReader(`{"transcription":"x"}`))
		newRouter(svc, aigateway.NewUnavailableLiveTranscriber(), uuid.Nil).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("no speech", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/recordings", strings.NewReader(`{"transcription":"  "}`))
		newRouter(svc, aigateway.NewUnavailableLiveTranscriber(), userID).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		var body config.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "no_speech", body.Error)
		assert.Equal(t, recording.ErrNoSpeech.Error(), body.Message)
	})

	t.Run("created and listed", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/recordings", strings.NewReader(`{"transcription":"anestesia local"}`))
		newRouter(svc, aigateway.NewUnavailableLiveTranscriber(), userID).ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = httptest.NewRecorder()
		req = httptest.NewRequest(http.MethodGet, "/recordings", nil)
		newRouter(svc, aigateway.NewUnavailableLiveTranscriber(), userID).ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var recs []recording.RecordedClass
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &recs))
		require.Len(t, recs, 1)
		assert.Equal(t, "anestesia local", recs[0].Transcription)
		require.NotNil(t, recs[0].Summary)
		assert.Equal(t, "S", recs[0].Summary.Content)
	})
}

func TestLiveSessionHandler_MissingCredential(t *testing.T) {
	svc := recording.NewService(recording.NewMemoryRepository(), &fakeGateway{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/recordings/live", nil)

	newRouter(svc, aigateway.NewUnavailableLiveTranscriber(), uuid.New()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body config.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, aigateway.CredentialMissingMessage, body.Message)
}

func TestLiveSessionHandler_Websocket(t *testing.T) {
	gw := &fakeGateway{summary: "Resumo"}
	svc := recording.NewService(recording.NewMemoryRepository(), gw)
	stream := newFakeStream()

	srv := httptest.NewServer(newRouter(svc, fakeTranscriber{stream: stream}, uuid.New()))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/recordings/live"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte{0, 1}))
	stream.events <- aigateway.TranscriptEvent{Text: "endodontia", TurnComplete: true}

	var msg recording.LiveMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, recording.MessageTranscript, msg.Type)
	assert.Equal(t, "endodontia ", msg.Transcript)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "stop"}))

	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, recording.MessageSaved, msg.Type)
	require.NotNil(t, msg.Recording)
	assert.Equal(t, "endodontia", msg.Recording.Transcription)
	require.NotNil(t, msg.Recording.Summary)
	assert.Equal(t, "Resumo", msg.Recording.Summary.Content)
}

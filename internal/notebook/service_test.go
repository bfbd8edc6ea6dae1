package notebook_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/odontomind-api/internal/aigateway"
	"github.com/saulo-duarte/odontomind-api/internal/document"
	"github.com/saulo-duarte/odontomind-api/internal/notebook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDocuments struct {
	docs      map[uuid.UUID]*document.Document
	ingestErr error
	ingested  []string
}

func newFakeDocuments() *fakeDocuments {
	return &fakeDocuments{docs: map[uuid.UUID]*document.Document{}}
}

func (f *fakeDocuments) Ingest(_ context.Context, userID uuid.UUID, upload document.Upload, folder string) (*document.Document, error) {
	if f.ingestErr != nil {
		return nil, f.ingestErr
	}
	doc := &document.Document{ID: uuid.New(), UserID: userID, Name: upload.Name, Content: string(upload.Data), Folder: folder}
	f.docs[doc.ID] = doc
	f.ingested = append(f.ingested, folder)
	return doc, nil
}

func (f *fakeDocuments) GetMany(_ context.Context, _ uuid.UUID, ids []uuid.UUID) ([]*document.Document, error) {
	var out []*document.Document
	for _, id := range ids {
		if d, ok := f.docs[id]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

type chatProvider struct {
	calls   int32
	started chan struct{}
	release chan struct{}
	reply   string
	err     error
}

func (p *chatProvider) Generate(ctx context.Context, _ aigateway.Request) (string, error) {
	atomic.AddInt32(&p.calls, 1)
	if p.started != nil {
		p.started <- struct{}{}
		<-p.release
	}
	return p.reply, p.err
}

func TestCreateAndList(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	svc := notebook.NewService(notebook.NewMemoryRepository(), newFakeDocuments(), aigateway.NewService(&chatProvider{}))

	_, err := svc.Create(ctx, userID, "   ")
	assert.ErrorIs(t, err, notebook.ErrInvalidName)

	n, err := svc.Create(ctx, userID, "  Prótese  ")
	require.NoError(t, err)
	assert.Equal(t, "Prótese", n.Name)
	assert.Empty(t, n.DocumentIDs)

	names, err := svc.Names(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Prótese"}, names)

	others, err := svc.List(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, others)
}

func TestAddDocument(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("UsesNotebookNameAsFolder", func(t *testing.T) {
		docs := newFakeDocuments()
		svc := notebook.NewService(notebook.NewMemoryRepository(), docs, aigateway.NewService(&chatProvider{}))
		n, err := svc.Create(ctx, userID, "Ortodontia")
		require.NoError(t, err)

		doc, err := svc.AddDocument(ctx, userID, n.ID, document.Upload{Name: "Aula1.pdf", Data: []byte("x")})
		require.NoError(t, err)
		assert.Equal(t, []string{"Ortodontia"}, docs.ingested)

		view, err := svc.Get(ctx, userID, n.ID)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{doc.ID}, []uuid.UUID(view.DocumentIDs))
		require.Len(t, view.Documents, 1)
	})

	t.Run("FailedIngestLeavesNotebookUnchanged", func(t *testing.T) {
		docs := newFakeDocuments()
		docs.ingestErr = &aigateway.Error{Op: "summarize", Kind: aigateway.KindTransport, Err: errors.New("quota")}
		svc := notebook.NewService(notebook.NewMemoryRepository(), docs, aigateway.NewService(&chatProvider{}))
		n, err := svc.Create(ctx, userID, "Ortodontia")
		require.NoError(t, err)

		_, err = svc.AddDocument(ctx, userID, n.ID, document.Upload{Name: "Aula1.pdf", Data: []byte("x")})
		assert.ErrorIs(t, err, aigateway.ErrTransport)

		view, err := svc.Get(ctx, userID, n.ID)
		require.NoError(t, err)
		assert.Empty(t, view.DocumentIDs)
	})

	t.Run("UnknownNotebook", func(t *testing.T) {
		svc := notebook.NewService(notebook.NewMemoryRepository(), newFakeDocuments(), aigateway.NewService(&chatProvider{}))
		_, err := svc.AddDocument(ctx, userID, uuid.New(), document.Upload{Name: "a.pdf"})
		assert.ErrorIs(t, err, notebook.ErrNotebookNotFound)
	})
}

func TestAsk(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("GreetingSeedsHistory", func(t *testing.T) {
		svc := notebook.NewService(notebook.NewMemoryRepository(), newFakeDocuments(), aigateway.NewService(&chatProvider{}))
		n, _ := svc.Create(ctx, userID, "Endo")

		msgs, err := svc.Messages(ctx, userID, n.ID)
		require.NoError(t, err)
		require.Len(t, msgs, 1)
		assert.Equal(t, notebook.RoleModel, msgs[0].Role)
		assert.Equal(t, notebook.Greeting, msgs[0].Content)
	})

	t.Run("NoDocumentsFailsLocally", func(t *testing.T) {
		p := &chatProvider{reply: `{"answer":"x","sources":[]}`}
		svc := notebook.NewService(notebook.NewMemoryRepository(), newFakeDocuments(), aigateway.NewService(p))
		n, _ := svc.Create(ctx, userID, "Endo")

		msg, err := svc.Ask(ctx, userID, n.ID, "O que é pulpite?")
		assert.ErrorIs(t, err, aigateway.ErrNoDocuments)
		assert.Zero(t, atomic.LoadInt32(&p.calls))
		assert.Equal(t, aigateway.NoDocumentsMessage, msg.Content)

		msgs, _ := svc.Messages(ctx, userID, n.ID)
		require.Len(t, msgs, 3)
		assert.Equal(t, notebook.RoleUser, msgs[1].Role)
		assert.Equal(t, aigateway.NoDocumentsMessage, msgs[2].Content)
		assert.True(t, msgs[2].Failed)
	})

	t.Run("AnswerWithCitations", func(t *testing.T) {
		p := &chatProvider{reply: `{"answer":"É uma inflamação da polpa [1].","sources":[{"id":1,"quote":"inflamação da polpa"}]}`}
		docs := newFakeDocuments()
		svc := notebook.NewService(notebook.NewMemoryRepository(), docs, aigateway.NewService(p))
		n, _ := svc.Create(ctx, userID, "Endo")
		_, err := svc.AddDocument(ctx, userID, n.ID, document.Upload{Name: "Aula1.pdf", Data: []byte("A pulpite é uma inflamação da polpa.")})
		require.NoError(t, err)

		msg, err := svc.Ask(ctx, userID, n.ID, "O que é pulpite?")
		require.NoError(t, err)
		assert.Equal(t, notebook.RoleModel, msg.Role)
		require.Len(t, msg.Sources, 1)
		assert.Equal(t, "Aula1.pdf", msg.Sources[0].DocumentName)
		require.Len(t, msg.Segments, 3)
		assert.NotNil(t, msg.Segments[1].Citation)
	})

	t.Run("CredentialMissingMessage", func(t *testing.T) {
		docs := newFakeDocuments()
		svc := notebook.NewService(notebook.NewMemoryRepository(), docs, aigateway.NewService(aigateway.NewUnavailableProvider()))
		n, _ := svc.Create(ctx, userID, "Endo")
		_, err := svc.AddDocument(ctx, userID, n.ID, document.Upload{Name: "Aula1.pdf", Data: []byte("texto")})
		require.NoError(t, err)

		msg, err := svc.Ask(ctx, userID, n.ID, "pergunta")
		assert.ErrorIs(t, err, aigateway.ErrCredentialMissing)
		assert.Equal(t, aigateway.CredentialMissingMessage, msg.Content)
	})

	t.Run("EmptyQuestion", func(t *testing.T) {
		svc := notebook.NewService(notebook.NewMemoryRepository(), newFakeDocuments(), aigateway.NewService(&chatProvider{}))
		n, _ := svc.Create(ctx, userID, "Endo")
		_, err := svc.Ask(ctx, userID, n.ID, "  ")
		assert.ErrorIs(t, err, notebook.ErrEmptyQuestion)
	})

	t.Run("OneTurnInFlight", func(t *testing.T) {
		p := &chatProvider{
			started: make(chan struct{}),
			release: make(chan struct{}),
			reply:   `{"answer":"ok","sources":[]}`,
		}
		docs := newFakeDocuments()
		svc := notebook.NewService(notebook.NewMemoryRepository(), docs, aigateway.NewService(p))
		n, _ := svc.Create(ctx, userID, "Endo")
		_, err := svc.AddDocument(ctx, userID, n.ID, document.Upload{Name: "Aula1.pdf", Data: []byte("texto")})
		require.NoError(t, err)

		done := make(chan error, 1)
		go func() {
			_, err := svc.Ask(ctx, userID, n.ID, "primeira")
			done <- err
		}()

		select {
		case <-p.started:
		case <-time.After(2 * time.Second):
			t.Fatal("first turn never reached the provider")
		}

		_, err = svc.Ask(ctx, userID, n.ID, "segunda")
		assert.ErrorIs(t, err, notebook.ErrTurnInProgress)

		close(p.release)
		require.NoError(t, <-done)

		msgs, _ := svc.Messages(ctx, userID, n.ID)
		require.Len(t, msgs, 3)
		assert.Equal(t, "primeira", msgs[1].Content)
		assert.Equal(t, "ok", msgs[2].Content)
	})
}

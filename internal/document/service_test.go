package document

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/odontomind-api/internal/aigateway"
	"github.com/saulo-duarte/odontomind-api/internal/pdftext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pdfBytes = []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<<>>\nendobj\n")

type fakeProvider struct {
	calls   int32
	summary string
	fail    error
}

func (p *fakeProvider) Generate(_ context.Context, req aigateway.Request) (string, error) {
	atomic.AddInt32(&p.calls, 1)
	if p.fail != nil {
		return "", p.fail
	}
	if req.Schema == nil {
		return p.summary, nil
	}
	items := make([]map[string]any, aigateway.QuestionsPerBatch)
	for i := range items {
		items[i] = map[string]any{
			"question":      fmt.Sprintf("Questão %d", i+1),
			"options":       []string{"Hipoclorito", "Clorexidina", "EDTA", "Soro"},
			"correctAnswer": "Hipoclorito",
		}
	}
	b, _ := json.Marshal(items)
	return string(b), nil
}

func extractText(text string) ExtractFunc {
	return func([]byte) (pdftext.Text, error) {
		return pdftext.Text{Pages: []string{text}}, nil
	}
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func setup(t *testing.T, p *fakeProvider) (*documentService, DocumentRepository, *clock) {
	t.Helper()
	repo := NewMemoryRepository()
	c := &clock{t: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	svc := newService(repo, aigateway.NewService(p), extractText("T"), c.now)
	return svc, repo, c
}

func TestAnalyzeAndSave(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("SavesExactlyOneDocument", func(t *testing.T) {
		svc, repo, _ := setup(t, &fakeProvider{summary: "S"})

		draft, err := svc.Analyze(ctx, userID, Upload{Name: "Aula1.pdf", ContentType: "application/pdf", Data: pdfBytes}, "Endodontia")
		require.NoError(t, err)
		assert.Equal(t, "Resumo de Aula1.pdf", draft.Document.Summary.Title)

		docs, _ := repo.ListByUser(ctx, userID)
		assert.Empty(t, docs, "analysis alone must not persist")

		saved, err := svc.SaveDraft(ctx, userID, draft.ID)
		require.NoError(t, err)
		assert.Equal(t, "Endodontia", saved.Folder)
		assert.Equal(t, "S", saved.Summary.Content)
		assert.Len(t, saved.Questions, 5)
		assert.Equal(t, saved.ID, saved.Summary.SourceID)
		assert.Equal(t, SourceTypePDF, saved.Summary.SourceType)

		_, err = svc.SaveDraft(ctx, userID, draft.ID)
		assert.ErrorIs(t, err, ErrDraftNotFound)

		docs, _ = repo.ListByUser(ctx, userID)
		require.Len(t, docs, 1)
	})

	t.Run("ReloadIsIdentical", func(t *testing.T) {
		svc, _, _ := setup(t, &fakeProvider{summary: "S"})

		draft, err := svc.Analyze(ctx, userID, Upload{Name: "Aula1.pdf", Data: pdfBytes}, "Endodontia")
		require.NoError(t, err)
		_, err = svc.RenameDraft(ctx, userID, draft.ID, "Canais radiculares")
		require.NoError(t, err)
		saved, err := svc.SaveDraft(ctx, userID, draft.ID)
		require.NoError(t, err)

		first, err := svc.Get(ctx, userID, saved.ID)
		require.NoError(t, err)
		second, err := svc.Get(ctx, userID, saved.ID)
		require.NoError(t, err)

		assert.Equal(t, "Canais radiculares", first.Summary.Title)
		assert.Equal(t, saved.Summary.Content, first.Summary.Content)
		assert.Equal(t, []aigateway.Question(saved.Questions), []aigateway.Question(first.Questions))
		assert.Equal(t, first, second)
	})

	t.Run("DefaultFolder", func(t *testing.T) {
		svc, _, _ := setup(t, &fakeProvider{summary: "S"})
		draft, err := svc.Analyze(ctx, userID, Upload{Name: "a.pdf", Data: pdfBytes}, "  ")
		require.NoError(t, err)
		assert.Equal(t, DefaultFolder, draft.Document.Folder)
	})

	t.Run("RejectsNonPDFBeforeAI", func(t *testing.T) {
		p := &fakeProvider{summary: "S"}
		svc, _, _ := setup(t, p)
		_, err := svc.Analyze(ctx, userID, Upload{Name: "foto.png", ContentType: "image/png", Data: []byte("\x89PNG")}, "Endodontia")
		assert.ErrorIs(t, err, pdftext.ErrNotPDF)
		assert.Zero(t, atomic.LoadInt32(&p.calls))
	})

	t.Run("RenameValidation", func(t *testing.T) {
		svc, _, _ := setup(t, &fakeProvider{summary: "S"})
		draft, err := svc.Analyze(ctx, userID, Upload{Name: "a.pdf", Data: pdfBytes}, "Cirurgia")
		require.NoError(t, err)

		_, err = svc.RenameDraft(ctx, userID, draft.ID, "   ")
		assert.ErrorIs(t, err, ErrInvalidTitle)

		_, err = svc.RenameDraft(ctx, uuid.New(), draft.ID, "outro usuário")
		assert.ErrorIs(t, err, ErrDraftNotFound)
	})

	t.Run("DraftExpires", func(t *testing.T) {
		svc, _, c := setup(t, &fakeProvider{summary: "S"})
		draft, err := svc.Analyze(ctx, userID, Upload{Name: "a.pdf", Data: pdfBytes}, "Cirurgia")
		require.NoError(t, err)

		c.t = c.t.Add(DraftTTL + time.Second)
		_, err = svc.SaveDraft(ctx, userID, draft.ID)
		assert.ErrorIs(t, err, ErrDraftNotFound)
	})
}

func TestIngest(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Persists", func(t *testing.T) {
		svc, repo, _ := setup(t, &fakeProvider{summary: "S"})
		doc, err := svc.Ingest(ctx, userID, Upload{Name: "Aula2.pdf", Data: pdfBytes}, "Prótese")
		require.NoError(t, err)
		assert.Equal(t, "Prótese", doc.Folder)

		docs, _ := repo.ListByUser(ctx, userID)
		assert.Len(t, docs, 1)
	})

	t.Run("AIFailureStoresNothing", func(t *testing.T) {
		svc, repo, _ := setup(t, &fakeProvider{fail: errors.New("quota")})
		doc, err := svc.Ingest(ctx, userID, Upload{Name: "Aula2.pdf", Data: pdfBytes}, "Prótese")
		require.Error(t, err)
		assert.ErrorIs(t, err, aigateway.ErrTransport)
		assert.Nil(t, doc)

		docs, _ := repo.ListByUser(ctx, userID)
		assert.Empty(t, docs)
	})

	t.Run("ExtractionFailureStoresNothing", func(t *testing.T) {
		repo := NewMemoryRepository()
		p := &fakeProvider{summary: "S"}
		svc := NewService(repo, aigateway.NewService(p), func([]byte) (pdftext.Text, error) {
			return pdftext.Text{}, fmt.Errorf("%w: broken xref", pdftext.ErrExtraction)
		})

		_, err := svc.Ingest(ctx, userID, Upload{Name: "x.pdf", Data: pdfBytes}, "Prótese")
		assert.ErrorIs(t, err, pdftext.ErrExtraction)
		assert.Zero(t, atomic.LoadInt32(&p.calls))
		docs, _ := repo.ListByUser(ctx, userID)
		assert.Empty(t, docs)
	})
}

func TestListAndTopics(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	svc, repo, _ := setup(t, &fakeProvider{summary: "S"})

	require.NoError(t, repo.Create(ctx, &Document{ID: uuid.New(), UserID: userID, Name: "a", Folder: "Endodontia",
		Questions: []aigateway.Question{{ID: "1", Question: "q", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "a"}}}))
	require.NoError(t, repo.Create(ctx, &Document{ID: uuid.New(), UserID: userID, Name: "b", Folder: "Periodontia"}))
	require.NoError(t, repo.Create(ctx, &Document{ID: uuid.New(), UserID: userID, Name: "c", Folder: "Cirurgia",
		Questions: []aigateway.Question{{ID: "2", Question: "q", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "b"}}}))
	require.NoError(t, repo.Create(ctx, &Document{ID: uuid.New(), UserID: uuid.New(), Name: "other", Folder: "Farmacologia"}))

	all, err := svc.List(ctx, userID, FolderAll)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	endo, err := svc.List(ctx, userID, "Endodontia")
	require.NoError(t, err)
	require.Len(t, endo, 1)
	assert.Equal(t, "a", endo[0].Name)

	topics, err := svc.Topics(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Endodontia", "Cirurgia"}, topics)

	pool, err := svc.QuestionPool(ctx, userID, FolderAll)
	require.NoError(t, err)
	assert.Len(t, pool, 2)

	_, err = svc.Get(ctx, userID, uuid.New())
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

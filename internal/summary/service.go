package summary

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/saulo-duarte/odontomind-api/internal/config"
	"github.com/saulo-duarte/odontomind-api/internal/document"
	"github.com/saulo-duarte/odontomind-api/internal/recording"
	"golang.org/x/sync/errgroup"
)

type DocumentLister interface {
	List(ctx context.Context, userID uuid.UUID, folder string) ([]*document.Document, error)
}

type RecordingLister interface {
	List(ctx context.Context, userID uuid.UUID) ([]*recording.RecordedClass, error)
}

type NotebookNamer interface {
	Names(ctx context.Context, userID uuid.UUID) ([]string, error)
}

type Service interface {
	// List returns summaries oldest first. folder "" or "all" keeps everything.
	List(ctx context.Context, userID uuid.UUID, folder string) ([]*document.Summary, error)
	Folders(ctx context.Context, userID uuid.UUID) ([]string, error)
}

type summaryService struct {
	documents  DocumentLister
	recordings RecordingLister
	notebooks  NotebookNamer
}

func NewService(documents DocumentLister, recordings RecordingLister, notebooks NotebookNamer) Service {
	return &summaryService{documents: documents, recordings: recordings, notebooks: notebooks}
}

func (s *summaryService) List(ctx context.Context, userID uuid.UUID, folder string) ([]*document.Summary, error) {
	var (
		docs []*document.Document
		recs []*recording.RecordedClass
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		docs, err = s.documents.List(gctx, userID, document.FolderAll)
		return err
	})
	g.Go(func() error {
		var err error
		recs, err = s.recordings.List(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		config.WithContext(ctx).WithError(err).Error("Erro ao listar resumos")
		return nil, err
	}

	all := folder == "" || folder == document.FolderAll
	out := make([]*document.Summary, 0, len(docs)+len(recs))
	keep := func(sum *document.Summary) {
		if sum != nil && (all || sum.Folder == folder) {
			out = append(out, sum)
		}
	}
	for _, d := range docs {
		keep(d.Summary)
	}
	for _, rc := range recs {
		keep(rc.Summary)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Folders lists the fixed PDF folders, then notebook names, then the
// recordings folder, without duplicates.
func (s *summaryService) Folders(ctx context.Context, userID uuid.UUID) ([]string, error) {
	names, err := s.notebooks.Names(ctx, userID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Erro ao listar pastas")
		return nil, err
	}

	seen := make(map[string]bool)
	folders := make([]string, 0, len(document.PdfFolders)+len(names)+1)
	add := func(f string) {
		if f != "" && !seen[f] {
			seen[f] = true
			folders = append(folders, f)
		}
	}
	for _, f := range document.PdfFolders {
		add(f)
	}
	for _, f := range names {
		add(f)
	}
	add(document.FolderRecordings)
	return folders, nil
}

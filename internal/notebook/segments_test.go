package notebook_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/saulo-duarte/odontomind-api/internal/aigateway"
	"github.com/saulo-duarte/odontomind-api/internal/notebook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegments(t *testing.T) {
	docID := uuid.New()
	sources := []aigateway.Source{
		{ID: 1, Quote: "exige tratamento endodôntico", DocumentID: docID, DocumentName: "Aula1.pdf"},
	}

	t.Run("SplitsAroundMarkers", func(t *testing.T) {
		segs := notebook.Segments("A pulpite irreversível exige tratamento [1]. Fim.", sources)
		require.Len(t, segs, 3)
		assert.Equal(t, "A pulpite irreversível exige tratamento ", segs[0].Text)
		require.NotNil(t, segs[1].Citation)
		assert.Equal(t, "Aula1.pdf", segs[1].Citation.DocumentName)
		assert.Equal(t, ". Fim.", segs[2].Text)
	})

	t.Run("UnknownMarkerStaysText", func(t *testing.T) {
		segs := notebook.Segments("Ver [2] e [1]", sources)
		require.Len(t, segs, 2)
		assert.Equal(t, "Ver [2] e ", segs[0].Text)
		assert.Equal(t, 1, segs[1].Citation.ID)
	})

	t.Run("NoMarkers", func(t *testing.T) {
		segs := notebook.Segments("sem citações", nil)
		assert.Equal(t, []notebook.Segment{{Text: "sem citações"}}, segs)
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Empty(t, notebook.Segments("", sources))
	})
}

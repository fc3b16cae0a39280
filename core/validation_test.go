package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validItem() *LibraryItem {
	sig := SignatureFromMetadata("Prelude in C Major", "Bach")
	return &LibraryItem{
		Id:           IDFromSignature(sig),
		Title:        "Prelude in C Major",
		Composer:     "Bach",
		KeySignature: "C Major",
		Tempo:        120,
		MeasureCount: 35,
		Provenance:   ProvenanceLocalImport,
		Signature:    sig,
	}
}

func TestValidateLibraryItem(t *testing.T) {
	t.Run("valid item", func(t *testing.T) {
		require.NoError(t, ValidateLibraryItem(validItem()))
	})

	t.Run("nil item", func(t *testing.T) {
		err := ValidateLibraryItem(nil)
		assert.ErrorIs(t, err, ErrInvalidLibraryItem)
	})

	t.Run("empty title", func(t *testing.T) {
		item := validItem()
		item.Title = ""
		err := ValidateLibraryItem(item)
		assert.ErrorIs(t, err, ErrEmptyTitle)
	})

	t.Run("empty signature", func(t *testing.T) {
		item := validItem()
		item.Signature = ""
		err := ValidateLibraryItem(item)
		assert.ErrorIs(t, err, ErrEmptySignature)
	})

	t.Run("unknown provenance", func(t *testing.T) {
		item := validItem()
		item.Provenance = Provenance(42)
		err := ValidateLibraryItem(item)
		assert.ErrorIs(t, err, ErrInvalidProvenance)
	})

	t.Run("negative tempo", func(t *testing.T) {
		item := validItem()
		item.Tempo = -10
		err := ValidateLibraryItem(item)
		assert.ErrorIs(t, err, ErrNegativeTempo)
	})

	t.Run("negative measure count", func(t *testing.T) {
		item := validItem()
		item.MeasureCount = -1
		err := ValidateLibraryItem(item)
		assert.ErrorIs(t, err, ErrInvalidLibraryItem)
	})
}

func TestValidateQuery(t *testing.T) {
	assert.NoError(t, ValidateQuery(SearchQuery{Text: "bach prelude"}))
	assert.NoError(t, ValidateQuery(SearchQuery{Composer: "Bach"}))
	assert.ErrorIs(t, ValidateQuery(SearchQuery{}), ErrEmptyQuery)
}

func TestValidateDocument(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		doc := &ScoreDocument{
			Key:      "C Major",
			Tempo:    120,
			Measures: []Measure{{Number: 1}},
		}
		assert.NoError(t, ValidateDocument(doc))
	})

	t.Run("nil document", func(t *testing.T) {
		assert.ErrorIs(t, ValidateDocument(nil), ErrInvalidDocument)
	})

	t.Run("no measures", func(t *testing.T) {
		assert.ErrorIs(t, ValidateDocument(&ScoreDocument{Key: "C"}), ErrInvalidDocument)
	})

	t.Run("negative tempo", func(t *testing.T) {
		doc := &ScoreDocument{Tempo: -1, Measures: []Measure{{Number: 1}}}
		assert.ErrorIs(t, ValidateDocument(doc), ErrNegativeTempo)
	})
}

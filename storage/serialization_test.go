package storage

import (
	"testing"
	"time"

	"github.com/clefworks/scorebase/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibraryItemRoundTrip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	sig := core.SignatureFromMetadata("Prelude in C Major", "Bach")

	item := &core.LibraryItem{
		Id:           core.IDFromSignature(sig),
		Title:        "Prelude in C Major",
		Composer:     "Bach",
		KeySignature: "C Major",
		Tempo:        120,
		MeasureCount: 35,
		Path:         "library/prelude-in-c-major.json",
		Provenance:   core.ProvenanceLocalImport,
		Signature:    sig,
		Tags:         []string{"baroque", "keyboard"},
		InsertedAt:   now,
		UpdatedAt:    now,
	}

	data := MarshalLibraryItem(item)
	require.NotEmpty(t, data)

	got, err := UnmarshalLibraryItem(data)
	require.NoError(t, err)
	assert.Equal(t, item, got)
}

func TestLibraryItemZeroValues(t *testing.T) {
	item := &core.LibraryItem{}
	got, err := UnmarshalLibraryItem(MarshalLibraryItem(item))
	require.NoError(t, err)
	assert.Equal(t, item.Id, got.Id)
	assert.Empty(t, got.Title)
	assert.Empty(t, got.Tags)
}

func TestIDRoundTrip(t *testing.T) {
	id := core.IDFromContent("nocturne op 9 no 2")
	got, err := UnmarshalID(MarshalID(id))
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestUnmarshalTruncatedData(t *testing.T) {
	item := &core.LibraryItem{Title: "Arabesque No. 1", Signature: "abc"}
	data := MarshalLibraryItem(item)

	_, err := UnmarshalLibraryItem(data[:2])
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestCheckpointRoundTrip(t *testing.T) {
	cp := &core.Checkpoint{
		Stage:     "import",
		Position:  4200,
		UpdatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	got, err := UnmarshalCheckpoint(MarshalCheckpoint(cp))
	require.NoError(t, err)
	assert.Equal(t, cp, got)
}

package assistant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Request
	}{
		{"empty input asks for help", "", Request{Intent: IntentHelp}},
		{"help keyword", "help", Request{Intent: IntentHelp}},
		{"question mark", "?", Request{Intent: IntentHelp}},
		{"list keyword", "list", Request{Intent: IntentList}},
		{"library keyword", "Library", Request{Intent: IntentList}},
		{"bare search verb asks for help", "find", Request{Intent: IntentHelp}},
		{"upload with path", "upload scans/nocturne.png",
			Request{Intent: IntentUpload, Path: "scans/nocturne.png"}},
		{"upload without path", "upload", Request{Intent: IntentUpload}},
		{"lone file path is an upload", "Scans/Moonlight.PDF",
			Request{Intent: IntentUpload, Path: "Scans/Moonlight.PDF"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.input))
		})
	}

	t.Run("search strips the verb", func(t *testing.T) {
		got := Classify("find Chopin Nocturne")
		assert.Equal(t, IntentSearch, got.Intent)
		assert.Equal(t, "Chopin Nocturne", got.Query.Text)
	})

	t.Run("free text keeps the whole input", func(t *testing.T) {
		got := Classify("Moonlight Sonata")
		assert.Equal(t, IntentSearch, got.Intent)
		assert.Equal(t, "Moonlight Sonata", got.Query.Text)
	})

	t.Run("classification is deterministic", func(t *testing.T) {
		first := Classify("play hungarian rhapsody")
		for i := 0; i < 50; i++ {
			assert.Equal(t, first, Classify("play hungarian rhapsody"))
		}
	})
}

func TestDispatcher(t *testing.T) {
	ctx := context.Background()

	t.Run("routes to the matching handler", func(t *testing.T) {
		var searched, listed bool
		dispatcher := NewDispatcher(Handlers{
			Search: func(ctx context.Context, r Request) error {
				searched = true
				assert.Equal(t, "Bach Prelude", r.Query.Text)
				return nil
			},
			List: func(ctx context.Context, r Request) error {
				listed = true
				return nil
			},
		})

		require.NoError(t, dispatcher.Dispatch(ctx, "find Bach Prelude"))
		require.NoError(t, dispatcher.Dispatch(ctx, "list"))
		assert.True(t, searched)
		assert.True(t, listed)
	})

	t.Run("missing handler fails", func(t *testing.T) {
		dispatcher := NewDispatcher(Handlers{})
		assert.ErrorIs(t, dispatcher.Dispatch(ctx, "list"), ErrNoHandler)
	})
}

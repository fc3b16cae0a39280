package core

import (
	"encoding/binary"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for library items.
// It is derived from the item's content signature, so identical content
// always maps to the same identifier.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// IDFromSignature derives the item identifier from a content signature.
func IDFromSignature(sig string) ID {
	return IDFromContent(sig)
}

// Provenance identifies where a library item came from.
type Provenance int

const (
	// ProvenanceUserUpload marks items digitized from a user-uploaded sheet.
	ProvenanceUserUpload Provenance = iota + 1
	// ProvenanceLocalImport marks items imported from a local corpus.
	ProvenanceLocalImport
	// ProvenanceCloudIndex marks items known only through the cloud datastore.
	ProvenanceCloudIndex
)

// Priority returns the ranking weight of the provenance.
// User uploads outrank local imports, which outrank cloud references.
func (p Provenance) Priority() int {
	switch p {
	case ProvenanceUserUpload:
		return 3
	case ProvenanceLocalImport:
		return 2
	case ProvenanceCloudIndex:
		return 1
	default:
		return 0
	}
}

func (p Provenance) String() string {
	switch p {
	case ProvenanceUserUpload:
		return "user-uploaded"
	case ProvenanceLocalImport:
		return "local-import"
	case ProvenanceCloudIndex:
		return "cloud-indexed"
	default:
		return "unknown"
	}
}

// LibraryItem is the per-score metadata record held by the library.
// Items are immutable once created except for metadata and path updates
// through the repository's explicit update operation.
type LibraryItem struct {
	Id           ID
	Title        string
	Composer     string
	KeySignature string
	Tempo        int
	MeasureCount int
	Path         string // Storage path of the persisted score document
	Provenance   Provenance
	Signature    string // Content signature used for deduplication
	Tags         []string
	InsertedAt   time.Time
	UpdatedAt    time.Time
}

// SearchQuery is an ephemeral per-request query: free text plus
// optional structured filters. All present filters must match.
type SearchQuery struct {
	Text     string
	Composer string
	Title    string
}

// HasFilters reports whether any structured filter is set.
func (q SearchQuery) HasFilters() bool {
	return q.Composer != "" || q.Title != ""
}

// Source identifies which search stage produced a candidate.
type Source int

const (
	// SourceLocal marks candidates from the local index.
	SourceLocal Source = iota + 1
	// SourceCloud marks candidates from the cloud datastore.
	SourceCloud
)

func (s Source) String() string {
	switch s {
	case SourceLocal:
		return "local"
	case SourceCloud:
		return "cloud"
	default:
		return "unknown"
	}
}

// Candidate is a single ranked search hit. Score is normalized to [0,1]
// by the producing stage so candidates from different sources compare.
type Candidate struct {
	Item   *LibraryItem
	Score  float32
	Source Source
}

// Checkpoint records progress of a long-running import so it can resume.
type Checkpoint struct {
	Stage     string
	Position  int
	UpdatedAt time.Time
}

// ScoreDocument is the structured result of converting a music sheet.
type ScoreDocument struct {
	Key      string    `json:"key"`
	Tempo    int       `json:"tempo"`
	Measures []Measure `json:"measures"`
}

// Measure holds the note groups for one measure, split by hand.
type Measure struct {
	Number    int         `json:"id"`
	RightHand []NoteGroup `json:"right_hand"`
	LeftHand  []NoteGroup `json:"left_hand"`
}

// NoteGroup is a set of simultaneous notes with a shared duration.
type NoteGroup struct {
	Notes    []string `json:"notes"`
	Duration string   `json:"duration"`
}

// Normalized renders the document in a canonical form used for
// content signatures. Identical musical content always produces the
// same normalized string regardless of field casing or whitespace.
func (d *ScoreDocument) Normalized() string {
	var b strings.Builder
	b.WriteString(strings.ToLower(strings.TrimSpace(d.Key)))
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(d.Tempo))
	for _, m := range d.Measures {
		b.WriteString("|m")
		b.WriteString(strconv.Itoa(m.Number))
		b.WriteString(":r=")
		writeGroups(&b, m.RightHand)
		b.WriteString(";l=")
		writeGroups(&b, m.LeftHand)
	}
	return b.String()
}

func writeGroups(b *strings.Builder, groups []NoteGroup) {
	for i, g := range groups {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strings.ToLower(strings.Join(g.Notes, "+")))
		b.WriteByte('/')
		b.WriteString(strings.ToLower(g.Duration))
	}
}

// SignatureFromDocument computes the content signature of a score document.
func SignatureFromDocument(d *ScoreDocument) string {
	return hashHex(d.Normalized())
}

// SignatureFromMetadata computes a fallback signature from title and
// composer. Used for cloud references that carry no content signature.
func SignatureFromMetadata(title, composer string) string {
	normalized := "meta|" + strings.ToLower(strings.TrimSpace(title)) +
		"|" + strings.ToLower(strings.TrimSpace(composer))
	return hashHex(normalized)
}

func hashHex(text string) string {
	h, _ := blake2b.New(32, nil)
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

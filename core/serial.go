package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// Hand-written MUS serializers for the persisted record types. The field
// order below is the wire format; new fields must be appended, never
// reordered.

// IDMUS serializes library item identifiers.
var IDMUS = idMUS{}

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

func (idMUS) Skip(bs []byte) (int, error) {
	return varint.Uint64.Skip(bs)
}

var tagsMUS = ord.NewSliceSer[string](ord.String)

// LibraryItemMUS serializes library item records.
var LibraryItemMUS = libraryItemMUS{}

type libraryItemMUS struct{}

func (libraryItemMUS) Marshal(v LibraryItem, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Title, bs[n:])
	n += ord.String.Marshal(v.Composer, bs[n:])
	n += ord.String.Marshal(v.KeySignature, bs[n:])
	n += varint.Int.Marshal(v.Tempo, bs[n:])
	n += varint.Int.Marshal(v.MeasureCount, bs[n:])
	n += ord.String.Marshal(v.Path, bs[n:])
	n += varint.Int.Marshal(int(v.Provenance), bs[n:])
	n += ord.String.Marshal(v.Signature, bs[n:])
	n += tagsMUS.Marshal(v.Tags, bs[n:])
	n += marshalTime(v.InsertedAt, bs[n:])
	n += marshalTime(v.UpdatedAt, bs[n:])
	return n
}

func (libraryItemMUS) Unmarshal(bs []byte) (v LibraryItem, n int, err error) {
	var m int
	if v.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if v.Title, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + m, err
	}
	n += m
	if v.Composer, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + m, err
	}
	n += m
	if v.KeySignature, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + m, err
	}
	n += m
	if v.Tempo, m, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + m, err
	}
	n += m
	if v.MeasureCount, m, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + m, err
	}
	n += m
	if v.Path, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + m, err
	}
	n += m
	var prov int
	if prov, m, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + m, err
	}
	v.Provenance = Provenance(prov)
	n += m
	if v.Signature, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + m, err
	}
	n += m
	if v.Tags, m, err = tagsMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + m, err
	}
	n += m
	if v.InsertedAt, m, err = unmarshalTime(bs[n:]); err != nil {
		return v, n + m, err
	}
	n += m
	if v.UpdatedAt, m, err = unmarshalTime(bs[n:]); err != nil {
		return v, n + m, err
	}
	n += m
	return v, n, nil
}

func (libraryItemMUS) Size(v LibraryItem) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Title)
	size += ord.String.Size(v.Composer)
	size += ord.String.Size(v.KeySignature)
	size += varint.Int.Size(v.Tempo)
	size += varint.Int.Size(v.MeasureCount)
	size += ord.String.Size(v.Path)
	size += varint.Int.Size(int(v.Provenance))
	size += ord.String.Size(v.Signature)
	size += tagsMUS.Size(v.Tags)
	size += sizeTime(v.InsertedAt)
	size += sizeTime(v.UpdatedAt)
	return size
}

// CheckpointMUS serializes import checkpoints.
var CheckpointMUS = checkpointMUS{}

type checkpointMUS struct{}

func (checkpointMUS) Marshal(v Checkpoint, bs []byte) (n int) {
	n = ord.String.Marshal(v.Stage, bs)
	n += varint.Int.Marshal(v.Position, bs[n:])
	n += marshalTime(v.UpdatedAt, bs[n:])
	return n
}

func (checkpointMUS) Unmarshal(bs []byte) (v Checkpoint, n int, err error) {
	var m int
	if v.Stage, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if v.Position, m, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + m, err
	}
	n += m
	if v.UpdatedAt, m, err = unmarshalTime(bs[n:]); err != nil {
		return v, n + m, err
	}
	n += m
	return v, n, nil
}

func (checkpointMUS) Size(v Checkpoint) int {
	return ord.String.Size(v.Stage) + varint.Int.Size(v.Position) + sizeTime(v.UpdatedAt)
}

// Timestamps are stored as Unix microseconds.

func marshalTime(t time.Time, bs []byte) int {
	return varint.Int64.Marshal(t.UnixMicro(), bs)
}

func unmarshalTime(bs []byte) (time.Time, int, error) {
	v, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return time.Time{}, n, err
	}
	return time.UnixMicro(v).UTC(), n, nil
}

func sizeTime(t time.Time) int {
	return varint.Int64.Size(t.UnixMicro())
}

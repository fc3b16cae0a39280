package ai

// CloudCandidate is a single ranked hit returned by the cloud datastore.
type CloudCandidate struct {
	// Reference is the datastore document identifier.
	Reference string

	// Title and Composer describe the piece as indexed remotely.
	Title    string
	Composer string

	// KeySignature is optional; empty when the datastore doesn't carry it.
	KeySignature string

	// Signature is the content signature as indexed remotely. May be
	// empty for sparse documents; callers fall back to a metadata
	// signature for deduplication.
	Signature string

	// Score is the relevance score normalized to [0,1].
	Score float32
}

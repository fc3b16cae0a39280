// Copyright 2025 Clefworks
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "fmt"

// ValidateLibraryItem validates a LibraryItem according to domain rules.
//
// Validation rules:
//   - Title must not be empty
//   - Signature must not be empty
//   - Provenance must be a known value
//   - Tempo and MeasureCount must not be negative
//
// NOT validated:
//   - Path (cloud-indexed references have no local document)
//   - Tags (optional)
func ValidateLibraryItem(item *LibraryItem) error {
	if item == nil {
		return fmt.Errorf("%w: item is nil", ErrInvalidLibraryItem)
	}

	if item.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidLibraryItem, ErrEmptyTitle)
	}

	if item.Signature == "" {
		return fmt.Errorf("%w: %w", ErrInvalidLibraryItem, ErrEmptySignature)
	}

	if err := ValidateProvenance(item.Provenance); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLibraryItem, err)
	}

	if item.Tempo < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidLibraryItem, ErrNegativeTempo)
	}

	if item.MeasureCount < 0 {
		return fmt.Errorf("%w: measure count cannot be negative", ErrInvalidLibraryItem)
	}

	return nil
}

// ValidateProvenance validates that a Provenance has a valid value.
func ValidateProvenance(p Provenance) error {
	switch p {
	case ProvenanceUserUpload, ProvenanceLocalImport, ProvenanceCloudIndex:
		return nil
	default:
		return fmt.Errorf("%w: value %d", ErrInvalidProvenance, p)
	}
}

// ValidateQuery validates a SearchQuery. A query must carry free text
// or at least one structured filter.
func ValidateQuery(q SearchQuery) error {
	if q.Text == "" && !q.HasFilters() {
		return ErrEmptyQuery
	}
	return nil
}

// ValidateDocument validates a ScoreDocument produced by conversion.
// A document must contain at least one measure.
func ValidateDocument(d *ScoreDocument) error {
	if d == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}
	if len(d.Measures) == 0 {
		return fmt.Errorf("%w: no measures", ErrInvalidDocument)
	}
	if d.Tempo < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrNegativeTempo)
	}
	return nil
}

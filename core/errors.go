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

import "errors"

// Domain validation errors
var (
	// ErrInvalidLibraryItem indicates a LibraryItem failed validation.
	ErrInvalidLibraryItem = errors.New("invalid library item")

	// ErrInvalidDocument indicates a ScoreDocument failed validation.
	ErrInvalidDocument = errors.New("invalid score document")

	// ErrEmptyTitle indicates the Title field is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrEmptySignature indicates the content signature is missing.
	ErrEmptySignature = errors.New("content signature cannot be empty")

	// ErrInvalidProvenance indicates an invalid Provenance value.
	ErrInvalidProvenance = errors.New("invalid provenance")

	// ErrNegativeTempo indicates a negative tempo value.
	ErrNegativeTempo = errors.New("tempo cannot be negative")

	// ErrEmptyQuery indicates a query with neither text nor filters.
	ErrEmptyQuery = errors.New("query cannot be empty")
)

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


package search

import "errors"

var (
	// ErrLibraryRepositoryRequired is returned when a library repository is not provided.
	ErrLibraryRepositoryRequired = errors.New("library repository required")

	// ErrCloudSearcherRequired is returned when a cloud searcher is not provided.
	ErrCloudSearcherRequired = errors.New("cloud searcher required")

	// ErrIndexRequired is returned when a local index is not provided.
	ErrIndexRequired = errors.New("local index required")
)

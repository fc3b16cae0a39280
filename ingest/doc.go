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


// Package ingest brings score documents into the library.
//
// The Importer bulk-loads score document files from a directory on a worker
// pool, deduplicating by content signature and checkpointing progress so an
// interrupted run resumes where it left off. The Uploader handles the single
// user-facing path: convert one sheet image through the recognition service
// and insert the result with user-uploaded provenance.
package ingest

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


// Package search provides local library search with cloud fallback.
//
// The Index type matches queries against the local metadata store. The
// Orchestrator type runs the two-stage resolution algorithm: it serves
// confident local results directly, escalates thin results to the cloud
// datastore, and degrades to an upload suggestion when the cloud cannot
// help. Results from both stages are merged and deduplicated by content
// signature so the same piece never appears twice.
package search

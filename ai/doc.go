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


// Package ai defines the remote service boundaries of the score library:
// the cloud search datastore and the sheet-to-score conversion model.
//
// Both are pure call contracts. Implementations live in subpackages
// (ai/vertex, ai/openai); ai/mock provides test doubles. Failures cross
// the boundary as the typed errors in errors.go so callers can react to
// the kind of failure without knowing the backing service.
package ai

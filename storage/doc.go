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


// Package storage defines the persistence interfaces for the score library.
//
// The LibraryRepository holds one record per library item, addressable by
// identifier and by content signature. Both lookups are point reads so the
// store stays responsive for libraries in the hundreds of thousands of items.
// Implementations live in subpackages (see storage/badger).
package storage

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


package scorebase

import (
	"errors"
	"log/slog"

	"github.com/clefworks/scorebase/ai"
	"github.com/clefworks/scorebase/ai/openai"
	"github.com/clefworks/scorebase/ai/vertex"
	"github.com/clefworks/scorebase/ingest"
	"github.com/clefworks/scorebase/search"
	"github.com/clefworks/scorebase/storage"
	"github.com/clefworks/scorebase/storage/badger"
)

// ErrCloudDisabled is returned when an operation needs the remote services
// but the library was opened without them.
var ErrCloudDisabled = errors.New("remote services not configured")

// Library bundles the metadata store, local index, and remote services
// behind one handle.
type Library struct {
	backend        *badger.Backend
	libraryRepo    storage.LibraryRepository
	checkpointRepo storage.CheckpointRepository
	index          *search.Index
	provider       ai.Provider
	logger         *slog.Logger
}

// LibraryOption configures a Library.
type LibraryOption func(*libraryOptions)

type libraryOptions struct {
	aiConfig *ai.Config
	provider ai.Provider
	inMemory bool
}

// WithAIConfig builds the remote services from the given configuration.
// Opening fails if the configuration is incomplete.
func WithAIConfig(config *ai.Config) LibraryOption {
	return func(o *libraryOptions) {
		o.aiConfig = config
	}
}

// WithProvider injects pre-built remote services, bypassing configuration.
func WithProvider(provider ai.Provider) LibraryOption {
	return func(o *libraryOptions) {
		o.provider = provider
	}
}

// WithInMemoryStorage keeps all data in memory. Intended for tests.
func WithInMemoryStorage() LibraryOption {
	return func(o *libraryOptions) {
		o.inMemory = true
	}
}

// Open opens the library at filePath.
//
// Without WithAIConfig or WithProvider the library runs local-only:
// import, list, and local search work, while operations that reach the
// cloud fail with ErrCloudDisabled.
func Open(filePath string, opts ...LibraryOption) (*Library, error) {
	options := &libraryOptions{}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	libraryRepo := badger.NewLibraryRepository(backend)
	checkpointRepo := badger.NewCheckpointRepository(backend)

	index, err := search.NewIndex(libraryRepo)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil && options.aiConfig != nil {
		searcher, err := vertex.NewSearcher(options.aiConfig)
		if err != nil {
			backend.Close()
			return nil, err
		}
		converter, err := openai.NewConverter(options.aiConfig)
		if err != nil {
			backend.Close()
			return nil, err
		}
		provider = ai.NewProvider(searcher, converter)
	}

	return &Library{
		backend:        backend,
		libraryRepo:    libraryRepo,
		checkpointRepo: checkpointRepo,
		index:          index,
		provider:       provider,
		logger:         slog.Default(),
	}, nil
}

// Close releases the library's resources.
func (l *Library) Close() error {
	if l.provider != nil {
		if err := l.provider.Close(); err != nil {
			l.logger.Error("error closing service provider", "err", err)
		}
	}

	if err := l.libraryRepo.Close(); err != nil {
		l.logger.Error("error closing library repository", "err", err)
		return err
	}

	if err := l.backend.Close(); err != nil {
		l.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// LibraryRepository exposes the metadata store.
func (l *Library) LibraryRepository() storage.LibraryRepository {
	return l.libraryRepo
}

// CheckpointRepository exposes the import checkpoint store.
func (l *Library) CheckpointRepository() storage.CheckpointRepository {
	return l.checkpointRepo
}

// Index exposes the local search index.
func (l *Library) Index() *search.Index {
	return l.index
}

// NewOrchestrator creates the two-stage query resolver.
// Requires remote services.
func (l *Library) NewOrchestrator(opts ...search.OrchestratorOption) (*search.Orchestrator, error) {
	if l.provider == nil {
		return nil, ErrCloudDisabled
	}
	return search.NewOrchestrator(l.index, l.provider.CloudSearcher(), opts...)
}

// NewImporter creates a bulk importer over this library's stores.
func (l *Library) NewImporter(opts ...ingest.ImporterOption) (*ingest.Importer, error) {
	return ingest.NewImporter(l.libraryRepo, l.checkpointRepo, opts...)
}

// NewUploader creates the single-sheet upload flow.
// Requires remote services.
func (l *Library) NewUploader(opts ...ingest.UploaderOption) (*ingest.Uploader, error) {
	if l.provider == nil {
		return nil, ErrCloudDisabled
	}
	return ingest.NewUploader(l.libraryRepo, l.provider.ScoreConverter(), opts...)
}

// Copyright 2025 Poiesic Systems
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


package journalrank

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/poiesic/journalrank/ai"
	"github.com/poiesic/journalrank/ai/openai"
	"github.com/poiesic/journalrank/answer"
	"github.com/poiesic/journalrank/ingestion"
	"github.com/poiesic/journalrank/search"
	"github.com/poiesic/journalrank/storage"
	"github.com/poiesic/journalrank/storage/badger"
)

// Journal wires the entry store, the ranking engine and the answer generator.
type Journal struct {
	backend   *badger.Backend
	entryRepo storage.EntryRepository
	provider  ai.AIProvider
	monitor   search.SearchMonitor
	logger    *slog.Logger
}

// JournalOption configures a Journal.
type JournalOption func(*journalOptions)

type journalOptions struct {
	aiConfig *ai.Config
	provider ai.AIProvider
	inMemory bool
	metrics  prometheus.Registerer
	logger   *slog.Logger
}

// WithAIConfig sets the model used by NewGenerator.
func WithAIConfig(cfg *ai.Config) JournalOption {
	return func(o *journalOptions) {
		o.aiConfig = cfg
	}
}

// WithAIProvider uses provider instead of building one from the AI config.
// The Journal takes ownership and closes it.
func WithAIProvider(provider ai.AIProvider) JournalOption {
	return func(o *journalOptions) {
		o.provider = provider
	}
}

// WithInMemory keeps all entries in memory. The path passed to Open is ignored.
func WithInMemory() JournalOption {
	return func(o *journalOptions) {
		o.inMemory = true
	}
}

// WithMetrics records search metrics on reg for every searcher the Journal creates.
func WithMetrics(reg prometheus.Registerer) JournalOption {
	return func(o *journalOptions) {
		o.metrics = reg
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) JournalOption {
	return func(o *journalOptions) {
		o.logger = logger
	}
}

// Open opens (or creates) the journal stored at filePath.
func Open(filePath string, opts ...JournalOption) (*Journal, error) {
	options := &journalOptions{
		aiConfig: ai.DefaultConfig(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}

	var monitor search.SearchMonitor
	if options.metrics != nil {
		m, err := search.NewMetricsMonitor(options.metrics)
		if err != nil {
			return nil, err
		}
		monitor = m
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	entryRepo, err := badger.NewEntryRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			entryRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Journal{
		backend:   backend,
		entryRepo: entryRepo,
		provider:  provider,
		monitor:   monitor,
		logger:    options.logger,
	}, nil
}

func (j *Journal) Close() error {
	if err := j.provider.Close(); err != nil {
		j.logger.Error("error closing AI provider", "err", err)
	}

	if err := j.entryRepo.Close(); err != nil {
		j.logger.Error("error closing entry repository", "err", err)
		return err
	}

	if err := j.backend.Close(); err != nil {
		j.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (j *Journal) EntryRepository() storage.EntryRepository {
	return j.entryRepo
}

func (j *Journal) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	opts = append([]ingestion.Option{ingestion.WithLogger(j.logger)}, opts...)
	return ingestion.NewPipeline(j.entryRepo, opts...)
}

func (j *Journal) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	defaults := []search.Option{search.WithLogger(j.logger)}
	if j.monitor != nil {
		defaults = append(defaults, search.WithMonitor(j.monitor))
	}
	opts = append(defaults, opts...)
	return search.NewSearcher(j.entryRepo, opts...)
}

func (j *Journal) NewGenerator(opts ...answer.Option) (*answer.Generator, error) {
	opts = append([]answer.Option{answer.WithLogger(j.logger)}, opts...)
	return answer.NewGenerator(j.provider.Summarizer(), opts...)
}

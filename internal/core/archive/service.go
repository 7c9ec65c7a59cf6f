// Copyright (c) 2026 Kuramono. All rights reserved.

package archive

import (
	"context"
	"log/slog"
	"sync"

	"github.com/tsukihara/kuramono/internal/platform/apperr"
)

// # Service Layer

// Service owns the single in-memory [Collection] and orchestrates every
// query and mutation against it.
//
// # Concurrency
//
// The archive is a single-user record with cooperative, run-to-completion
// operations: no two mutations may ever interleave. A mutex serializes all
// access, which is the only discipline the model needs — HTTP handlers may
// call concurrently, but each operation sees and leaves a consistent
// collection.
//
// # Durability
//
// Every mutation is followed by a full snapshot save through the gateway.
// A failed save surfaces as [apperr.PersistenceError]: the in-memory change
// stays applied (the model is the source of truth) and the caller may retry
// with [Service.Flush].
type Service struct {
	mu         sync.Mutex
	gateway    Gateway
	collection *Collection
	logger     *slog.Logger
}

// NewService constructs an archive [Service]. Call [Service.Open] before use.
func NewService(gateway Gateway, logger *slog.Logger) *Service {
	return &Service{
		gateway: gateway,
		logger:  logger,
	}
}

/*
Open hydrates the in-memory collection from the persistence gateway.

It runs once at startup; defaults are substituted for any missing key, so a
fresh backend yields a usable empty archive with the seed character set and
templates.

Parameters:
  - context: context.Context

Returns:
  - error: Load or decode failures (startup-fatal for the caller)
*/
func (service *Service) Open(context context.Context) error {
	service.mu.Lock()
	defer service.mu.Unlock()

	collection, err := loadCollection(context, service.gateway)
	if err != nil {
		return err
	}
	service.collection = collection

	service.logger.Info("archive_opened",
		slog.Int("series_count", len(collection.Order)),
		slog.Int("character_sets", len(collection.CharSets)),
	)

	return nil
}

/*
Flush re-persists the current collection snapshot.

Used to retry durability after a mutation reported a persistence error.

Returns:
  - error: apperr.PersistenceError when the gateway save fails
*/
func (service *Service) Flush(context context.Context) error {
	service.mu.Lock()
	defer service.mu.Unlock()

	return service.persist(context)
}

// Ping reports gateway health for the readiness probe.
func (service *Service) Ping(context context.Context) error {
	return service.gateway.Ping(context)
}

// persist writes the full collection to the gateway. Callers must hold the
// mutex. The in-memory state is never rolled back on failure.
func (service *Service) persist(context context.Context) error {
	if err := saveCollection(context, service.gateway, service.collection); err != nil {
		service.logger.Error("archive_persist_failed", slog.Any("error", err))
		return apperr.PersistenceError(err)
	}
	return nil
}

// # Lookup Helpers (callers must hold the mutex)

// seriesByID resolves a series id or reports NotFound.
func (service *Service) seriesByID(id string) (*Series, error) {
	series, found := service.collection.SeriesByID[id]
	if !found {
		return nil, apperr.NotFound("Series")
	}
	return series, nil
}

// itemAt resolves an item index within a series or reports NotFound.
func (service *Service) itemAt(series *Series, index int) (*Item, error) {
	if index < 0 || index >= len(series.Items) {
		return nil, apperr.NotFound("Item")
	}
	return &series.Items[index], nil
}

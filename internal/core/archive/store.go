// Copyright (c) 2026 Kuramono. All rights reserved.

package archive

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tsukihara/kuramono/internal/platform/constants"
)

// # Persistence Gateway

// Gateway is the typed key-value persistence boundary of the archive.
//
// The concrete backend (redis, postgres, in-process memory) is an external
// collaborator; the core only ever loads and saves whole JSON documents
// under the fixed key set in [constants]. A failed save never corrupts the
// in-memory collection — the mutation is simply not durably committed yet.
type Gateway interface {
	// Load returns the value stored under key, or (nil, nil) when absent.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save stores value under key, replacing any previous value.
	Save(ctx context.Context, key string, value []byte) error

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
}

// # Snapshot Codec
//
// Every mutation persists the full collection: all keys, every time. There
// is no partial or incremental persistence.

// loadCollection hydrates a collection from the gateway, substituting
// defaults for any missing key.
func loadCollection(ctx context.Context, gateway Gateway) (*Collection, error) {
	collection := &Collection{
		SeriesByID: map[string]*Series{},
		Order:      []string{},
		CharSets:   DefaultRegistry(),
		Templates:  append([]string(nil), constants.DefaultTemplates...),
		Presets:    []Preset{},
		Trade:      TradeConfig{ShowInfMarker: true},
		SortMode:   SortCustom,
	}

	if err := loadKey(ctx, gateway, constants.StorageKeyDB, &collection.SeriesByID); err != nil {
		return nil, err
	}
	if err := loadKey(ctx, gateway, constants.StorageKeyOrder, &collection.Order); err != nil {
		return nil, err
	}
	if err := loadKey(ctx, gateway, constants.StorageKeyCharSets, &collection.CharSets); err != nil {
		return nil, err
	}
	if err := loadKey(ctx, gateway, constants.StorageKeyTemplates, &collection.Templates); err != nil {
		return nil, err
	}
	if err := loadKey(ctx, gateway, constants.StorageKeyPresets, &collection.Presets); err != nil {
		return nil, err
	}
	if err := loadKey(ctx, gateway, constants.StorageKeyTradeConfig, &collection.Trade); err != nil {
		return nil, err
	}
	if err := loadKey(ctx, gateway, constants.StorageKeySortMode, &collection.SortMode); err != nil {
		return nil, err
	}
	if err := loadKey(ctx, gateway, constants.StorageKeyLastItem, &collection.LastUsed); err != nil {
		return nil, err
	}

	if !collection.SortMode.Valid() {
		collection.SortMode = SortCustom
	}

	return collection, nil
}

// loadKey decodes one stored document into target, leaving target untouched
// when the key is absent.
func loadKey(ctx context.Context, gateway Gateway, key string, target any) error {
	raw, err := gateway.Load(ctx, key)
	if err != nil {
		return fmt.Errorf("archive: load %s: %w", key, err)
	}
	if raw == nil {
		return nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("archive: decode %s: %w", key, err)
	}
	return nil
}

// saveCollection writes the full collection snapshot to the gateway.
func saveCollection(ctx context.Context, gateway Gateway, collection *Collection) error {
	documents := []struct {
		key   string
		value any
	}{
		{constants.StorageKeyDB, collection.SeriesByID},
		{constants.StorageKeyOrder, collection.Order},
		{constants.StorageKeyCharSets, collection.CharSets},
		{constants.StorageKeyTemplates, collection.Templates},
		{constants.StorageKeyPresets, collection.Presets},
		{constants.StorageKeyTradeConfig, collection.Trade},
		{constants.StorageKeySortMode, collection.SortMode},
		{constants.StorageKeyLastItem, collection.LastUsed},
	}

	for _, document := range documents {
		raw, err := json.Marshal(document.value)
		if err != nil {
			return fmt.Errorf("archive: encode %s: %w", document.key, err)
		}
		if err := gateway.Save(ctx, document.key, raw); err != nil {
			return fmt.Errorf("archive: save %s: %w", document.key, err)
		}
	}

	return nil
}

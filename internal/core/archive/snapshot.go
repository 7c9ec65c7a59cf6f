// Copyright (c) 2026 Kuramono. All rights reserved.

package archive

import (
	"encoding/json"

	"github.com/tsukihara/kuramono/internal/platform/apperr"
)

// # Snapshot Exchange

// Snapshot is the portable export/import document.
//
// The field names are the on-disk interchange contract; importers written
// against older exports rely on them, so they never change.
type Snapshot struct {
	DB        map[string]*Series `json:"db"`
	Order     []string           `json:"order"`
	CharSets  Registry           `json:"charSets"`
	Presets   []Preset           `json:"presets"`
	Templates []string           `json:"templates"`
}

// snapshotOf builds a deep-copy snapshot of the collection's portable state.
//
// Trade configuration, sort mode, and the last-used draft are device-local
// preferences and deliberately excluded.
func snapshotOf(collection *Collection) Snapshot {
	db := make(map[string]*Series, len(collection.SeriesByID))
	for id, series := range collection.SeriesByID {
		db[id] = series.clone()
	}
	return Snapshot{
		DB:        db,
		Order:     append([]string(nil), collection.Order...),
		CharSets:  collection.CharSets.clone(),
		Presets:   clonePresets(collection.Presets),
		Templates: append([]string(nil), collection.Templates...),
	}
}

// applySnapshot replaces the collection's portable state with the snapshot.
//
// Missing sections default reasonably: db/order/presets become empty, while
// nil charSets and templates keep the existing values so a partial export
// cannot silently erase the registry.
func applySnapshot(collection *Collection, snapshot Snapshot) {
	if snapshot.DB == nil {
		snapshot.DB = map[string]*Series{}
	}
	if snapshot.Order == nil {
		snapshot.Order = []string{}
	}
	if snapshot.Presets == nil {
		snapshot.Presets = []Preset{}
	}

	collection.SeriesByID = snapshot.DB
	collection.Order = snapshot.Order
	collection.Presets = snapshot.Presets
	if snapshot.CharSets != nil {
		collection.CharSets = snapshot.CharSets
	}
	if snapshot.Templates != nil {
		collection.Templates = snapshot.Templates
	}
}

// decodeSnapshot parses an exported document, reporting unparseable input as
// a format error without touching any state.
func decodeSnapshot(raw []byte) (Snapshot, error) {
	var snapshot Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return Snapshot{}, apperr.FormatError("Import data is not a valid archive export")
	}
	return snapshot, nil
}

func clonePresets(presets []Preset) []Preset {
	cloned := make([]Preset, 0, len(presets))
	for _, preset := range presets {
		preset.Targets = append([]string(nil), preset.Targets...)
		cloned = append(cloned, preset)
	}
	return cloned
}

// Copyright (c) 2026 Kuramono. All rights reserved.

/*
Package archive implements the collection inventory core of Kuramono.

It owns the in-memory [Collection] (series of collectible items tracked per
character-like target), the derivation engine that turns raw counts into
completion status, trade-request text, and missing-target reports, and the
mutation service that keeps the record consistent and durably saved across
edits.

# Core Responsibility

  - Model: [Series], [Item], and per-target own/stock/inf counts.
  - Registry: Named reusable character sets ([Registry]).
  - Derivation: Pure view computation, recomputed on every read, never cached.
  - Mutation: Validated edits, each followed by a full gateway save.
  - Persistence: A typed key-value [Gateway] with redis/postgres/memory backends.

The presentation layer (a PWA) is an external collaborator reached through the
HTTP [Handler]; no rendering concern lives here.
*/
package archive

import "github.com/tsukihara/kuramono/pkg/slice"

// # Item Status

// Status classifies an item's completion state.
type Status string

const (
	// StatusNotComplete marks an item with at least one unowned target.
	StatusNotComplete Status = "not_complete"

	// StatusComplete marks an item with every target owned.
	StatusComplete Status = "complete"

	// StatusNotPlanned is a manual override that skips completion math and
	// excludes the item from the missing-target report.
	StatusNotPlanned Status = "not_planned"
)

// Valid reports whether the status is a member of the enum.
func (s Status) Valid() bool {
	switch s {
	case StatusNotComplete, StatusComplete, StatusNotPlanned:
		return true
	}
	return false
}

// # Sort Modes

// SortMode selects the ordering of the series list view.
type SortMode string

const (
	// SortInsertion lists series in stored order (oldest first).
	SortInsertion SortMode = "insertion"

	// SortDate lists series by descending date; series without a date sort last.
	SortDate SortMode = "date"

	// SortCustom is the default "most recently added first" policy: the
	// reverse of stored order. Unknown modes fall back to it.
	SortCustom SortMode = "custom"
)

// Valid reports whether the sort mode is a member of the enum.
func (m SortMode) Valid() bool {
	switch m {
	case SortInsertion, SortDate, SortCustom:
		return true
	}
	return false
}

// # Inventory Model

// Item is one collectible type within a series, tracked per target.
//
// Targets and SetName are a frozen snapshot taken when the item was created
// or edited; later registry edits never propagate to existing items. Count
// keys that are not members of Targets are inert: the derivation engine
// ignores them, but routine operations never delete them, so a target-list
// edit can be undone without losing counts.
type Item struct {
	// Type is the item's label, e.g. "缶バッジ". Required, non-empty.
	Type string `json:"type"`

	// SetName records which character set the target list was copied from.
	// It is a label, not a live link.
	SetName string `json:"setName"`

	// Targets is the ordered target list in effect for this item.
	Targets []string `json:"targets"`

	// Own maps target name to owned quantity (>= 0).
	Own map[string]int `json:"own"`

	// Stock maps target name to quantity available for trade (>= 0).
	Stock map[string]int `json:"stock"`

	// Inf marks targets with unlimited need. Display and trade semantics
	// only; it never affects the owned count.
	Inf map[string]bool `json:"inf"`

	// Status is either an explicit not_planned override or the value
	// recomputed by the derivation engine on every save.
	Status Status `json:"status"`
}

// Series is a named group of collectible item types (e.g. a release wave).
type Series struct {
	// ID is an opaque, immutable, timestamp-derived token (UUIDv7).
	ID string `json:"id"`

	// Title is required and non-empty.
	Title string `json:"title"`

	// Date is an optional ISO date string (YYYY-MM-DD). Absent sorts as "".
	Date string `json:"date"`

	// Tags is free text, parsed into tag tokens on display.
	Tags string `json:"tags"`

	// Items is the ordered item list. Deleting the series cascades to it.
	Items []Item `json:"items"`
}

// Preset is an editor shortcut that pre-fills an item draft.
type Preset struct {
	Type    string   `json:"type"`
	SetName string   `json:"setName"`
	Targets []string `json:"targets"`
}

// TradeConfig shapes the generated trade-request text.
type TradeConfig struct {
	Prefix        string `json:"prefix"`
	Suffix        string `json:"suffix"`
	ShowInfMarker bool   `json:"showInf"`
}

// LastUsed remembers the previous item draft's type and set for the
// editor's quick-restore banner.
type LastUsed struct {
	Type    string `json:"type"`
	SetName string `json:"setName"`
}

// Collection is the whole archive: the single authoritative in-memory record.
//
// It is owned exclusively by the [Service]; nothing accesses it through
// ambient globals. The Order slice references series ids only and never
// inlines series.
type Collection struct {
	SeriesByID map[string]*Series
	Order      []string
	CharSets   Registry
	Templates  []string
	Presets    []Preset
	Trade      TradeConfig
	SortMode   SortMode
	LastUsed   *LastUsed
}

// # Model Helpers

// ensureMaps initializes nil count maps so mutations can write into them.
func (item *Item) ensureMaps() {
	if item.Own == nil {
		item.Own = map[string]int{}
	}
	if item.Stock == nil {
		item.Stock = map[string]int{}
	}
	if item.Inf == nil {
		item.Inf = map[string]bool{}
	}
}

// hasTarget reports whether name is a member of the item's target snapshot.
func (item *Item) hasTarget(name string) bool {
	for _, target := range item.Targets {
		if target == name {
			return true
		}
	}
	return false
}

// clone returns a deep copy of the item.
func (item *Item) clone() Item {
	copied := *item
	copied.Targets = append([]string(nil), item.Targets...)
	copied.Own = cloneIntMap(item.Own)
	copied.Stock = cloneIntMap(item.Stock)
	copied.Inf = cloneBoolMap(item.Inf)
	return copied
}

// clone returns a deep copy of the series.
func (series *Series) clone() *Series {
	copied := *series
	copied.Items = slice.Map(series.Items, func(item Item) Item {
		return item.clone()
	})
	return &copied
}

func cloneIntMap(source map[string]int) map[string]int {
	cloned := make(map[string]int, len(source))
	for key, value := range source {
		cloned[key] = value
	}
	return cloned
}

func cloneBoolMap(source map[string]bool) map[string]bool {
	cloned := make(map[string]bool, len(source))
	for key, value := range source {
		cloned[key] = value
	}
	return cloned
}

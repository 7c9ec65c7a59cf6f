// Copyright (c) 2026 Kuramono. All rights reserved.

package archive

import (
	"context"
	"log/slog"
	"strings"

	"github.com/tsukihara/kuramono/internal/platform/apperr"
	"github.com/tsukihara/kuramono/internal/platform/validate"
)

// # Item Operations

// Count buckets addressable by AdjustCount.
const (
	BucketOwn   = "own"
	BucketStock = "stock"
)

// ItemDraft carries the user-edited fields of one item.
//
// Counts are taken as-is from the editor; negative values are clamped to
// zero rather than rejected, matching the floor-at-zero policy of every
// count mutation.
type ItemDraft struct {
	Type    string          `json:"type"`
	SetName string          `json:"setName"`
	Targets []string        `json:"targets"`
	Own     map[string]int  `json:"own"`
	Inf     map[string]bool `json:"inf"`
	Status  Status          `json:"status"`
}

/*
SaveItem creates or replaces one item within a series.

With a nil index the item is appended with a fresh, empty stock map. With an
index the item replaces the slot in place and inherits the previous item's
stock map: trade stock is adjusted through AdjustCount, not through the
editor, and an edit must not wipe it.

A nil target list copies the registry's current default set targets. The
stored status is always re-derived; not_planned is the only value the draft
can force through.

Parameters:
  - context: context.Context
  - seriesID: owning series id
  - index: nil to append, otherwise the slot to replace
  - draft: ItemDraft — type required

Returns:
  - *Item: the stored item (deep copy)
  - error: apperr.ValidationError, apperr.NotFound, or apperr.PersistenceError
*/
func (service *Service) SaveItem(context context.Context, seriesID string, index *int, draft ItemDraft) (*Item, error) {
	validator := &validate.Validator{}
	validator.
		Required("type", draft.Type).
		MaxLen("type", draft.Type, 100)
	if draft.Status != "" && !draft.Status.Valid() {
		validator.Custom("status", true, "Unknown status")
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	series, err := service.seriesByID(seriesID)
	if err != nil {
		return nil, err
	}

	targets := draft.Targets
	if targets == nil {
		targets = service.collection.CharSets.DefaultTargets()
	}

	item := Item{
		Type:    strings.TrimSpace(draft.Type),
		SetName: draft.SetName,
		Targets: append([]string(nil), targets...),
		Own:     cloneIntMap(draft.Own),
		Inf:     cloneBoolMap(draft.Inf),
		Stock:   map[string]int{},
	}
	item.ensureMaps()
	clampCounts(item.Own)
	item.Status = DeriveStatus(draft.Status, &item)

	if index == nil {
		series.Items = append(series.Items, item)
	} else {
		previous, err := service.itemAt(series, *index)
		if err != nil {
			return nil, err
		}
		item.Stock = previous.Stock
		if item.Stock == nil {
			item.Stock = map[string]int{}
		}
		series.Items[*index] = item
	}

	service.collection.LastUsed = &LastUsed{
		Type:    item.Type,
		SetName: item.SetName,
	}

	service.logger.Info("item_saved",
		slog.String("series_id", seriesID),
		slog.String("item_type", item.Type),
		slog.Bool("appended", index == nil),
	)

	stored := item.clone()
	if err := service.persist(context); err != nil {
		return &stored, err
	}
	return &stored, nil
}

/*
DeleteItem removes the item at index from a series.

Returns:
  - error: apperr.NotFound or apperr.PersistenceError
*/
func (service *Service) DeleteItem(context context.Context, seriesID string, index int) error {
	service.mu.Lock()
	defer service.mu.Unlock()

	series, err := service.seriesByID(seriesID)
	if err != nil {
		return err
	}
	if _, err := service.itemAt(series, index); err != nil {
		return err
	}

	series.Items = append(series.Items[:index], series.Items[index+1:]...)

	service.logger.Info("item_deleted",
		slog.String("series_id", seriesID),
		slog.Int("index", index),
	)

	return service.persist(context)
}

/*
DeleteAllItems empties a series' item list without deleting the series.

Returns:
  - error: apperr.NotFound or apperr.PersistenceError
*/
func (service *Service) DeleteAllItems(context context.Context, seriesID string) error {
	service.mu.Lock()
	defer service.mu.Unlock()

	series, err := service.seriesByID(seriesID)
	if err != nil {
		return err
	}

	series.Items = []Item{}

	service.logger.Info("items_cleared", slog.String("series_id", seriesID))

	return service.persist(context)
}

/*
AdjustCount applies a delta to one target's own or stock count.

The result floors at zero; decrementing an already-zero count is a no-op
that still succeeds. The target must be a member of the item's target
snapshot: inert leftover keys are preserved but not editable. The status is
re-derived after every own-count change.

Parameters:
  - bucket: BucketOwn or BucketStock
  - delta: signed step, usually +1 or -1

Returns:
  - *Item: the updated item (deep copy)
  - error: apperr.ValidationError, apperr.NotFound, or apperr.PersistenceError
*/
func (service *Service) AdjustCount(context context.Context, seriesID string, index int, bucket, target string, delta int) (*Item, error) {
	validator := &validate.Validator{}
	validator.
		OneOf("bucket", bucket, BucketOwn, BucketStock).
		Required("target", target)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	series, err := service.seriesByID(seriesID)
	if err != nil {
		return nil, err
	}
	item, err := service.itemAt(series, index)
	if err != nil {
		return nil, err
	}
	if !item.hasTarget(target) {
		return nil, apperr.ValidationError("Target is not part of this item", apperr.FieldError{
			Field:   "target",
			Message: "Unknown target",
		})
	}

	item.ensureMaps()
	counts := item.Own
	if bucket == BucketStock {
		counts = item.Stock
	}
	counts[target] = max(0, counts[target]+delta)

	if bucket == BucketOwn {
		item.Status = DeriveStatus(item.Status, item)
	}

	stored := item.clone()
	if err := service.persist(context); err != nil {
		return &stored, err
	}
	return &stored, nil
}

/*
ToggleInfinite flips one target's unlimited-need flag.

The flag affects display and trade text only; the owned count and the
derived status never change.

Returns:
  - *Item: the updated item (deep copy)
  - error: apperr.ValidationError, apperr.NotFound, or apperr.PersistenceError
*/
func (service *Service) ToggleInfinite(context context.Context, seriesID string, index int, target string) (*Item, error) {
	if strings.TrimSpace(target) == "" {
		return nil, validate.RequiredError("target", "This field is required")
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	series, err := service.seriesByID(seriesID)
	if err != nil {
		return nil, err
	}
	item, err := service.itemAt(series, index)
	if err != nil {
		return nil, err
	}
	if !item.hasTarget(target) {
		return nil, apperr.ValidationError("Target is not part of this item", apperr.FieldError{
			Field:   "target",
			Message: "Unknown target",
		})
	}

	item.ensureMaps()
	item.Inf[target] = !item.Inf[target]

	stored := item.clone()
	if err := service.persist(context); err != nil {
		return &stored, err
	}
	return &stored, nil
}

// Bulk actions over every target of one item.
const (
	BulkSetOwned       = "set_owned"
	BulkClearOwned     = "clear_owned"
	BulkIncrementOwned = "increment_owned"
	BulkResetCounts    = "reset_counts"
)

/*
BulkApply runs one bulk action across every target of an item.

  - set_owned: every target's own count becomes 1
  - clear_owned: every target's own count becomes 0
  - increment_owned: every target's own count increases by 1
  - reset_counts: own counts and infinite flags clear; stock is kept

Only targets in the item's snapshot are touched; inert keys stay as they
are (reset_counts clears whole maps and so drops inert own/inf keys too,
which is the point of a reset). The status is re-derived afterwards.

Returns:
  - *Item: the updated item (deep copy)
  - error: apperr.ValidationError, apperr.NotFound, or apperr.PersistenceError
*/
func (service *Service) BulkApply(context context.Context, seriesID string, index int, action string) (*Item, error) {
	validator := &validate.Validator{}
	validator.OneOf("action", action,
		BulkSetOwned, BulkClearOwned, BulkIncrementOwned, BulkResetCounts)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	series, err := service.seriesByID(seriesID)
	if err != nil {
		return nil, err
	}
	item, err := service.itemAt(series, index)
	if err != nil {
		return nil, err
	}
	item.ensureMaps()

	switch action {
	case BulkSetOwned:
		for _, target := range item.Targets {
			item.Own[target] = 1
		}
	case BulkClearOwned:
		for _, target := range item.Targets {
			item.Own[target] = 0
		}
	case BulkIncrementOwned:
		for _, target := range item.Targets {
			item.Own[target]++
		}
	case BulkResetCounts:
		item.Own = map[string]int{}
		item.Inf = map[string]bool{}
	}

	item.Status = DeriveStatus(item.Status, item)

	service.logger.Info("item_bulk_applied",
		slog.String("series_id", seriesID),
		slog.Int("index", index),
		slog.String("action", action),
	)

	stored := item.clone()
	if err := service.persist(context); err != nil {
		return &stored, err
	}
	return &stored, nil
}

/*
ItemTradeText renders the trade-request text for one item using the stored
trade configuration.

Returns:
  - string: the four-line trade text, or the no-trade sentinel
  - error: apperr.NotFound
*/
func (service *Service) ItemTradeText(_ context.Context, seriesID string, index int) (string, error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	series, err := service.seriesByID(seriesID)
	if err != nil {
		return "", err
	}
	item, err := service.itemAt(series, index)
	if err != nil {
		return "", err
	}
	return TradeText(item, service.collection.Trade), nil
}

/*
PresetDraft expands a saved preset into an item draft for the editor.

The draft is a copy: editing it never mutates the preset, and it carries
empty counts and the default not_complete status.

Returns:
  - ItemDraft: the pre-filled draft
  - error: apperr.NotFound for an out-of-range preset index
*/
func (service *Service) PresetDraft(_ context.Context, index int) (ItemDraft, error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	if index < 0 || index >= len(service.collection.Presets) {
		return ItemDraft{}, apperr.NotFound("Preset")
	}
	preset := service.collection.Presets[index]

	return ItemDraft{
		Type:    preset.Type,
		SetName: preset.SetName,
		Targets: append([]string(nil), preset.Targets...),
		Own:     map[string]int{},
		Inf:     map[string]bool{},
		Status:  StatusNotComplete,
	}, nil
}

// LastItem returns the previous item draft's type and set, or nil when no
// item has been saved yet.
func (service *Service) LastItem(_ context.Context) *LastUsed {
	service.mu.Lock()
	defer service.mu.Unlock()

	if service.collection.LastUsed == nil {
		return nil
	}
	copied := *service.collection.LastUsed
	return &copied
}

// clampCounts floors every count at zero in place.
func clampCounts(counts map[string]int) {
	for key, value := range counts {
		if value < 0 {
			counts[key] = 0
		}
	}
}

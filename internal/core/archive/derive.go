// Copyright (c) 2026 Kuramono. All rights reserved.

package archive

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/tsukihara/kuramono/pkg/slice"
	"github.com/tsukihara/kuramono/pkg/textnorm"
)

// # Derivation Engine
//
// Pure functions over an item or the whole collection. No side effects, no
// I/O; cheap enough to recompute on every view. Views are never cached
// across mutations — the collection is always the single source of truth.

// NoTradeInfo is the fixed sentinel emitted when an item has nothing to give
// and nothing to request. It is never composed from the trade prefix/suffix.
const NoTradeInfo = "交換情報なし"

// tagSeparator splits free-text tags on ASCII/fullwidth commas and
// whitespace. U+3000 is listed explicitly: Go's \s is ASCII-only and tags
// are routinely typed with a fullwidth space.
var tagSeparator = regexp.MustCompile(`[,，\s　]+`)

// DeriveStatus resolves an item's final status from the requested one.
//
// A requested not_planned is an unconditional manual override. Otherwise the
// item is complete exactly when every target in its snapshot is owned at
// least once; an empty target list is vacuously complete. Count keys outside
// the target snapshot are ignored (inert).
func DeriveStatus(requested Status, item *Item) Status {
	if requested == StatusNotPlanned {
		return StatusNotPlanned
	}

	for _, name := range item.Targets {
		if item.Own[name] <= 0 {
			return StatusNotComplete
		}
	}
	return StatusComplete
}

// TradeText renders the human-readable trade request for one item.
//
// The 譲 (give) line lists targets with stock, the 求 (want) line lists
// targets that are unowned or flagged as unlimited need — an unlimited-need
// target is listed even when nominally owned. Both lists follow the item's
// target order, not map insertion order. The infinite marker is appended per
// listed element when its own inf flag is set and the config allows it.
func TradeText(item *Item, config TradeConfig) string {
	stockList := slice.Filter(item.Targets, func(name string) bool {
		return item.Stock[name] > 0
	})
	needList := slice.Filter(item.Targets, func(name string) bool {
		return item.Own[name] == 0 || item.Inf[name]
	})

	if len(stockList) == 0 && len(needList) == 0 {
		return NoTradeInfo
	}

	giveEntries := slice.Map(stockList, func(name string) string {
		if count := item.Stock[name]; count > 1 {
			return fmt.Sprintf("%s(%d)", name, count)
		}
		return name
	})
	needEntries := slice.Map(needList, func(name string) string {
		if item.Inf[name] && config.ShowInfMarker {
			return name + "(∞)"
		}
		return name
	})

	lines := []string{
		config.Prefix + item.Type + " 交換",
		"譲：" + strings.Join(giveEntries, "、"),
		"求：" + strings.Join(needEntries, "、"),
		config.Suffix,
	}
	return strings.Join(lines, "\n")
}

// MissingTargets returns the item's unowned targets in target order, or nil
// when nothing is missing.
func MissingTargets(item *Item) []string {
	return slice.Filter(item.Targets, func(name string) bool {
		return item.Own[name] == 0
	})
}

// # Missing Report

// MissingEntry is one item with unowned targets.
type MissingEntry struct {
	Index   int      `json:"index"`
	Type    string   `json:"type"`
	Targets []string `json:"targets"`
}

// SeriesMissing groups the missing entries of one series.
type SeriesMissing struct {
	SeriesID string         `json:"series_id"`
	Title    string         `json:"title"`
	Entries  []MissingEntry `json:"entries"`
}

// MissingReport aggregates unowned targets across the whole collection.
//
// Items marked not_planned are excluded; series with no reportable items are
// omitted entirely. Series follow stored order, targets follow each item's
// target order.
func MissingReport(collection *Collection) []SeriesMissing {
	var report []SeriesMissing

	for _, seriesID := range collection.Order {
		series := collection.SeriesByID[seriesID]
		if series == nil {
			continue
		}

		var entries []MissingEntry
		for index := range series.Items {
			item := &series.Items[index]
			if item.Status == StatusNotPlanned {
				continue
			}
			missing := MissingTargets(item)
			if len(missing) == 0 {
				continue
			}
			entries = append(entries, MissingEntry{
				Index:   index,
				Type:    item.Type,
				Targets: missing,
			})
		}

		if len(entries) > 0 {
			report = append(report, SeriesMissing{
				SeriesID: series.ID,
				Title:    series.Title,
				Entries:  entries,
			})
		}
	}

	return report
}

// # Series List View

// FilterParams narrows and orders the series list.
type FilterParams struct {
	// Query matches case- and width-insensitively against the title and the
	// parsed tag tokens.
	Query string

	// DateStart/DateEnd bound the series date (inclusive). A series without
	// a date never passes a set start bound.
	DateStart string
	DateEnd   string

	// Sort overrides the collection's sort mode when non-empty.
	Sort SortMode
}

// SelectSeries resolves, sorts, and filters the series list.
//
// Unknown sort modes fall back to [SortCustom] (newest-appended first).
// All filters are conjunctive. Order ids with no backing series are skipped.
func SelectSeries(collection *Collection, params FilterParams) []*Series {
	ids := slices.Clone(collection.Order)

	mode := params.Sort
	if mode == "" {
		mode = collection.SortMode
	}

	switch mode {
	case SortInsertion:
		// as stored
	case SortDate:
		dateOf := func(id string) string {
			if series := collection.SeriesByID[id]; series != nil {
				return series.Date
			}
			return ""
		}
		slices.SortStableFunc(ids, func(a, b string) int {
			return strings.Compare(dateOf(b), dateOf(a))
		})
	default:
		slices.Reverse(ids)
	}

	var selected []*Series
	for _, id := range ids {
		series := collection.SeriesByID[id]
		if series == nil {
			continue
		}
		if matchesFilter(series, params) {
			selected = append(selected, series)
		}
	}
	return selected
}

// matchesFilter applies the conjunctive query and date-bound filters.
func matchesFilter(series *Series, params FilterParams) bool {
	if params.Query != "" {
		matched := textnorm.Contains(series.Title, params.Query)
		for _, token := range TagTokens(series.Tags) {
			matched = matched || textnorm.Contains(token, params.Query)
		}
		if !matched {
			return false
		}
	}

	if params.DateStart != "" && series.Date < params.DateStart {
		return false
	}
	if params.DateEnd != "" && series.Date > params.DateEnd {
		return false
	}
	return true
}

// TagTokens parses the free-text tag string into display tokens.
func TagTokens(tags string) []string {
	return slice.Filter(tagSeparator.Split(tags, -1), func(token string) bool {
		return token != ""
	})
}

// IsComplete reports whether the series has at least one item and every item
// is complete.
func IsComplete(series *Series) bool {
	if len(series.Items) == 0 {
		return false
	}
	for _, item := range series.Items {
		if item.Status != StatusComplete {
			return false
		}
	}
	return true
}

// OwnedTotal sums the owned counts across the item's target snapshot.
// Inert keys outside the snapshot are not counted.
func OwnedTotal(item *Item) int {
	return slice.Reduce(item.Targets, 0, func(total int, name string) int {
		return total + item.Own[name]
	})
}

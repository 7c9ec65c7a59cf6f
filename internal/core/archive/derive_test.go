// Copyright (c) 2026 Kuramono. All rights reserved.

package archive_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsukihara/kuramono/internal/core/archive"
)

/*
TestDeriveStatus tests the completion classification rules.
*/
func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name      string
		requested archive.Status
		item      archive.Item
		want      archive.Status
	}{
		{
			"partial_ownership",
			archive.StatusNotComplete,
			archive.Item{Targets: []string{"A", "B"}, Own: map[string]int{"A": 2}},
			archive.StatusNotComplete,
		},
		{
			"full_ownership",
			archive.StatusNotComplete,
			archive.Item{Targets: []string{"A", "B"}, Own: map[string]int{"A": 2, "B": 1}},
			archive.StatusComplete,
		},
		{
			"empty_targets_vacuously_complete",
			archive.StatusNotComplete,
			archive.Item{Targets: []string{}},
			archive.StatusComplete,
		},
		{
			"not_planned_overrides_everything",
			archive.StatusNotPlanned,
			archive.Item{Targets: []string{"A"}, Own: map[string]int{"A": 5}},
			archive.StatusNotPlanned,
		},
		{
			"inert_keys_ignored",
			archive.StatusNotComplete,
			archive.Item{Targets: []string{"A"}, Own: map[string]int{"B": 99}},
			archive.StatusNotComplete,
		},
		{
			"requested_complete_not_trusted",
			archive.StatusComplete,
			archive.Item{Targets: []string{"A"}, Own: map[string]int{}},
			archive.StatusNotComplete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := archive.DeriveStatus(tt.requested, &tt.item)
			assert.Equal(t, tt.want, got)
		})
	}
}

/*
TestDeriveStatus_Idempotent verifies that re-deriving an already-derived
status never changes it.
*/
func TestDeriveStatus_Idempotent(t *testing.T) {
	item := archive.Item{
		Targets: []string{"A", "B"},
		Own:     map[string]int{"A": 1, "B": 1},
	}

	first := archive.DeriveStatus(archive.StatusNotComplete, &item)
	second := archive.DeriveStatus(first, &item)

	assert.Equal(t, archive.StatusComplete, first)
	assert.Equal(t, first, second)
}

/*
TestTradeText covers the trade-request rendering rules.
*/
func TestTradeText(t *testing.T) {
	config := archive.TradeConfig{Prefix: "[", Suffix: "]", ShowInfMarker: true}

	t.Run("stock_and_need_lines", func(t *testing.T) {
		item := archive.Item{
			Type:    "Badge",
			Targets: []string{"A", "B"},
			Stock:   map[string]int{"A": 2},
			Own:     map[string]int{},
			Inf:     map[string]bool{},
		}

		text := archive.TradeText(&item, config)
		lines := strings.Split(text, "\n")

		require.Len(t, lines, 4)
		assert.Equal(t, "[Badge 交換", lines[0])
		assert.Equal(t, "譲：A(2)", lines[1])
		assert.Equal(t, "求：A、B", lines[2])
		assert.Equal(t, "]", lines[3])
	})

	t.Run("no_trade_sentinel", func(t *testing.T) {
		item := archive.Item{
			Type:    "Badge",
			Targets: []string{"A"},
			Own:     map[string]int{"A": 1},
		}

		assert.Equal(t, archive.NoTradeInfo, archive.TradeText(&item, config))
	})

	t.Run("single_stock_omits_count", func(t *testing.T) {
		item := archive.Item{
			Type:    "Badge",
			Targets: []string{"A"},
			Stock:   map[string]int{"A": 1},
			Own:     map[string]int{"A": 1},
		}

		lines := strings.Split(archive.TradeText(&item, config), "\n")
		assert.Equal(t, "譲：A", lines[1])
	})

	t.Run("infinite_listed_even_when_owned", func(t *testing.T) {
		item := archive.Item{
			Type:    "Badge",
			Targets: []string{"A", "B"},
			Own:     map[string]int{"A": 3, "B": 1},
			Inf:     map[string]bool{"A": true},
		}

		lines := strings.Split(archive.TradeText(&item, config), "\n")
		assert.Equal(t, "求：A(∞)", lines[2])
	})

	t.Run("inf_marker_suppressed_by_config", func(t *testing.T) {
		item := archive.Item{
			Type:    "Badge",
			Targets: []string{"A"},
			Own:     map[string]int{},
			Inf:     map[string]bool{"A": true},
		}

		muted := archive.TradeConfig{ShowInfMarker: false}
		lines := strings.Split(archive.TradeText(&item, muted), "\n")
		assert.Equal(t, "求：A", lines[2])
	})

	t.Run("marker_is_per_element", func(t *testing.T) {
		// Only the flagged target carries the marker, regardless of position.
		item := archive.Item{
			Type:    "Badge",
			Targets: []string{"A", "B", "C"},
			Own:     map[string]int{},
			Inf:     map[string]bool{"B": true},
		}

		lines := strings.Split(archive.TradeText(&item, config), "\n")
		assert.Equal(t, "求：A、B(∞)、C", lines[2])
	})

	t.Run("lists_follow_target_order", func(t *testing.T) {
		item := archive.Item{
			Type:    "Badge",
			Targets: []string{"C", "A", "B"},
			Stock:   map[string]int{"A": 1, "C": 1},
			Own:     map[string]int{"A": 1, "B": 1, "C": 1},
		}

		lines := strings.Split(archive.TradeText(&item, config), "\n")
		assert.Equal(t, "譲：C、A", lines[1])
	})
}

/*
TestMissingReport verifies the collection-wide missing-target aggregation.
*/
func TestMissingReport(t *testing.T) {
	collection := &archive.Collection{
		SeriesByID: map[string]*archive.Series{
			"s1": {
				ID:    "s1",
				Title: "Wave 1",
				Items: []archive.Item{
					{Type: "Badge", Targets: []string{"A", "B"}, Own: map[string]int{"A": 1}, Status: archive.StatusNotComplete},
					{Type: "Stand", Targets: []string{"A"}, Own: map[string]int{}, Status: archive.StatusNotPlanned},
				},
			},
			"s2": {
				ID:    "s2",
				Title: "Wave 2",
				Items: []archive.Item{
					{Type: "Card", Targets: []string{"A"}, Own: map[string]int{"A": 2}, Status: archive.StatusComplete},
				},
			},
		},
		Order: []string{"s1", "s2"},
	}

	report := archive.MissingReport(collection)

	// s2 is fully owned and omitted; the not_planned item in s1 is excluded.
	require.Len(t, report, 1)
	assert.Equal(t, "s1", report[0].SeriesID)
	require.Len(t, report[0].Entries, 1)
	assert.Equal(t, "Badge", report[0].Entries[0].Type)
	assert.Equal(t, []string{"B"}, report[0].Entries[0].Targets)
	assert.Equal(t, 0, report[0].Entries[0].Index)
}

/*
TestSelectSeries covers sorting and filtering of the series list.
*/
func TestSelectSeries(t *testing.T) {
	collection := &archive.Collection{
		SeriesByID: map[string]*archive.Series{
			"s1": {ID: "s1", Title: "はるかぜ", Date: "2026-01-10", Tags: "缶バッジ 春"},
			"s2": {ID: "s2", Title: "Summer Fair", Date: "2026-06-01"},
			"s3": {ID: "s3", Title: "Undated", Date: ""},
		},
		Order:    []string{"s1", "s2", "s3"},
		SortMode: archive.SortCustom,
	}

	ids := func(selected []*archive.Series) []string {
		result := make([]string, 0, len(selected))
		for _, series := range selected {
			result = append(result, series.ID)
		}
		return result
	}

	t.Run("custom_reverses_stored_order", func(t *testing.T) {
		selected := archive.SelectSeries(collection, archive.FilterParams{})
		assert.Equal(t, []string{"s3", "s2", "s1"}, ids(selected))
	})

	t.Run("insertion_keeps_stored_order", func(t *testing.T) {
		selected := archive.SelectSeries(collection, archive.FilterParams{Sort: archive.SortInsertion})
		assert.Equal(t, []string{"s1", "s2", "s3"}, ids(selected))
	})

	t.Run("date_descends_with_missing_last", func(t *testing.T) {
		selected := archive.SelectSeries(collection, archive.FilterParams{Sort: archive.SortDate})
		assert.Equal(t, []string{"s2", "s1", "s3"}, ids(selected))
	})

	t.Run("query_matches_title", func(t *testing.T) {
		selected := archive.SelectSeries(collection, archive.FilterParams{Query: "summer"})
		assert.Equal(t, []string{"s2"}, ids(selected))
	})

	t.Run("query_matches_tag_tokens", func(t *testing.T) {
		selected := archive.SelectSeries(collection, archive.FilterParams{Query: "缶バッジ"})
		assert.Equal(t, []string{"s1"}, ids(selected))
	})

	t.Run("date_bounds_are_inclusive_and_conjunctive", func(t *testing.T) {
		selected := archive.SelectSeries(collection, archive.FilterParams{
			DateStart: "2026-01-10",
			DateEnd:   "2026-01-10",
		})
		assert.Equal(t, []string{"s1"}, ids(selected))
	})

	t.Run("undated_fails_start_bound", func(t *testing.T) {
		selected := archive.SelectSeries(collection, archive.FilterParams{DateStart: "2026-01-01"})
		assert.NotContains(t, ids(selected), "s3")
	})

	t.Run("dangling_order_id_skipped", func(t *testing.T) {
		broken := &archive.Collection{
			SeriesByID: map[string]*archive.Series{"s1": {ID: "s1", Title: "Only"}},
			Order:      []string{"ghost", "s1"},
			SortMode:   archive.SortInsertion,
		}
		selected := archive.SelectSeries(broken, archive.FilterParams{})
		assert.Equal(t, []string{"s1"}, ids(selected))
	})
}

/*
TestTagTokens tests free-text tag parsing.
*/
func TestTagTokens(t *testing.T) {
	tests := []struct {
		name string
		tags string
		want []string
	}{
		{"spaces", "spring badge", []string{"spring", "badge"}},
		{"ascii_commas", "a,b,c", []string{"a", "b", "c"}},
		{"fullwidth_commas", "春，夏", []string{"春", "夏"}},
		{"mixed_separators_collapse", "a, b　c", []string{"a", "b", "c"}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := archive.TagTokens(tt.tags)
			if tt.want == nil {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

/*
TestOwnedTotal verifies that totals only cover the target snapshot.
*/
func TestOwnedTotal(t *testing.T) {
	item := archive.Item{
		Targets: []string{"A", "B"},
		Own:     map[string]int{"A": 2, "B": 1, "inert": 50},
	}

	assert.Equal(t, 3, archive.OwnedTotal(&item))
}

/*
TestIsComplete tests the series-level completion view.
*/
func TestIsComplete(t *testing.T) {
	t.Run("empty_series_is_not_complete", func(t *testing.T) {
		assert.False(t, archive.IsComplete(&archive.Series{}))
	})

	t.Run("every_item_complete", func(t *testing.T) {
		series := &archive.Series{Items: []archive.Item{
			{Status: archive.StatusComplete},
			{Status: archive.StatusComplete},
		}}
		assert.True(t, archive.IsComplete(series))
	})

	t.Run("not_planned_blocks_completion", func(t *testing.T) {
		series := &archive.Series{Items: []archive.Item{
			{Status: archive.StatusComplete},
			{Status: archive.StatusNotPlanned},
		}}
		assert.False(t, archive.IsComplete(series))
	})
}

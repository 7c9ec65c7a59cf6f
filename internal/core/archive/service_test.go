// Copyright (c) 2026 Kuramono. All rights reserved.

package archive_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsukihara/kuramono/internal/core/archive"
	"github.com/tsukihara/kuramono/internal/platform/apperr"
	"github.com/tsukihara/kuramono/internal/platform/constants"
)

// newTestService opens a service over a fresh in-memory gateway.
func newTestService(t *testing.T) (*archive.Service, *archive.MemoryGateway) {
	t.Helper()

	gateway := archive.NewMemoryGateway()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := archive.NewService(gateway, logger)
	require.NoError(t, service.Open(context.Background()))

	return service, gateway
}

// flakyGateway wraps another gateway and fails saves on demand.
type flakyGateway struct {
	archive.Gateway
	failSaves bool
}

func (gateway *flakyGateway) Save(ctx context.Context, key string, value []byte) error {
	if gateway.failSaves {
		return errors.New("backend unreachable")
	}
	return gateway.Gateway.Save(ctx, key, value)
}

/*
TestService_CreateSeries covers series creation and its validation.
*/
func TestService_CreateSeries(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns_id_and_appends_to_order", func(t *testing.T) {
		service, _ := newTestService(t)

		first, err := service.CreateSeries(ctx, archive.SeriesDraft{Title: "Wave 1"})
		require.NoError(t, err)
		second, err := service.CreateSeries(ctx, archive.SeriesDraft{Title: "Wave 2"})
		require.NoError(t, err)

		assert.NotEmpty(t, first.ID)
		assert.NotEqual(t, first.ID, second.ID)

		listed := service.ListSeries(ctx, archive.FilterParams{Sort: archive.SortInsertion})
		require.Len(t, listed, 2)
		assert.Equal(t, first.ID, listed[0].ID)
		assert.Equal(t, second.ID, listed[1].ID)
	})

	t.Run("missing_title_rejected_without_mutation", func(t *testing.T) {
		service, _ := newTestService(t)

		_, err := service.CreateSeries(ctx, archive.SeriesDraft{Title: "   "})

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, "VALIDATION_ERROR", appError.Code)
		assert.Empty(t, service.ListSeries(ctx, archive.FilterParams{}))
	})

	t.Run("malformed_date_rejected", func(t *testing.T) {
		service, _ := newTestService(t)

		_, err := service.CreateSeries(ctx, archive.SeriesDraft{Title: "Wave", Date: "01/10/2026"})

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	})

	t.Run("template_seeding_uses_default_set", func(t *testing.T) {
		service, _ := newTestService(t)

		series, err := service.CreateSeries(ctx, archive.SeriesDraft{Title: "Wave", UseTemplate: true})
		require.NoError(t, err)

		require.Len(t, series.Items, len(constants.DefaultTemplates))
		for index, item := range series.Items {
			assert.Equal(t, constants.DefaultTemplates[index], item.Type)
			assert.Equal(t, constants.DefaultSetName, item.SetName)
			assert.Equal(t, constants.DefaultCharacterSet, item.Targets)
			assert.Equal(t, archive.StatusNotComplete, item.Status)
			assert.Empty(t, item.Own)
		}
	})
}

/*
TestService_DeleteSeries verifies the cascade and the id bimap invariant.
*/
func TestService_DeleteSeries(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	series, err := service.CreateSeries(ctx, archive.SeriesDraft{Title: "Wave"})
	require.NoError(t, err)

	require.NoError(t, service.DeleteSeries(ctx, series.ID))

	_, err = service.GetSeries(ctx, series.ID)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "NOT_FOUND", appError.Code)

	assert.Empty(t, service.ListSeries(ctx, archive.FilterParams{}))

	assert.Equal(t, "NOT_FOUND", apperr.As(service.DeleteSeries(ctx, series.ID)).Code)
}

/*
TestService_SaveItem covers item creation, replacement, and the stock
preservation rule.
*/
func TestService_SaveItem(t *testing.T) {
	ctx := context.Background()

	t.Run("append_with_explicit_targets", func(t *testing.T) {
		service, _ := newTestService(t)
		series, _ := service.CreateSeries(ctx, archive.SeriesDraft{Title: "Wave"})

		item, err := service.SaveItem(ctx, series.ID, nil, archive.ItemDraft{
			Type:    "Badge",
			Targets: []string{"A", "B"},
			Own:     map[string]int{"A": 1, "B": 1},
		})
		require.NoError(t, err)

		assert.Equal(t, archive.StatusComplete, item.Status)
		assert.Empty(t, item.Stock)
	})

	t.Run("nil_targets_copy_default_set", func(t *testing.T) {
		service, _ := newTestService(t)
		series, _ := service.CreateSeries(ctx, archive.SeriesDraft{Title: "Wave"})

		item, err := service.SaveItem(ctx, series.ID, nil, archive.ItemDraft{Type: "Badge"})
		require.NoError(t, err)

		assert.Equal(t, constants.DefaultCharacterSet, item.Targets)
		assert.Equal(t, archive.StatusNotComplete, item.Status)
	})

	t.Run("missing_type_rejected", func(t *testing.T) {
		service, _ := newTestService(t)
		series, _ := service.CreateSeries(ctx, archive.SeriesDraft{Title: "Wave"})

		_, err := service.SaveItem(ctx, series.ID, nil, archive.ItemDraft{Type: ""})
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

		stored, _ := service.GetSeries(ctx, series.ID)
		assert.Empty(t, stored.Items)
	})

	t.Run("negative_counts_clamped", func(t *testing.T) {
		service, _ := newTestService(t)
		series, _ := service.CreateSeries(ctx, archive.SeriesDraft{Title: "Wave"})

		item, err := service.SaveItem(ctx, series.ID, nil, archive.ItemDraft{
			Type:    "Badge",
			Targets: []string{"A"},
			Own:     map[string]int{"A": -3},
		})
		require.NoError(t, err)

		assert.Equal(t, 0, item.Own["A"])
	})

	t.Run("edit_preserves_previous_stock", func(t *testing.T) {
		service, _ := newTestService(t)
		series, _ := service.CreateSeries(ctx, archive.SeriesDraft{Title: "Wave"})

		_, err := service.SaveItem(ctx, series.ID, nil, archive.ItemDraft{
			Type:    "Badge",
			Targets: []string{"A"},
		})
		require.NoError(t, err)

		_, err = service.AdjustCount(ctx, series.ID, 0, archive.BucketStock, "A", 2)
		require.NoError(t, err)

		index := 0
		edited, err := service.SaveItem(ctx, series.ID, &index, archive.ItemDraft{
			Type:    "Acrylic Stand",
			Targets: []string{"A"},
			Own:     map[string]int{"A": 1},
		})
		require.NoError(t, err)

		assert.Equal(t, "Acrylic Stand", edited.Type)
		assert.Equal(t, 2, edited.Stock["A"])
		assert.Equal(t, archive.StatusComplete, edited.Status)
	})

	t.Run("records_last_used_draft", func(t *testing.T) {
		service, _ := newTestService(t)
		series, _ := service.CreateSeries(ctx, archive.SeriesDraft{Title: "Wave"})

		require.Nil(t, service.LastItem(ctx))

		_, err := service.SaveItem(ctx, series.ID, nil, archive.ItemDraft{
			Type:    "Badge",
			SetName: "main",
			Targets: []string{"A"},
		})
		require.NoError(t, err)

		last := service.LastItem(ctx)
		require.NotNil(t, last)
		assert.Equal(t, "Badge", last.Type)
		assert.Equal(t, "main", last.SetName)
	})
}

/*
TestService_AdjustCount covers the stepper mutation and its guards.
*/
func TestService_AdjustCount(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)
	series, _ := service.CreateSeries(ctx, archive.SeriesDraft{Title: "Wave"})
	_, err := service.SaveItem(ctx, series.ID, nil, archive.ItemDraft{
		Type:    "Badge",
		Targets: []string{"A", "B"},
	})
	require.NoError(t, err)

	t.Run("increment_and_floor_at_zero", func(t *testing.T) {
		item, err := service.AdjustCount(ctx, series.ID, 0, archive.BucketOwn, "A", 1)
		require.NoError(t, err)
		assert.Equal(t, 1, item.Own["A"])

		item, err = service.AdjustCount(ctx, series.ID, 0, archive.BucketOwn, "A", -5)
		require.NoError(t, err)
		assert.Equal(t, 0, item.Own["A"])
	})

	t.Run("own_change_rederives_status", func(t *testing.T) {
		item, err := service.AdjustCount(ctx, series.ID, 0, archive.BucketOwn, "A", 1)
		require.NoError(t, err)
		assert.Equal(t, archive.StatusNotComplete, item.Status)

		item, err = service.AdjustCount(ctx, series.ID, 0, archive.BucketOwn, "B", 1)
		require.NoError(t, err)
		assert.Equal(t, archive.StatusComplete, item.Status)
	})

	t.Run("stock_change_keeps_status", func(t *testing.T) {
		before, err := service.GetSeries(ctx, series.ID)
		require.NoError(t, err)

		item, err := service.AdjustCount(ctx, series.ID, 0, archive.BucketStock, "A", 1)
		require.NoError(t, err)
		assert.Equal(t, before.Items[0].Status, item.Status)
	})

	t.Run("unknown_target_rejected", func(t *testing.T) {
		_, err := service.AdjustCount(ctx, series.ID, 0, archive.BucketOwn, "ghost", 1)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("unknown_bucket_rejected", func(t *testing.T) {
		_, err := service.AdjustCount(ctx, series.ID, 0, "wish", "A", 1)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("out_of_range_index_not_found", func(t *testing.T) {
		_, err := service.AdjustCount(ctx, series.ID, 99, archive.BucketOwn, "A", 1)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})
}

/*
TestService_ToggleInfinite verifies the flag flip and its isolation from
owned counts.
*/
func TestService_ToggleInfinite(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)
	series, _ := service.CreateSeries(ctx, archive.SeriesDraft{Title: "Wave"})
	_, err := service.SaveItem(ctx, series.ID, nil, archive.ItemDraft{
		Type:    "Badge",
		Targets: []string{"A"},
		Own:     map[string]int{"A": 1},
	})
	require.NoError(t, err)

	item, err := service.ToggleInfinite(ctx, series.ID, 0, "A")
	require.NoError(t, err)
	assert.True(t, item.Inf["A"])
	assert.Equal(t, 1, item.Own["A"])
	assert.Equal(t, archive.StatusComplete, item.Status)

	item, err = service.ToggleInfinite(ctx, series.ID, 0, "A")
	require.NoError(t, err)
	assert.False(t, item.Inf["A"])
}

/*
TestService_BulkApply covers the batch mutations over an item's targets.
*/
func TestService_BulkApply(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) (*archive.Service, string) {
		t.Helper()
		service, _ := newTestService(t)
		series, _ := service.CreateSeries(ctx, archive.SeriesDraft{Title: "Wave"})
		_, err := service.SaveItem(ctx, series.ID, nil, archive.ItemDraft{
			Type:    "Badge",
			Targets: []string{"A", "B"},
			Own:     map[string]int{"A": 2},
			Inf:     map[string]bool{"B": true},
		})
		require.NoError(t, err)
		_, err = service.AdjustCount(ctx, series.ID, 0, archive.BucketStock, "A", 3)
		require.NoError(t, err)
		return service, series.ID
	}

	t.Run("set_owned", func(t *testing.T) {
		service, seriesID := seed(t)

		item, err := service.BulkApply(ctx, seriesID, 0, archive.BulkSetOwned)
		require.NoError(t, err)

		assert.Equal(t, map[string]int{"A": 1, "B": 1}, item.Own)
		assert.Equal(t, archive.StatusComplete, item.Status)
	})

	t.Run("clear_owned", func(t *testing.T) {
		service, seriesID := seed(t)

		item, err := service.BulkApply(ctx, seriesID, 0, archive.BulkClearOwned)
		require.NoError(t, err)

		assert.Equal(t, map[string]int{"A": 0, "B": 0}, item.Own)
		assert.Equal(t, archive.StatusNotComplete, item.Status)
	})

	t.Run("increment_owned", func(t *testing.T) {
		service, seriesID := seed(t)

		item, err := service.BulkApply(ctx, seriesID, 0, archive.BulkIncrementOwned)
		require.NoError(t, err)

		assert.Equal(t, 3, item.Own["A"])
		assert.Equal(t, 1, item.Own["B"])
	})

	t.Run("reset_counts_keeps_stock", func(t *testing.T) {
		service, seriesID := seed(t)

		item, err := service.BulkApply(ctx, seriesID, 0, archive.BulkResetCounts)
		require.NoError(t, err)

		assert.Empty(t, item.Own)
		assert.Empty(t, item.Inf)
		assert.Equal(t, 3, item.Stock["A"])
		assert.Equal(t, archive.StatusNotComplete, item.Status)
	})

	t.Run("unknown_action_rejected", func(t *testing.T) {
		service, seriesID := seed(t)

		_, err := service.BulkApply(ctx, seriesID, 0, "explode")
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})
}

/*
TestService_DeleteItem verifies single and whole-list item removal.
*/
func TestService_DeleteItem(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)
	series, _ := service.CreateSeries(ctx, archive.SeriesDraft{Title: "Wave"})
	for _, itemType := range []string{"Badge", "Stand", "Card"} {
		_, err := service.SaveItem(ctx, series.ID, nil, archive.ItemDraft{
			Type:    itemType,
			Targets: []string{"A"},
		})
		require.NoError(t, err)
	}

	require.NoError(t, service.DeleteItem(ctx, series.ID, 1))

	stored, _ := service.GetSeries(ctx, series.ID)
	require.Len(t, stored.Items, 2)
	assert.Equal(t, "Badge", stored.Items[0].Type)
	assert.Equal(t, "Card", stored.Items[1].Type)

	require.NoError(t, service.DeleteAllItems(ctx, series.ID))
	stored, _ = service.GetSeries(ctx, series.ID)
	assert.Empty(t, stored.Items)
}

/*
TestService_PersistenceFailure verifies that a failed save surfaces as
PERSISTENCE_ERROR while the in-memory mutation stays applied, and that
Flush retries the save.
*/
func TestService_PersistenceFailure(t *testing.T) {
	ctx := context.Background()

	flaky := &flakyGateway{Gateway: archive.NewMemoryGateway()}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := archive.NewService(flaky, logger)
	require.NoError(t, service.Open(ctx))

	flaky.failSaves = true

	series, err := service.CreateSeries(ctx, archive.SeriesDraft{Title: "Wave"})
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "PERSISTENCE_ERROR", appError.Code)

	// The mutation was applied in memory despite the failed save.
	require.NotNil(t, series)
	stored, err := service.GetSeries(ctx, series.ID)
	require.NoError(t, err)
	assert.Equal(t, "Wave", stored.Title)

	// A later flush persists the same state.
	flaky.failSaves = false
	assert.NoError(t, service.Flush(ctx))
}

/*
TestService_Reload verifies that a saved archive hydrates identically from
the gateway.
*/
func TestService_Reload(t *testing.T) {
	ctx := context.Background()
	service, gateway := newTestService(t)

	series, err := service.CreateSeries(ctx, archive.SeriesDraft{Title: "Wave", Date: "2026-03-01"})
	require.NoError(t, err)
	_, err = service.SaveItem(ctx, series.ID, nil, archive.ItemDraft{
		Type:    "Badge",
		Targets: []string{"A"},
		Own:     map[string]int{"A": 1},
	})
	require.NoError(t, err)
	require.NoError(t, service.SetSortMode(ctx, archive.SortDate))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reloaded := archive.NewService(gateway, logger)
	require.NoError(t, reloaded.Open(ctx))

	stored, err := reloaded.GetSeries(ctx, series.ID)
	require.NoError(t, err)
	assert.Equal(t, "Wave", stored.Title)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, archive.StatusComplete, stored.Items[0].Status)

	assert.Equal(t, archive.SortDate, reloaded.GetSettings(ctx).SortMode)
}

/*
TestService_PresetDraft verifies preset expansion into an editor draft.
*/
func TestService_PresetDraft(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	require.NoError(t, service.SaveSettings(ctx, archive.SettingsDraft{
		PresetText: "Badge,main,A|B",
	}))

	presets := service.Presets(ctx)
	require.Len(t, presets, 1)
	assert.Equal(t, archive.Preset{Type: "Badge", SetName: "main", Targets: []string{"A", "B"}}, presets[0])

	draft, err := service.PresetDraft(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "Badge", draft.Type)
	assert.Equal(t, "main", draft.SetName)
	assert.Equal(t, []string{"A", "B"}, draft.Targets)
	assert.Empty(t, draft.Own)
	assert.Equal(t, archive.StatusNotComplete, draft.Status)

	_, err = service.PresetDraft(ctx, 5)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

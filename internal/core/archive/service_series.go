// Copyright (c) 2026 Kuramono. All rights reserved.

package archive

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/tsukihara/kuramono/internal/platform/constants"
	"github.com/tsukihara/kuramono/internal/platform/validate"
	"github.com/tsukihara/kuramono/pkg/uuid"
)

// # Series Operations

// SeriesDraft carries the user-edited fields for creating a series.
type SeriesDraft struct {
	Title string `json:"title"`
	Date  string `json:"date"`
	Tags  string `json:"tags"`

	// UseTemplate seeds the new series with one zero-count item per saved
	// template, targeting the registry's default character set.
	UseTemplate bool `json:"use_template"`
}

// SeriesListEntry is a series joined with its derived list-view fields.
type SeriesListEntry struct {
	*Series

	IsComplete bool     `json:"is_complete"`
	TagTokens  []string `json:"tag_tokens"`
	OwnedTotal int      `json:"owned_total"`
}

/*
CreateSeries validates the draft, assigns a fresh id, and appends the series
to the collection.

When the draft requests template seeding, each saved template becomes an item
with the default character set's targets and zero counts. With no default set
in the registry the template items are created with an empty target list.

Parameters:
  - context: context.Context
  - draft: SeriesDraft — title required, date optional YYYY-MM-DD

Returns:
  - *Series: the created series (deep copy, safe to hand out)
  - error: apperr.ValidationError or apperr.PersistenceError
*/
func (service *Service) CreateSeries(context context.Context, draft SeriesDraft) (*Series, error) {
	validator := &validate.Validator{}
	validator.
		Required("title", draft.Title).
		MaxLen("title", draft.Title, 200).
		ISODate("date", draft.Date)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	series := &Series{
		ID:    uuid.New(),
		Title: strings.TrimSpace(draft.Title),
		Date:  draft.Date,
		Tags:  draft.Tags,
		Items: []Item{},
	}

	if draft.UseTemplate {
		targets := service.collection.CharSets.DefaultTargets()
		for _, itemType := range service.collection.Templates {
			item := Item{
				Type:    itemType,
				SetName: constants.DefaultSetName,
				Targets: append([]string(nil), targets...),
				Status:  StatusNotComplete,
			}
			item.ensureMaps()
			series.Items = append(series.Items, item)
		}
	}

	service.collection.SeriesByID[series.ID] = series
	service.collection.Order = append(service.collection.Order, series.ID)

	service.logger.Info("series_created",
		slog.String("series_id", series.ID),
		slog.Int("seeded_items", len(series.Items)),
	)

	if err := service.persist(context); err != nil {
		return series.clone(), err
	}
	return series.clone(), nil
}

/*
DeleteSeries removes a series and every item it contains.

The id is removed from both the lookup map and the order list; a dangling id
in either is never left behind.

Returns:
  - error: apperr.NotFound or apperr.PersistenceError
*/
func (service *Service) DeleteSeries(context context.Context, id string) error {
	service.mu.Lock()
	defer service.mu.Unlock()

	if _, err := service.seriesByID(id); err != nil {
		return err
	}

	delete(service.collection.SeriesByID, id)
	service.collection.Order = slices.DeleteFunc(service.collection.Order, func(orderID string) bool {
		return orderID == id
	})

	service.logger.Info("series_deleted", slog.String("series_id", id))

	return service.persist(context)
}

/*
GetSeries returns a deep copy of one series.

Returns:
  - *Series: a copy the caller may hold past the lock
  - error: apperr.NotFound
*/
func (service *Service) GetSeries(_ context.Context, id string) (*Series, error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	series, err := service.seriesByID(id)
	if err != nil {
		return nil, err
	}
	return series.clone(), nil
}

/*
ListSeries returns the filtered, sorted series list joined with derived
list-view fields (completion, tag tokens, owned totals).

An empty params.Sort uses the collection's stored sort mode.

Returns:
  - []SeriesListEntry: deep copies in display order (never nil)
*/
func (service *Service) ListSeries(_ context.Context, params FilterParams) []SeriesListEntry {
	service.mu.Lock()
	defer service.mu.Unlock()

	selected := SelectSeries(service.collection, params)

	entries := make([]SeriesListEntry, 0, len(selected))
	for _, series := range selected {
		owned := 0
		for index := range series.Items {
			owned += OwnedTotal(&series.Items[index])
		}
		entries = append(entries, SeriesListEntry{
			Series:     series.clone(),
			IsComplete: IsComplete(series),
			TagTokens:  TagTokens(series.Tags),
			OwnedTotal: owned,
		})
	}
	return entries
}

/*
SetSortMode stores the list ordering policy.

Returns:
  - error: apperr.ValidationError for an unknown mode, or apperr.PersistenceError
*/
func (service *Service) SetSortMode(context context.Context, mode SortMode) error {
	validator := &validate.Validator{}
	validator.OneOf("sort_mode", string(mode),
		string(SortInsertion), string(SortDate), string(SortCustom))
	if err := validator.Err(); err != nil {
		return err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	service.collection.SortMode = mode
	return service.persist(context)
}

// Missing returns the collection-wide missing-target report.
func (service *Service) Missing(_ context.Context) []SeriesMissing {
	service.mu.Lock()
	defer service.mu.Unlock()

	return MissingReport(service.collection)
}

// Copyright (c) 2026 Kuramono. All rights reserved.

package archive

import (
	"net/http"

	requestutil "github.com/tsukihara/kuramono/internal/platform/request"
	"github.com/tsukihara/kuramono/internal/platform/respond"
)

// # Series Endpoints

/*
GET /api/v1/series.

Description: Retrieves the series list with derived list-view fields,
filtered and sorted for display.

Request:
  - q: string (Width- and case-insensitive search over title and tags)
  - date_start: string (Inclusive YYYY-MM-DD lower bound)
  - date_end: string (Inclusive YYYY-MM-DD upper bound)
  - sort: string (insertion|date|custom; empty uses the stored mode)

Response:
  - 200: []SeriesListEntry: Series in display order
*/
func (handler *Handler) listSeries(writer http.ResponseWriter, request *http.Request) {
	queryParams := request.URL.Query()

	params := FilterParams{
		Query:     queryParams.Get("q"),
		DateStart: queryParams.Get("date_start"),
		DateEnd:   queryParams.Get("date_end"),
		Sort:      SortMode(queryParams.Get("sort")),
	}

	respond.OK(writer, handler.service.ListSeries(request.Context(), params))
}

/*
POST /api/v1/series.

Description: Creates a new series. With use_template set, the series is
seeded with one zero-count item per saved template.

Request (Body):
  - SeriesDraft JSON object (title required, date optional YYYY-MM-DD)

Response:
  - 201: Series: Created series with its assigned id
  - 400: 400: ValidationError: Missing title or malformed date
  - 503: 503: PersistenceError: Applied in memory but not saved
*/
func (handler *Handler) createSeries(writer http.ResponseWriter, request *http.Request) {
	var draft SeriesDraft
	if err := requestutil.DecodeJSON(request, &draft); err != nil {
		respond.Error(writer, request, err)
		return
	}

	series, err := handler.service.CreateSeries(request.Context(), draft)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, series)
}

/*
GET /api/v1/series/{id}.

Description: Retrieves one series with its full item list.

Response:
  - 200: Series: Success
  - 404: 404: NotFound: Series not found
*/
func (handler *Handler) getSeries(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	series, err := handler.service.GetSeries(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, series)
}

/*
DELETE /api/v1/series/{id}.

Description: Deletes a series and every item it contains.

Response:
  - 204: No Content: Success
  - 404: 404: NotFound: Series not found
  - 503: 503: PersistenceError: Applied in memory but not saved
*/
func (handler *Handler) deleteSeries(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	if err := handler.service.DeleteSeries(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
PUT /api/v1/sort-mode.

Description: Stores the series list ordering policy.

Request (Body):
  - { "sort_mode": "insertion|date|custom" }

Response:
  - 200: Message: Success
  - 400: 400: ValidationError: Unknown mode
  - 503: 503: PersistenceError: Applied in memory but not saved
*/
func (handler *Handler) setSortMode(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		SortMode SortMode `json:"sort_mode"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.SetSortMode(request.Context(), input.SortMode); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]SortMode{"sort_mode": input.SortMode})
}

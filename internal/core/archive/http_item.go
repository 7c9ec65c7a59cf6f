// Copyright (c) 2026 Kuramono. All rights reserved.

package archive

import (
	"net/http"

	requestutil "github.com/tsukihara/kuramono/internal/platform/request"
	"github.com/tsukihara/kuramono/internal/platform/respond"
)

// # Item Endpoints

/*
POST /api/v1/series/{id}/items.

Description: Appends a new item to a series. A nil target list copies the
registry's current default set targets; the stored status is re-derived.

Request (Body):
  - ItemDraft JSON object (type required)

Response:
  - 201: Item: Stored item
  - 400: 400: ValidationError: Missing type or unknown status
  - 404: 404: NotFound: Series not found
  - 503: 503: PersistenceError: Applied in memory but not saved
*/
func (handler *Handler) appendItem(writer http.ResponseWriter, request *http.Request) {
	seriesID := requestutil.Param(request, "id")

	var draft ItemDraft
	if err := requestutil.DecodeJSON(request, &draft); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.SaveItem(request.Context(), seriesID, nil, draft)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, item)
}

/*
PUT /api/v1/series/{id}/items/{index}.

Description: Replaces the item at index. The previous item's trade stock is
carried over; everything else comes from the draft.

Request (Body):
  - ItemDraft JSON object (type required)

Response:
  - 200: Item: Stored item
  - 400: 400: ValidationError: Missing type, bad index, or unknown status
  - 404: 404: NotFound: Series or item not found
  - 503: 503: PersistenceError: Applied in memory but not saved
*/
func (handler *Handler) replaceItem(writer http.ResponseWriter, request *http.Request) {
	seriesID := requestutil.Param(request, "id")
	index, err := requestutil.Index(request, "index")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var draft ItemDraft
	if err := requestutil.DecodeJSON(request, &draft); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.SaveItem(request.Context(), seriesID, &index, draft)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

/*
DELETE /api/v1/series/{id}/items/{index}.

Description: Removes the item at index from a series.

Response:
  - 204: No Content: Success
  - 404: 404: NotFound: Series or item not found
  - 503: 503: PersistenceError: Applied in memory but not saved
*/
func (handler *Handler) deleteItem(writer http.ResponseWriter, request *http.Request) {
	seriesID := requestutil.Param(request, "id")
	index, err := requestutil.Index(request, "index")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteItem(request.Context(), seriesID, index); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
DELETE /api/v1/series/{id}/items.

Description: Empties a series' item list without deleting the series.

Response:
  - 204: No Content: Success
  - 404: 404: NotFound: Series not found
  - 503: 503: PersistenceError: Applied in memory but not saved
*/
func (handler *Handler) deleteAllItems(writer http.ResponseWriter, request *http.Request) {
	seriesID := requestutil.Param(request, "id")

	if err := handler.service.DeleteAllItems(request.Context(), seriesID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
GET /api/v1/series/{id}/items/{index}/trade-text.

Description: Renders the item's trade-request text using the stored trade
configuration.

Response:
  - 200: { "text": string }: Four-line trade text or the no-trade sentinel
  - 404: 404: NotFound: Series or item not found
*/
func (handler *Handler) tradeText(writer http.ResponseWriter, request *http.Request) {
	seriesID := requestutil.Param(request, "id")
	index, err := requestutil.Index(request, "index")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	text, err := handler.service.ItemTradeText(request.Context(), seriesID, index)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"text": text})
}

/*
POST /api/v1/series/{id}/items/{index}/counts.

Description: Applies a signed delta to one target's own or stock count.
The result floors at zero.

Request (Body):
  - { "bucket": "own|stock", "target": "string", "delta": int }

Response:
  - 200: Item: Updated item
  - 400: 400: ValidationError: Unknown bucket or target
  - 404: 404: NotFound: Series or item not found
  - 503: 503: PersistenceError: Applied in memory but not saved
*/
func (handler *Handler) adjustCount(writer http.ResponseWriter, request *http.Request) {
	seriesID := requestutil.Param(request, "id")
	index, err := requestutil.Index(request, "index")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		Bucket string `json:"bucket"`
		Target string `json:"target"`
		Delta  int    `json:"delta"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.AdjustCount(request.Context(), seriesID, index, input.Bucket, input.Target, input.Delta)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

/*
POST /api/v1/series/{id}/items/{index}/infinite.

Description: Flips one target's unlimited-need flag. Display and trade
semantics only; the owned count never changes.

Request (Body):
  - { "target": "string" }

Response:
  - 200: Item: Updated item
  - 400: 400: ValidationError: Unknown target
  - 404: 404: NotFound: Series or item not found
  - 503: 503: PersistenceError: Applied in memory but not saved
*/
func (handler *Handler) toggleInfinite(writer http.ResponseWriter, request *http.Request) {
	seriesID := requestutil.Param(request, "id")
	index, err := requestutil.Index(request, "index")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		Target string `json:"target"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.ToggleInfinite(request.Context(), seriesID, index, input.Target)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

/*
POST /api/v1/series/{id}/items/{index}/bulk.

Description: Runs one bulk action across every target of the item.

Request (Body):
  - { "action": "set_owned|clear_owned|increment_owned|reset_counts" }

Response:
  - 200: Item: Updated item
  - 400: 400: ValidationError: Unknown action
  - 404: 404: NotFound: Series or item not found
  - 503: 503: PersistenceError: Applied in memory but not saved
*/
func (handler *Handler) bulkApply(writer http.ResponseWriter, request *http.Request) {
	seriesID := requestutil.Param(request, "id")
	index, err := requestutil.Index(request, "index")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		Action string `json:"action"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.BulkApply(request.Context(), seriesID, index, input.Action)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

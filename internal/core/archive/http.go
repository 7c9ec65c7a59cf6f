// Copyright (c) 2026 Kuramono. All rights reserved.

package archive

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tsukihara/kuramono/internal/platform/constants"
	"github.com/tsukihara/kuramono/internal/platform/respond"
	"github.com/tsukihara/kuramono/internal/platform/validate"
)

// maxImportBytes bounds the import body. Exports of even very large personal
// collections stay far below this.
const maxImportBytes = 16 << 20

// # Handler Implementation

// Handler implements the HTTP layer for the archive.
//
// # Routing Strategy
//
//   - /series: the inventory itself (series, items, counts).
//   - /settings, /sort-mode, /presets: collection-level configuration.
//   - /missing, /export, /import, /flush: whole-collection operations.
//
// The handler translates between the REST layer and the [Service] domain;
// every response uses the standard envelopes from the respond package.
type Handler struct {
	service *Service
}

// NewHandler constructs a new archive [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with archive endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Inventory
	router.Get("/series", handler.listSeries)
	router.Post("/series", handler.createSeries)
	router.Route("/series/{id}", func(series chi.Router) {
		series.Get("/", handler.getSeries)
		series.Delete("/", handler.deleteSeries)

		series.Post("/items", handler.appendItem)
		series.Delete("/items", handler.deleteAllItems)
		series.Route("/items/{index}", func(items chi.Router) {
			items.Put("/", handler.replaceItem)
			items.Delete("/", handler.deleteItem)
			items.Get("/trade-text", handler.tradeText)
			items.Post("/counts", handler.adjustCount)
			items.Post("/infinite", handler.toggleInfinite)
			items.Post("/bulk", handler.bulkApply)
		})
	})

	// ## Configuration
	router.Get("/settings", handler.getSettings)
	router.Put("/settings", handler.saveSettings)
	router.Put("/sort-mode", handler.setSortMode)
	router.Get("/presets", handler.listPresets)
	router.Get("/presets/{index}/draft", handler.presetDraft)
	router.Get("/last-item", handler.lastItem)

	// ## Whole-Collection Operations
	router.Get("/missing", handler.missingReport)
	router.Get("/export", handler.exportArchive)
	router.Post("/import", handler.importArchive)
	router.Post("/flush", handler.flush)

	return router
}

// # Whole-Collection Endpoints

/*
GET /api/v1/missing.

Description: Aggregates every unowned target across the collection into a
per-series report. Items marked not_planned are excluded.

Response:
  - 200: []SeriesMissing: Report in stored series order
*/
func (handler *Handler) missingReport(writer http.ResponseWriter, request *http.Request) {
	report := handler.service.Missing(request.Context())
	if report == nil {
		report = []SeriesMissing{}
	}
	respond.OK(writer, report)
}

/*
GET /api/v1/export.

Description: Returns the portable archive snapshot (series, order, character
sets, presets, templates) for backup or migration to another device.

Response:
  - 200: Snapshot: Deep copy of the portable state
*/
func (handler *Handler) exportArchive(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.service.Export(request.Context()))
}

/*
POST /api/v1/import.

Description: Replaces the archive's portable state with a previously
exported snapshot. Unparseable input is rejected before any state changes.

Request (Body):
  - Snapshot JSON object

Response:
  - 200: Message: Success
  - 422: 422: FormatError: Body is not a valid archive export
  - 503: 503: PersistenceError: Applied in memory but not saved
*/
func (handler *Handler) importArchive(writer http.ResponseWriter, request *http.Request) {
	raw, err := readBody(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Import(request.Context(), raw); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{constants.FieldMessage: "Archive imported"})
}

/*
POST /api/v1/flush.

Description: Re-persists the in-memory collection. Used to retry durability
after a mutation answered 503.

Response:
  - 200: Message: Success
  - 503: 503: PersistenceError: Save failed again
*/
func (handler *Handler) flush(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Flush(request.Context()); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]string{constants.FieldMessage: "Archive saved"})
}

// readBody reads the size-capped request body.
func readBody(request *http.Request) ([]byte, error) {
	raw, err := io.ReadAll(io.LimitReader(request.Body, maxImportBytes))
	if err != nil {
		return nil, validate.ErrInvalidJSON
	}
	return raw, nil
}

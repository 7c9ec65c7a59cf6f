// Copyright (c) 2026 Kuramono. All rights reserved.

package archive

import (
	"net/http"

	"github.com/tsukihara/kuramono/internal/platform/constants"
	requestutil "github.com/tsukihara/kuramono/internal/platform/request"
	"github.com/tsukihara/kuramono/internal/platform/respond"
)

// # Settings Endpoints

/*
GET /api/v1/settings.

Description: Renders the collection-level configuration in the settings
editor's line-oriented formats.

Response:
  - 200: Settings: Trade config, character set text, preset text, template
    text, and the stored sort mode
*/
func (handler *Handler) getSettings(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.service.GetSettings(request.Context()))
}

/*
PUT /api/v1/settings.

Description: Parses and stores the settings editor's submission. Malformed
registry and preset lines are skipped; an empty character set text leaves
the registry unchanged.

Request (Body):
  - SettingsDraft JSON object

Response:
  - 200: Message: Success
  - 503: 503: PersistenceError: Applied in memory but not saved
*/
func (handler *Handler) saveSettings(writer http.ResponseWriter, request *http.Request) {
	var draft SettingsDraft
	if err := requestutil.DecodeJSON(request, &draft); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.SaveSettings(request.Context(), draft); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{constants.FieldMessage: "Settings saved"})
}

/*
GET /api/v1/presets.

Description: Lists the saved editor presets in stored order.

Response:
  - 200: []Preset
*/
func (handler *Handler) listPresets(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.service.Presets(request.Context()))
}

/*
GET /api/v1/presets/{index}/draft.

Description: Expands a saved preset into a fresh item draft for the editor,
with empty counts and the default status.

Response:
  - 200: ItemDraft: Pre-filled draft
  - 404: 404: NotFound: Preset index out of range
*/
func (handler *Handler) presetDraft(writer http.ResponseWriter, request *http.Request) {
	index, err := requestutil.Index(request, "index")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	draft, err := handler.service.PresetDraft(request.Context(), index)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, draft)
}

/*
GET /api/v1/last-item.

Description: Returns the previous item draft's type and set name for the
editor's quick-restore banner, or null when nothing has been saved yet.

Response:
  - 200: LastUsed | null
*/
func (handler *Handler) lastItem(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.service.LastItem(request.Context()))
}

// Copyright (c) 2026 Kuramono. All rights reserved.

package archive

import (
	"context"
	"log/slog"
	"strings"
)

// # Settings Operations

// Settings is the settings editor's view of the collection-level
// configuration, with the registry, presets, and templates rendered in
// their line-oriented editor formats.
type Settings struct {
	Trade        TradeConfig `json:"trade"`
	CharSetText  string      `json:"char_set_text"`
	PresetText   string      `json:"preset_text"`
	TemplateText string      `json:"template_text"`
	SortMode     SortMode    `json:"sort_mode"`
}

// SettingsDraft carries the settings editor's submission. Each section is
// parsed leniently: malformed lines are skipped rather than rejected.
type SettingsDraft struct {
	Trade        TradeConfig `json:"trade"`
	CharSetText  string      `json:"char_set_text"`
	PresetText   string      `json:"preset_text"`
	TemplateText string      `json:"template_text"`
}

// GetSettings renders the current configuration in editor form.
func (service *Service) GetSettings(_ context.Context) Settings {
	service.mu.Lock()
	defer service.mu.Unlock()

	return Settings{
		Trade:        service.collection.Trade,
		CharSetText:  service.collection.CharSets.Text(),
		PresetText:   presetText(service.collection.Presets),
		TemplateText: strings.Join(service.collection.Templates, ","),
		SortMode:     service.collection.SortMode,
	}
}

/*
SaveSettings parses and stores the settings editor's submission.

The trade configuration is taken verbatim, including empty prefix and
suffix. Character sets replace the registry only when the parsed text yields
at least one set; an empty submission leaves the registry unchanged. Preset
lines missing any of the three fields are skipped. Templates are the
non-empty comma-separated tokens; an empty template text clears them.

Returns:
  - error: apperr.PersistenceError when the save fails
*/
func (service *Service) SaveSettings(context context.Context, draft SettingsDraft) error {
	service.mu.Lock()
	defer service.mu.Unlock()

	service.collection.Trade = draft.Trade

	if parsed := ParseRegistryText(draft.CharSetText); len(parsed) > 0 {
		service.collection.CharSets = parsed
	}

	service.collection.Presets = parsePresetText(draft.PresetText)
	service.collection.Templates = splitTokens(draft.TemplateText)

	service.logger.Info("settings_saved",
		slog.Int("character_sets", len(service.collection.CharSets)),
		slog.Int("presets", len(service.collection.Presets)),
		slog.Int("templates", len(service.collection.Templates)),
	)

	return service.persist(context)
}

// Presets returns the saved editor presets in stored order.
func (service *Service) Presets(_ context.Context) []Preset {
	service.mu.Lock()
	defer service.mu.Unlock()

	return clonePresets(service.collection.Presets)
}

/*
Export returns a portable deep-copy snapshot of the archive.

Returns:
  - Snapshot: series, order, character sets, presets, and templates
*/
func (service *Service) Export(_ context.Context) Snapshot {
	service.mu.Lock()
	defer service.mu.Unlock()

	return snapshotOf(service.collection)
}

/*
Import replaces the archive's portable state with an exported document.

Unparseable input is rejected as a format error before any state changes;
the collection is only replaced once the whole document has decoded. Nil
character sets or templates in the document keep the existing values.

Returns:
  - error: apperr.FormatError or apperr.PersistenceError
*/
func (service *Service) Import(context context.Context, raw []byte) error {
	snapshot, err := decodeSnapshot(raw)
	if err != nil {
		return err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	applySnapshot(service.collection, snapshot)

	service.logger.Info("archive_imported",
		slog.Int("series_count", len(service.collection.Order)),
	)

	return service.persist(context)
}

// presetText renders presets in the editor format, one
// "type,setName,target|target|..." line per preset.
func presetText(presets []Preset) string {
	lines := make([]string, 0, len(presets))
	for _, preset := range presets {
		lines = append(lines, strings.Join([]string{
			preset.Type,
			preset.SetName,
			strings.Join(preset.Targets, "|"),
		}, ","))
	}
	return strings.Join(lines, "\n")
}

// parsePresetText parses the editor format back into presets, skipping any
// line that does not carry all three fields.
func parsePresetText(text string) []Preset {
	presets := []Preset{}

	for _, line := range strings.Split(text, "\n") {
		fields := strings.SplitN(line, ",", 3)
		if len(fields) < 3 {
			continue
		}

		itemType := strings.TrimSpace(fields[0])
		setName := strings.TrimSpace(fields[1])
		targets := []string{}
		for _, target := range strings.Split(fields[2], "|") {
			target = strings.TrimSpace(target)
			if target != "" {
				targets = append(targets, target)
			}
		}
		if itemType == "" || setName == "" || len(targets) == 0 {
			continue
		}

		presets = append(presets, Preset{
			Type:    itemType,
			SetName: setName,
			Targets: targets,
		})
	}

	return presets
}

// splitTokens returns the trimmed, non-empty comma-separated tokens.
func splitTokens(text string) []string {
	tokens := []string{}
	for _, token := range strings.Split(text, ",") {
		token = strings.TrimSpace(token)
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

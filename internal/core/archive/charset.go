// Copyright (c) 2026 Kuramono. All rights reserved.

package archive

import (
	"sort"
	"strings"

	"github.com/tsukihara/kuramono/internal/platform/constants"
)

// # Character Set Registry

// Registry maps a character set name to its ordered target list.
//
// Items never hold a reference into the registry: they copy the target list
// when created or edited, so replacing or renaming a set here has no effect
// on existing items.
type Registry map[string][]string

// DefaultRegistry returns a registry seeded with the reserved default set.
func DefaultRegistry() Registry {
	return Registry{
		constants.DefaultSetName: append([]string(nil), constants.DefaultCharacterSet...),
	}
}

// Get returns the target list registered under name.
func (registry Registry) Get(name string) ([]string, bool) {
	targets, found := registry[name]
	return targets, found
}

// DefaultTargets returns the target list of the reserved default set, or nil
// if the user has edited it away.
func (registry Registry) DefaultTargets() []string {
	return registry[constants.DefaultSetName]
}

// Names returns the set names with the reserved default first and the rest
// sorted, for a stable settings rendering.
func (registry Registry) Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		if name == constants.DefaultSetName {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	if _, hasDefault := registry[constants.DefaultSetName]; hasDefault {
		names = append([]string{constants.DefaultSetName}, names...)
	}
	return names
}

// Text renders the registry in the settings editor format, one
// "name:target,target,..." line per set.
func (registry Registry) Text() string {
	lines := make([]string, 0, len(registry))
	for _, name := range registry.Names() {
		lines = append(lines, name+":"+strings.Join(registry[name], ","))
	}
	return strings.Join(lines, "\n")
}

// clone returns a deep copy of the registry.
func (registry Registry) clone() Registry {
	cloned := make(Registry, len(registry))
	for name, targets := range registry {
		cloned[name] = append([]string(nil), targets...)
	}
	return cloned
}

// ParseRegistryText parses the settings editor format back into a registry.
//
// Each line is "name:comma-separated-targets". Blank lines and lines missing
// either the name or the target list are skipped. The result may be empty;
// callers must treat an empty result as "leave the registry unchanged" so an
// accidental empty submission cannot erase every set.
func ParseRegistryText(text string) Registry {
	parsed := Registry{}

	for _, line := range strings.Split(text, "\n") {
		name, rawTargets, found := strings.Cut(line, ":")
		name = strings.TrimSpace(name)
		if !found || name == "" || strings.TrimSpace(rawTargets) == "" {
			continue
		}

		targets := []string{}
		for _, target := range strings.Split(rawTargets, ",") {
			target = strings.TrimSpace(target)
			if target != "" {
				targets = append(targets, target)
			}
		}
		if len(targets) == 0 {
			continue
		}

		parsed[name] = targets
	}

	return parsed
}

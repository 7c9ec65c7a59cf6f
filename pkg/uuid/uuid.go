// Copyright (c) 2026 Kuramono. All rights reserved.

/*
Package uuid provides time-ordered unique identifiers for the platform.

It wraps the standard UUID library to specifically generate Version 7 values,
which embed a millisecond timestamp in their leading bits.

Advantages:

  - Sortable: Naturally ordered by creation time (millisecond precision).
  - Opaque: Safe to expose to clients without leaking sequence information.
  - Compact: 128-bit storage, standard hyphenated representation.

Series identifiers are timestamp-derived tokens by design, so UUIDv7 is the
mandatory ID type for all archive entities.
*/
package uuid

import "github.com/google/uuid"

// # Generators

// New generates a new UUIDv7 string.
func New() string {

	// Create a new version 7 UUID (time-sortable)
	id, err := uuid.NewV7()

	// entropy failure is an unrecoverable system-level error
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}

	return id.String()
}

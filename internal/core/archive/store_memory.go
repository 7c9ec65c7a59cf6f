// Copyright (c) 2026 Kuramono. All rights reserved.

package archive

import (
	"context"
	"sync"
)

// MemoryGateway implements [Gateway] on an in-process map.
//
// It is the development default and the backend used by tests. Data does not
// survive a restart.
type MemoryGateway struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryGateway creates an empty in-process [Gateway].
func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{data: map[string][]byte{}}
}

// Load returns the document stored under key, or (nil, nil) when absent.
func (gateway *MemoryGateway) Load(_ context.Context, key string) ([]byte, error) {
	gateway.mu.RLock()
	defer gateway.mu.RUnlock()

	raw, found := gateway.data[key]
	if !found {
		return nil, nil
	}
	return append([]byte(nil), raw...), nil
}

// Save stores a copy of the document under key.
func (gateway *MemoryGateway) Save(_ context.Context, key string, value []byte) error {
	gateway.mu.Lock()
	defer gateway.mu.Unlock()

	gateway.data[key] = append([]byte(nil), value...)
	return nil
}

// Ping always succeeds.
func (gateway *MemoryGateway) Ping(_ context.Context) error {
	return nil
}

package checkout

import (
	"context"
	"sync"

	pkgerrors "github.com/bdevries/parceldesk-backend/pkg/errors"
	"github.com/google/uuid"
)

// MemoryQuoteStore is a concurrency-safe in-memory QuoteRepository. The module
// treats quote persistence as the host platform's concern; this store backs
// the API when no platform storage is wired in.
type MemoryQuoteStore struct {
	mu     sync.RWMutex
	quotes map[uuid.UUID]Quote
}

// NewMemoryQuoteStore builds an empty store.
func NewMemoryQuoteStore() *MemoryQuoteStore {
	return &MemoryQuoteStore{quotes: make(map[uuid.UUID]Quote)}
}

// Save stores a copy of the quote keyed by its id.
func (m *MemoryQuoteStore) Save(_ context.Context, quote *Quote) error {
	if quote == nil || quote.ID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "quote id required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quotes[quote.ID] = *quote
	return nil
}

// Load returns a copy of the stored quote.
func (m *MemoryQuoteStore) Load(_ context.Context, id uuid.UUID) (*Quote, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	quote, ok := m.quotes[id]
	if !ok {
		return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "quote %s not found", id)
	}
	return &quote, nil
}

package cache

import (
	"context"
	"encoding/json"
)

// maxSearchTerms caps the history; the oldest entry is evicted past the cap.
const maxSearchTerms = 10

// SearchHistory keeps a most-recent-first list of search terms in a Store.
// Re-adding a known term moves it to the front instead of duplicating it.
type SearchHistory struct {
	store Store
}

func NewSearchHistory(store Store) *SearchHistory {
	return &SearchHistory{store: store}
}

func (h *SearchHistory) Get(ctx context.Context) []string {
	raw, err := h.store.Get(ctx, KeySearchHistory)
	if err != nil {
		return nil
	}
	var terms []string
	if err := json.Unmarshal([]byte(raw), &terms); err != nil {
		return nil
	}
	return terms
}

func (h *SearchHistory) Add(ctx context.Context, term string) error {
	if term == "" {
		return nil
	}
	updated := []string{term}
	for _, t := range h.Get(ctx) {
		if t == term {
			continue
		}
		updated = append(updated, t)
	}
	if len(updated) > maxSearchTerms {
		updated = updated[:maxSearchTerms]
	}
	raw, err := json.Marshal(updated)
	if err != nil {
		return err
	}
	return h.store.Set(ctx, KeySearchHistory, string(raw), 0)
}

func (h *SearchHistory) Clear(ctx context.Context) error {
	return h.store.Remove(ctx, KeySearchHistory)
}

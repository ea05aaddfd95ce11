package scan

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/soundbridge/opportunity-engine/internal/models"
)

// OpportunityStore is the persistence collaborator. The store's unique
// constraint on title is the real guarantor of uniqueness; the gate's
// pre-check only reduces redundant writes.
type OpportunityStore interface {
	List(ctx context.Context) ([]models.Opportunity, error)
	Create(ctx context.Context, o models.Opportunity) error
}

// Gate filters candidate batches against existing titles before writing.
type Gate struct {
	store OpportunityStore
}

func NewGate(store OpportunityStore) *Gate {
	return &Gate{store: store}
}

// Persist writes the candidates whose titles are not already in the store.
// Individual write conflicts (a concurrent scan won the race) and other
// per-record failures are logged skips, never errors.
func (g *Gate) Persist(ctx context.Context, candidates []models.Opportunity) (int, error) {
	if len(candidates) == 0 {
		return 0, nil
	}

	existing, err := g.store.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load existing opportunities: %w", err)
	}

	titles := make(map[string]bool, len(existing))
	for _, o := range existing {
		titles[strings.ToLower(o.Title)] = true
	}

	added := 0
	for _, c := range candidates {
		key := strings.ToLower(strings.TrimSpace(c.Title))
		if key == "" || titles[key] {
			continue
		}

		if err := g.store.Create(ctx, c); err != nil {
			if errors.Is(err, models.ErrDuplicateTitle) {
				// Lost the race to another writer; the record exists.
				titles[key] = true
				continue
			}
			log.Printf("[scan] failed to persist %q: %v", c.Title, err)
			continue
		}

		titles[key] = true
		added++
	}

	return added, nil
}

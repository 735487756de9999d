package battle

import (
	"context"
	"fmt"
	"time"

	"github.com/pokebattle/arena/internal/cache"
	"github.com/pokebattle/arena/internal/model"
)

// StatDetailSource fetches a stat's detail record from the catalog.
type StatDetailSource interface {
	StatDetail(ctx context.Context, ref string) (model.StatDetail, error)
}

// Resolver turns a stat's detail URL into a StatModifier, caching the
// resolution per source ref for the configured TTL. Upstream content
// changes mid-TTL are invisible until expiry; cache coherence here is
// time-bounded, not event-driven.
type Resolver struct {
	source StatDetailSource
	store  cache.Store
	ttl    time.Duration
}

// NewResolver creates a resolver caching resolutions in store for ttl.
func NewResolver(source StatDetailSource, store cache.Store, ttl time.Duration) *Resolver {
	return &Resolver{source: source, store: store, ttl: ttl}
}

// Resolve returns the modifier for stat sourced from ref. A stat with an
// empty ref, or whose detail lists no affecting moves, resolves to an
// unmodified multiplier of 1.0 rather than an error.
func (r *Resolver) Resolve(ctx context.Context, stat, ref string) (model.StatModifier, error) {
	if ref == "" {
		return model.NewStatModifier(stat, ref, 0), nil
	}

	key := cache.StatKeyPrefix + ref
	if v, ok := r.store.Get(key); ok {
		cached := v.(model.StatModifier)
		// The cache is keyed by ref, so the same detail record serves
		// any stat name pointing at it.
		cached.Stat = stat
		return cached, nil
	}

	detail, err := r.source.StatDetail(ctx, ref)
	if err != nil {
		return model.StatModifier{}, fmt.Errorf("resolving modifier for %q: %w", stat, err)
	}

	choice := model.ChooseEffect(detail)
	modifier := model.NewStatModifier(stat, ref, choice.Change)
	r.store.Set(key, modifier, r.ttl)
	return modifier, nil
}

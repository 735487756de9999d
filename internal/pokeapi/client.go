// Package pokeapi is the read-only catalog client the battle engine
// fetches combatant attributes and stat details from. Combatant lookups
// are cached for the configured TTL; names are matched case-sensitively
// against lowercase catalog entries, so callers normalize first.
package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pokebattle/arena/internal/cache"
	"github.com/pokebattle/arena/internal/model"
)

const DefaultBaseURL = "https://pokeapi.co/api/v2"

// Client talks to the PokeAPI catalog over HTTP.
type Client struct {
	baseURL string
	client  *http.Client
	store   cache.Store
	ttl     time.Duration
}

// NewClient creates a catalog client caching combatants in store for ttl.
func NewClient(baseURL string, timeout, ttl time.Duration, store cache.Store) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		store:   store,
		ttl:     ttl,
	}
}

// Fetch retrieves a combatant by name, serving repeated lookups within
// the TTL from cache. Returns model.ErrNotFound for unknown names and
// model.ErrUpstreamUnavailable on transport or server failure.
func (c *Client) Fetch(ctx context.Context, name string) (*model.Combatant, error) {
	key := cache.PokemonKeyPrefix + name
	if v, ok := c.store.Get(key); ok {
		return v.(*model.Combatant), nil
	}

	url := fmt.Sprintf("%s/pokemon/%s", c.baseURL, name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %q: %w", name, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching pokemon %q: %w: %w", name, model.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("pokemon %q: %w", name, model.ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("fetching pokemon %q: status %s: %w", name, resp.Status, model.ErrUpstreamUnavailable)
	}

	var payload pokemonPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding pokemon %q: %w: %w", name, model.ErrUpstreamUnavailable, err)
	}

	combatant := payload.toCombatant()
	c.store.Set(key, combatant, c.ttl)
	return combatant, nil
}

// StatDetail retrieves a stat's detail record by its absolute URL from
// the catalog. Callers cache the resolution, not the raw record.
func (c *Client) StatDetail(ctx context.Context, ref string) (model.StatDetail, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return model.StatDetail{}, fmt.Errorf("building request for stat %q: %w", ref, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return model.StatDetail{}, fmt.Errorf("fetching stat %q: %w: %w", ref, model.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.StatDetail{}, fmt.Errorf("fetching stat %q: status %s: %w", ref, resp.Status, model.ErrUpstreamUnavailable)
	}

	var payload statPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return model.StatDetail{}, fmt.Errorf("decoding stat %q: %w: %w", ref, model.ErrUpstreamUnavailable, err)
	}

	return payload.toStatDetail(), nil
}

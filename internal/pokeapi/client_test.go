package pokeapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokebattle/arena/internal/cache"
	"github.com/pokebattle/arena/internal/model"
)

const pikachuJSON = `{
	"id": 25,
	"name": "pikachu",
	"base_experience": 112,
	"height": 4,
	"weight": 60,
	"stats": [
		{"base_stat": 35, "stat": {"name": "hp", "url": "%[1]s/stat/1"}},
		{"base_stat": 55, "stat": {"name": "attack", "url": "%[1]s/stat/2"}},
		{"base_stat": 40, "stat": {"name": "defense", "url": "%[1]s/stat/3"}},
		{"base_stat": 50, "stat": {"name": "special-attack", "url": "%[1]s/stat/4"}},
		{"base_stat": 50, "stat": {"name": "special-defense", "url": "%[1]s/stat/5"}},
		{"base_stat": 90, "stat": {"name": "speed", "url": "%[1]s/stat/6"}}
	],
	"types": [{"type": {"name": "electric"}}],
	"abilities": [{"ability": {"name": "static"}}, {"ability": {"name": "lightning-rod"}}]
}`

func newCatalog(t *testing.T, hits *atomic.Int64) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		switch r.URL.Path {
		case "/pokemon/pikachu":
			fmt.Fprintf(w, pikachuJSON, srv.URL)
		case "/stat/2":
			fmt.Fprint(w, `{"affecting_moves": {
				"increase": [{"change": 2, "move": {"name": "swords-dance"}}],
				"decrease": [{"change": -1, "move": {"name": "growl"}}]
			}}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(srv.URL, 5*time.Second, time.Hour, cache.NewMemory())
}

func TestClient_Fetch(t *testing.T) {
	srv := newCatalog(t, nil)
	c := newTestClient(srv)

	combatant, err := c.Fetch(context.Background(), "pikachu")
	require.NoError(t, err)

	assert.Equal(t, "pikachu", combatant.Name)
	assert.Equal(t, 25, combatant.PokeAPIID)
	assert.Equal(t, 112, combatant.BaseExperience)
	assert.Equal(t, []string{"electric"}, combatant.Types)
	assert.Equal(t, []string{"static", "lightning-rod"}, combatant.Abilities)
	require.NoError(t, combatant.Validate())

	attack, ok := combatant.BaseStat(model.StatAttack)
	require.True(t, ok)
	assert.Equal(t, 55, attack)
	assert.Equal(t, srv.URL+"/stat/2", combatant.StatDetailURL(model.StatAttack))
}

func TestClient_Fetch_NotFound(t *testing.T) {
	srv := newCatalog(t, nil)
	c := newTestClient(srv)

	_, err := c.Fetch(context.Background(), "missingmon")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrNotFound), "want ErrNotFound, got %v", err)
	assert.Contains(t, err.Error(), "missingmon")
}

func TestClient_Fetch_UpstreamDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	c := newTestClient(srv)

	_, err := c.Fetch(context.Background(), "pikachu")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrUpstreamUnavailable), "want ErrUpstreamUnavailable, got %v", err)
}

func TestClient_Fetch_TransportFailure(t *testing.T) {
	srv := newCatalog(t, nil)
	srv.Close()
	c := newTestClient(srv)

	_, err := c.Fetch(context.Background(), "pikachu")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrUpstreamUnavailable))
}

func TestClient_Fetch_CachedWithinTTL(t *testing.T) {
	var hits atomic.Int64
	srv := newCatalog(t, &hits)
	c := newTestClient(srv)

	first, err := c.Fetch(context.Background(), "pikachu")
	require.NoError(t, err)
	second, err := c.Fetch(context.Background(), "pikachu")
	require.NoError(t, err)

	assert.Equal(t, int64(1), hits.Load(), "second fetch must be served from cache")
	assert.Same(t, first, second)
}

func TestClient_StatDetail(t *testing.T) {
	srv := newCatalog(t, nil)
	c := newTestClient(srv)

	detail, err := c.StatDetail(context.Background(), srv.URL+"/stat/2")
	require.NoError(t, err)

	require.Len(t, detail.Increase, 1)
	assert.Equal(t, model.MoveEffect{Move: "swords-dance", Change: 2}, detail.Increase[0])
	require.Len(t, detail.Decrease, 1)
	assert.Equal(t, model.MoveEffect{Move: "growl", Change: -1}, detail.Decrease[0])
}

func TestClient_StatDetail_UpstreamDown(t *testing.T) {
	srv := newCatalog(t, nil)
	c := newTestClient(srv)

	_, err := c.StatDetail(context.Background(), srv.URL+"/stat/404")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrUpstreamUnavailable), "want ErrUpstreamUnavailable, got %v", err)
}

package pokeapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

type sleepRecorder struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (s *sleepRecorder) sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delays = append(s.delays, d)
	return ctx.Err()
}

func (s *sleepRecorder) recorded() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Duration(nil), s.delays...)
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *sleepRecorder) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	rec := &sleepRecorder{}
	policy := DefaultRetryPolicy()
	policy.Sleep = rec.sleep

	return NewClient(srv.URL+"/api/v2/", WithHTTPClient(srv.Client()), WithRetryPolicy(policy)), rec
}

func TestFetchRetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	client, rec := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"id": 25, "name": "pikachu"}`)
	}))

	creature, err := client.CreatureByID(context.Background(), 25)
	require.NoError(t, err)
	require.NotNil(t, creature)
	assert.Equal(t, "pikachu", creature.Name)
	assert.Equal(t, int32(3), calls.Load())

	delays := rec.recorded()
	require.Len(t, delays, 2)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, delays)
	assert.Less(t, delays[0], delays[1])
}

func TestFetchNotFoundIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	client, rec := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))

	creature, err := client.CreatureByID(context.Background(), 99999)
	assert.NoError(t, err)
	assert.Nil(t, creature)
	assert.Equal(t, int32(1), calls.Load())
	assert.Empty(t, rec.recorded())
}

func TestFetchGivesUpAfterMaxAttempts(t *testing.T) {
	var calls atomic.Int32
	client, rec := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	_, err := client.Species(context.Background(), client.BaseURL()+"/pokemon-species/1")
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.Equal(t, int32(3), calls.Load())
	assert.Len(t, rec.recorded(), 2, "no wait after the final attempt")
}

func TestFetchRetriesMalformedJSON(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			fmt.Fprint(w, `{"results": [`)
			return
		}
		fmt.Fprint(w, `{"count": 2, "results": [{"name": "bulbasaur", "url": "u1"}, {"name": "ivysaur", "url": "u2"}]}`)
	}))

	list, err := client.ListCreatures(context.Background(), 2)
	require.NoError(t, err)
	require.NotNil(t, list)
	assert.Len(t, list.Results, 2)
	assert.Equal(t, int32(2), calls.Load())
}

func TestListCreaturesRequestsLimit(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/pokemon", r.URL.Path)
		assert.Equal(t, "1025", r.URL.Query().Get("limit"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		fmt.Fprint(w, `{"count": 0, "results": []}`)
	}))

	list, err := client.ListCreatures(context.Background(), 1025)
	require.NoError(t, err)
	assert.Empty(t, list.Results)
}

func TestCreatureURL(t *testing.T) {
	c := NewClient("https://pokeapi.co/api/v2/")
	assert.Equal(t, "https://pokeapi.co/api/v2/pokemon/6", c.CreatureURL(6))
	assert.Equal(t, "https://pokeapi.co/api/v2", c.BaseURL())
}

package catalog

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/meur/pokedex/internal/logging"
	"go.uber.org/zap"
)

// LoadFailedMessage is shown in place of the catalog when the bulk load fails
const LoadFailedMessage = "Could not load Pokémon data. Please try refreshing the page or check the console."

// ErrNotLoaded is returned by Controller.Ready while no catalog is available
var ErrNotLoaded = errors.New("catalog not loaded")

// LoadState is the lifecycle of the shared collection
type LoadState string

const (
	StateLoading LoadState = "loading"
	StateReady   LoadState = "ready"
	StateFailed  LoadState = "failed"
)

// Status describes the controller for display
type Status struct {
	State   LoadState `json:"state"`
	Count   int       `json:"count"`
	Message string    `json:"message,omitempty"`
}

// Controller owns the shared collection. A reload builds into a temporary
// catalog and publishes it with a single pointer swap
type Controller struct {
	agg     *Aggregator
	limit   int
	current atomic.Pointer[Catalog]
	logger  *zap.Logger

	mu    sync.RWMutex
	state LoadState
	err   error
}

// NewController creates a controller in the loading state
func NewController(agg *Aggregator, limit int, logger *zap.Logger) *Controller {
	return &Controller{
		agg:    agg,
		limit:  limit,
		logger: logging.OrNop(logger),
		state:  StateLoading,
	}
}

// Reload runs a bulk load. On failure the previous catalog, if any, stays
// published but the status reports the failure
func (c *Controller) Reload(ctx context.Context) error {
	c.setState(StateLoading, nil)

	cat, err := c.agg.Load(ctx, c.limit)
	if err != nil {
		c.logger.Error("Failed to fetch creature data", zap.Error(err))
		c.setState(StateFailed, err)
		return err
	}

	c.current.Store(cat)
	c.setState(StateReady, nil)
	return nil
}

// Current returns the published catalog, or nil before the first load
func (c *Controller) Current() *Catalog {
	return c.current.Load()
}

// Ready returns the catalog when the last load succeeded
func (c *Controller) Ready() (*Catalog, error) {
	c.mu.RLock()
	state, err := c.state, c.err
	c.mu.RUnlock()

	switch state {
	case StateReady:
		return c.Current(), nil
	case StateFailed:
		return nil, err
	}
	return nil, ErrNotLoaded
}

// Status reports the load state and the size of the published catalog
func (c *Controller) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Status{State: c.state, Count: c.Current().Len()}
	if c.state == StateFailed {
		s.Message = LoadFailedMessage
	}
	return s
}

func (c *Controller) setState(state LoadState, err error) {
	c.mu.Lock()
	c.state, c.err = state, err
	c.mu.Unlock()
}

package usecase

import (
	"context"
	"sync"

	"github.com/divyanshus2404/Unimarket/internal/domain"
	"github.com/divyanshus2404/Unimarket/internal/platform/logger"
	"go.uber.org/zap"
)

// ProductSource is the catalog surface a feed consumes.
type ProductSource interface {
	List(ctx context.Context, filter domain.Filter) ([]*domain.Product, error)
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
}

// ProductFeed holds the query state for one product listing view: the last
// successful result set, an in-flight flag and the last error. A semantically
// new filter triggers exactly one fetch; identical filters do not re-fetch.
//
// Fetches may overlap. Each one takes a monotonically increasing sequence
// number, and a response is applied only when no newer response has been
// applied yet, so a slow stale request can never overwrite a fresher result.
type ProductFeed struct {
	source ProductSource
	logger *logger.Logger

	mu        sync.Mutex
	filter    domain.Filter
	hasFilter bool
	seq       uint64
	applied   uint64
	inflight  int
	items     []*domain.Product
	lastErr   string
}

// NewProductFeed creates a feed over the given catalog source.
func NewProductFeed(source ProductSource, log *logger.Logger) *ProductFeed {
	return &ProductFeed{
		source: source,
		logger: log.Named("ProductFeed"),
		items:  []*domain.Product{},
	}
}

// SetFilter installs a filter and fetches when it differs by value from the
// current one. The first call always fetches.
func (f *ProductFeed) SetFilter(ctx context.Context, filter domain.Filter) {
	f.mu.Lock()
	if f.hasFilter && f.filter.Equal(filter) {
		f.mu.Unlock()
		return
	}
	f.filter = filter
	f.hasFilter = true
	f.mu.Unlock()

	f.fetch(ctx, filter)
}

// Refetch re-runs the current filter's query.
func (f *ProductFeed) Refetch(ctx context.Context) {
	f.mu.Lock()
	filter := f.filter
	f.mu.Unlock()
	f.fetch(ctx, filter)
}

// Create submits a new listing and, on success, refreshes the feed. The new
// product is never inserted optimistically into the current item list.
func (f *ProductFeed) Create(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	product, err := f.source.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	f.Refetch(ctx)
	return product, nil
}

func (f *ProductFeed) fetch(ctx context.Context, filter domain.Filter) {
	f.mu.Lock()
	f.seq++
	n := f.seq
	f.inflight++
	f.mu.Unlock()

	// The in-flight counter always comes back down, success or failure.
	defer func() {
		f.mu.Lock()
		f.inflight--
		f.mu.Unlock()
	}()

	items, err := f.source.List(ctx, filter)

	f.mu.Lock()
	defer f.mu.Unlock()
	if n <= f.applied {
		// A newer request already resolved; this response is stale.
		f.logger.Debug("Discarding superseded fetch result", zap.Uint64("seq", n), zap.Uint64("applied", f.applied))
		return
	}
	f.applied = n
	if err != nil {
		// Stale-on-error: keep the last successful items.
		f.lastErr = err.Error()
		return
	}
	f.lastErr = ""
	if items == nil {
		items = []*domain.Product{}
	}
	f.items = items
}

// Snapshot returns the current items (a copy), whether a fetch is in flight,
// and the last error message ("" when the last applied fetch succeeded).
func (f *ProductFeed) Snapshot() ([]*domain.Product, bool, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := make([]*domain.Product, len(f.items))
	copy(items, f.items)
	return items, f.inflight > 0, f.lastErr
}

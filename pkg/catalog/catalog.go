// ABOUTME: PredatorCatalog: one-time dataset load and the active view
// ABOUTME: Filter and sort update the active view, search only reads it

package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/nainya/predators/internal/logger"
	"github.com/nainya/predators/pkg/predator"
	"github.com/nainya/predators/pkg/query"
)

// EmbeddedSource names the dataset bundled with the binary
const EmbeddedSource = "jpapexpredators.json"

//go:embed data/jpapexpredators.json
var embeddedDataset []byte

var (
	// ErrUnavailable is returned when the dataset failed to load
	ErrUnavailable = errors.New("catalog: dataset unavailable")

	// ErrRecordNotFound is returned when no record has the requested id
	ErrRecordNotFound = errors.New("catalog: record not found")
)

// Recorder receives operation and load measurements
type Recorder interface {
	RecordOperation(operation string, status string, duration time.Duration, results int)
	RecordLoad(err error, total int, byCategory map[string]int)
}

// Options configures a Catalog. Zero values disable logging and metrics.
type Options struct {
	Logger  *logger.Logger
	Metrics Recorder
}

// Catalog owns the full record set and the current active view.
//
// The full set is loaded once and never modified. FilterByCategory and SortBy
// replace the active view under a write lock; Search and the accessors take a
// read lock, so a Catalog may be shared between goroutines.
type Catalog struct {
	mu     sync.RWMutex
	active query.View
	filter predator.CategoryFilter

	index   *query.Index
	byID    map[int]int
	source  string
	loadErr error

	log     *logger.Logger
	metrics Recorder
}

// New loads the embedded dataset
func New(opts Options) (*Catalog, error) {
	return NewFromBytes(embeddedDataset, EmbeddedSource, opts)
}

// Open loads the dataset at path
func Open(path string, opts Options) (*Catalog, error) {
	start := time.Now()
	f, err := os.Open(path)
	if err != nil {
		return newCatalogTimed(nil, path, predator.NewDataError(predator.NotFound, path, err), opts, start)
	}
	defer f.Close()

	return NewFromReader(f, path, opts)
}

// NewFromReader loads the dataset from r
func NewFromReader(r io.Reader, source string, opts Options) (*Catalog, error) {
	start := time.Now()
	records, err := predator.Decode(r, source)
	return newCatalogTimed(records, source, err, opts, start)
}

// NewFromBytes loads an in-memory dataset
func NewFromBytes(data []byte, source string, opts Options) (*Catalog, error) {
	start := time.Now()
	records, err := predator.DecodeBytes(data, source)
	return newCatalogTimed(records, source, err, opts, start)
}

func newCatalogTimed(records []predator.Record, source string, err error, opts Options, start time.Time) (*Catalog, error) {
	c, err := newCatalog(records, source, err, opts)
	c.log.LogDatasetLoad(source, time.Since(start), c.FullRecordCount(), err)
	return c, err
}

// newCatalog always returns a usable Catalog. When loadErr is set the catalog
// is empty and reports itself unavailable; the error is returned as well so
// callers can tell a failed load from an empty dataset.
func newCatalog(records []predator.Record, source string, loadErr error, opts Options) (*Catalog, error) {
	if loadErr != nil {
		records = nil
	}

	c := &Catalog{
		filter:  predator.All(),
		index:   query.NewIndex(records),
		byID:    make(map[int]int, len(records)),
		source:  source,
		loadErr: loadErr,
		log:     opts.Logger,
		metrics: opts.Metrics,
	}
	if c.log == nil {
		c.log = logger.Nop()
	}

	for i := range records {
		c.byID[records[i].ID] = i
	}
	c.active = c.index.Full()

	if c.metrics != nil {
		byCategory := make(map[string]int, len(predator.Categories))
		for _, cat := range predator.Categories {
			byCategory[string(cat)] = c.index.Count(cat)
		}
		c.metrics.RecordLoad(loadErr, c.index.Len(), byCategory)
	}

	return c, loadErr
}

// Available reports whether the dataset loaded
func (c *Catalog) Available() bool {
	return c.loadErr == nil
}

// Err returns the load error, if any
func (c *Catalog) Err() error {
	return c.loadErr
}

// Source returns the dataset name or path
func (c *Catalog) Source() string {
	return c.source
}

// FullRecordCount returns the size of the full set
func (c *Catalog) FullRecordCount() int {
	return c.index.Len()
}

// ActiveView returns a deep snapshot of the active view
func (c *Catalog) ActiveView() query.View {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.active.Clone()
}

// CurrentFilter returns the selector of the last FilterByCategory call
func (c *Catalog) CurrentFilter() predator.CategoryFilter {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.filter
}

// FilterByCategory replaces the active view with the full-set records matching
// f, in source order. Filters never compound.
func (c *Catalog) FilterByCategory(f predator.CategoryFilter) {
	start := time.Now()

	view := c.index.Filter(f)

	c.mu.Lock()
	c.active = view
	c.filter = f
	c.mu.Unlock()

	c.observe("filter", start, len(view))
}

// SortBy stably sorts the active view
func (c *Catalog) SortBy(mode query.SortMode) {
	start := time.Now()

	c.mu.Lock()
	c.active = query.Sort(c.active, mode)
	n := len(c.active)
	c.mu.Unlock()

	c.observe("sort", start, n)
}

// Search returns the active-view records whose name contains text. The active
// view is not modified.
func (c *Catalog) Search(text string) query.View {
	start := time.Now()

	c.mu.RLock()
	view := query.Search(c.active, text)
	c.mu.RUnlock()

	c.observe("search", start, len(view))
	return view
}

// Apply runs the whole pipeline: filter, sort, then search. The active view
// is replaced in one step with the filtered, sorted view; the search result is
// returned.
func (c *Catalog) Apply(q query.Query) query.View {
	start := time.Now()

	sorted := query.Sort(c.index.Filter(q.Filter), q.Sort)

	c.mu.Lock()
	c.active = sorted
	c.filter = q.Filter
	c.mu.Unlock()

	view := query.Search(sorted, q.Text)
	c.observe("apply", start, len(view))
	return view
}

// Lookup returns the record with the given id from the full set
func (c *Catalog) Lookup(id int) (predator.Record, error) {
	start := time.Now()

	if !c.Available() {
		err := fmt.Errorf("lookup %d: %w", id, ErrUnavailable)
		c.observeErr("lookup", start, err)
		return predator.Record{}, err
	}

	pos, ok := c.byID[id]
	if !ok {
		err := fmt.Errorf("lookup %d: %w", id, ErrRecordNotFound)
		c.observeErr("lookup", start, err)
		return predator.Record{}, err
	}

	r, _ := c.index.Get(pos)
	c.observe("lookup", start, 1)
	return r, nil
}

// Stats summarises the full set
type Stats struct {
	Total      int
	ByCategory map[predator.Category]int
	ByDiet     map[predator.Diet]int
}

// Stats returns per-category and per-diet counts of the full set
func (c *Catalog) Stats() Stats {
	s := Stats{
		Total:      c.index.Len(),
		ByCategory: make(map[predator.Category]int, len(predator.Categories)),
		ByDiet:     make(map[predator.Diet]int, 2),
	}
	for _, cat := range predator.Categories {
		s.ByCategory[cat] = c.index.Count(cat)
	}
	for _, d := range []predator.Diet{predator.Carnivore, predator.Herbivore} {
		s.ByDiet[d] = c.index.DietCount(d)
	}
	return s
}

func (c *Catalog) observe(operation string, start time.Time, results int) {
	d := time.Since(start)
	c.log.LogCatalogOperation(operation, d, results, nil)
	if c.metrics != nil {
		c.metrics.RecordOperation(operation, "success", d, results)
	}
}

func (c *Catalog) observeErr(operation string, start time.Time, err error) {
	d := time.Since(start)
	c.log.LogCatalogOperation(operation, d, 0, err)
	if c.metrics != nil {
		c.metrics.RecordOperation(operation, "error", d, 0)
	}
}

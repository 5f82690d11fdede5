// Package listview turns a fetched collection plus the user's search, sort
// and page choices into the rows of one rendered page.
//
// Rows always flow filter -> sort -> slice. A Controller holds the per-page
// view state; Derive is pure and recomputes the page from that state.
package listview

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"backoffice/internal/domain"
)

var (
	ErrUnknownSortField = errors.New("listview: unknown sort field")
	ErrInvalidConfig    = errors.New("listview: invalid config")
)

// Config parametrises a Controller for one resource.
type Config[T any] struct {
	// SearchFields are matched case-insensitively against the search term.
	// Accessors must return "" for missing values instead of panicking.
	SearchFields []func(T) string
	// SortFields maps a column key to an ascending comparator.
	SortFields       map[string]func(a, b T) int
	DefaultSort      string
	DefaultDirection domain.SortDirection
	PageSize         int
	// ServerPaged delegates search, sort and paging to the collection
	// provider: the source then holds one page and totalPages comes from it.
	ServerPaged bool
}

// PageLink is one entry of the pagination control. Ellipsis entries have
// no number.
type PageLink struct {
	Number   int  `json:"number,omitempty"`
	Current  bool `json:"current,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

// View is the render-ready result of Derive.
type View[T any] struct {
	Rows       []T                  `json:"rows"`
	PageIndex  int                  `json:"page"`
	PageSize   int                  `json:"pageSize"`
	TotalPages int                  `json:"totalPages"`
	TotalRows  int                  `json:"totalRows,omitempty"`
	SearchTerm string               `json:"search"`
	SortField  string               `json:"sort"`
	Direction  domain.SortDirection `json:"order"`
	Pages      []PageLink           `json:"pages,omitempty"`
	HasPrev    bool                 `json:"hasPrev"`
	HasNext    bool                 `json:"hasNext"`
}

// Query is what a server-paged provider needs to fetch the current page.
type Query struct {
	Page   int
	Limit  int
	Search string
	Sort   string
	Order  domain.SortDirection
}

// Params renders the query as upstream query parameters.
func (q Query) Params() map[string]string {
	out := map[string]string{
		"page":  strconv.Itoa(q.Page),
		"limit": strconv.Itoa(q.Limit),
	}
	if q.Search != "" {
		out["search"] = q.Search
	}
	if q.Sort != "" {
		out["sort"] = q.Sort
		out["order"] = string(q.Order)
	}
	return out
}

// Controller is the view state of one list page. It is not safe for
// concurrent use; the owner serialises access.
type Controller[T any] struct {
	cfg Config[T]

	source      []T
	serverPages int
	serverRows  int
	loaded      bool
	generation  uint64

	searchTerm string
	sortField  string
	direction  domain.SortDirection
	pageIndex  int
}

// New validates cfg and returns a controller on page 1 with the default sort.
func New[T any](cfg Config[T]) (*Controller[T], error) {
	if cfg.PageSize <= 0 {
		return nil, fmt.Errorf("%w: page size %d", ErrInvalidConfig, cfg.PageSize)
	}
	if cfg.DefaultSort != "" {
		if _, ok := cfg.SortFields[cfg.DefaultSort]; !ok {
			return nil, fmt.Errorf("%w: default sort %q", ErrUnknownSortField, cfg.DefaultSort)
		}
	}
	dir := cfg.DefaultDirection
	if dir != domain.Descending {
		dir = domain.Ascending
	}
	return &Controller[T]{
		cfg:       cfg,
		source:    []T{},
		sortField: cfg.DefaultSort,
		direction: dir,
		pageIndex: 1,
	}, nil
}

// MustNew is New for static configurations.
func MustNew[T any](cfg Config[T]) *Controller[T] {
	c, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return c
}

// SetSource replaces the source rows wholesale. totalPages is only read in
// server-paged mode; pass 0 otherwise.
func (c *Controller[T]) SetSource(rows []T, totalPages int) {
	c.source = slices.Clone(rows)
	if c.source == nil {
		c.source = []T{}
	}
	c.serverPages = max(totalPages, 0)
	c.serverRows = 0
	c.loaded = true
}

// SetServerTotal records the row count of the whole resource as reported by
// a server-paged provider. Until it is set the view leaves it out.
func (c *Controller[T]) SetServerTotal(total int) {
	c.serverRows = max(total, 0)
}

// SetSourceAt is SetSource guarded by a fetch generation: a result older
// than the last applied one is dropped and false is returned.
func (c *Controller[T]) SetSourceAt(generation uint64, rows []T, totalPages int) bool {
	if c.loaded && generation < c.generation {
		return false
	}
	c.generation = generation
	c.SetSource(rows, totalPages)
	return true
}

// Loaded reports whether a fetch has ever completed.
func (c *Controller[T]) Loaded() bool { return c.loaded }

// Source returns a copy of the last fetched rows.
func (c *Controller[T]) Source() []T { return slices.Clone(c.source) }

// SetSearchTerm sets the filter and returns to page 1.
func (c *Controller[T]) SetSearchTerm(term string) {
	c.searchTerm = term
	c.pageIndex = 1
}

// SearchTerm returns the current filter.
func (c *Controller[T]) SearchTerm() string { return c.searchTerm }

// ToggleSort flips the direction when field is already active, otherwise
// makes field active in ascending order.
func (c *Controller[T]) ToggleSort(field string) error {
	if _, ok := c.cfg.SortFields[field]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSortField, field)
	}
	if field == c.sortField {
		c.direction = c.direction.Flip()
		return nil
	}
	c.sortField = field
	c.direction = domain.Ascending
	return nil
}

// SetSort makes field active with an explicit direction.
func (c *Controller[T]) SetSort(field string, dir domain.SortDirection) error {
	if _, ok := c.cfg.SortFields[field]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSortField, field)
	}
	c.sortField = field
	c.direction = dir
	return nil
}

// SetPageIndex moves to page n, clamped to [1, totalPages].
func (c *Controller[T]) SetPageIndex(n int) {
	c.pageIndex = clampPage(n, c.totalPages())
}

// PageIndex returns the stored (unclamped) page.
func (c *Controller[T]) PageIndex() int { return c.pageIndex }

// Query returns the parameters a server-paged provider must be called with.
func (c *Controller[T]) Query() Query {
	return Query{
		Page:   c.pageIndex,
		Limit:  c.cfg.PageSize,
		Search: strings.TrimSpace(c.searchTerm),
		Sort:   c.sortField,
		Order:  c.direction,
	}
}

// ServerPaged reports the configured pagination strategy.
func (c *Controller[T]) ServerPaged() bool { return c.cfg.ServerPaged }

// Compare orders a and b by a declared sort field.
func (c *Controller[T]) Compare(a, b T, field string, dir domain.SortDirection) (int, error) {
	less, ok := c.cfg.SortFields[field]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSortField, field)
	}
	r := less(a, b)
	switch {
	case r < 0:
		r = -1
	case r > 0:
		r = 1
	}
	if dir == domain.Descending {
		r = -r
	}
	return r, nil
}

// Derive computes the current page. It never mutates the controller.
func (c *Controller[T]) Derive() View[T] {
	var (
		rows       []T
		totalPages int
		totalRows  int
		page       int
	)
	if c.cfg.ServerPaged {
		totalPages = c.serverPages
		totalRows = c.serverRows
		page = clampPage(c.pageIndex, totalPages)
		rows = slices.Clone(c.source)
	} else {
		sorted := c.sorted()
		totalRows = len(sorted)
		totalPages = TotalPages(totalRows, c.cfg.PageSize)
		page = clampPage(c.pageIndex, totalPages)
		rows = Paginate(sorted, page, c.cfg.PageSize)
	}
	if rows == nil {
		rows = []T{}
	}
	return View[T]{
		Rows:       rows,
		PageIndex:  page,
		PageSize:   c.cfg.PageSize,
		TotalPages: totalPages,
		TotalRows:  totalRows,
		SearchTerm: c.searchTerm,
		SortField:  c.sortField,
		Direction:  c.direction,
		Pages:      PageLinks(page, totalPages),
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
}

func (c *Controller[T]) sorted() []T {
	filtered := Filter(c.source, c.searchTerm, c.cfg.SearchFields)
	return Sort(filtered, c.cfg.SortFields[c.sortField], c.direction)
}

func (c *Controller[T]) totalPages() int {
	if c.cfg.ServerPaged {
		if !c.loaded {
			return -1
		}
		return c.serverPages
	}
	return TotalPages(len(c.sorted()), c.cfg.PageSize)
}

// clampPage bounds n to [1, total]; a negative total means "unknown" and
// only the lower bound applies.
func clampPage(n, total int) int {
	if n < 1 {
		n = 1
	}
	if total >= 0 && n > max(total, 1) {
		n = max(total, 1)
	}
	return n
}

package search

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/fekuna/omnipos-storefront/internal/logger"
	"github.com/fekuna/omnipos-storefront/internal/metrics"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"go.uber.org/zap"
)

const DefaultPageSize = 5

// labelNoActive counts page changes attempted before any search was committed.
const labelNoActive = "no_active"

// Querier executes one committed request against the backend and returns the
// page of products plus the total amount matching the filter.
type Querier interface {
	Query(ctx context.Context, req Request) ([]model.Product, int, error)
}

type CategorySource interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
}

// Page is meaningful only while Total > 0, in which case 1 <= Index <= Total.
type Page struct {
	Index int `json:"index"`
	Total int `json:"total"`
}

// ActiveQuery is the last committed query. Page changes are built from it,
// never from the live input.
type ActiveQuery struct {
	Criteria   Criteria `json:"criteria"`
	Request    Request  `json:"request"`
	Generation uint64   `json:"generation"`
}

type State struct {
	Input      Criteria         `json:"input"`
	Active     *ActiveQuery     `json:"active,omitempty"`
	Page       Page             `json:"page"`
	Results    []model.Product  `json:"results"`
	NewlyAdded []model.Product  `json:"newlyAdded,omitempty"`
	Categories []model.Category `json:"categories"`
	Loading    bool             `json:"loading"`
	ErrMsg     string           `json:"error,omitempty"`
	Err        error            `json:"-"`
}

func (s State) clone() State {
	s.Results = slices.Clone(s.Results)
	s.NewlyAdded = slices.Clone(s.NewlyAdded)
	s.Categories = slices.Clone(s.Categories)
	if s.Active != nil {
		active := *s.Active
		s.Active = &active
	}
	return s
}

// Controller owns one result set. Every transition replaces the whole State
// under mu; backend calls run without holding it. Each issued query takes a
// new generation and its response is applied only if no later query was
// issued in the meantime.
//
// There is no timeout beyond the caller's context and the HTTP client's own:
// a call that never returns keeps Loading true.
type Controller struct {
	querier    Querier
	categories CategorySource
	pageSize   int
	logger     logger.ZapLogger
	metrics    *metrics.Metrics

	mu         sync.Mutex
	state      State
	generation uint64
	inFlight   int
}

type Option func(*Controller)

func WithPageSize(size int) Option {
	return func(c *Controller) {
		if size > 0 {
			c.pageSize = size
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Controller) { c.metrics = m }
}

func NewController(q Querier, categories CategorySource, log logger.ZapLogger, opts ...Option) *Controller {
	c := &Controller{
		querier:    q,
		categories: categories,
		pageSize:   DefaultPageSize,
		logger:     log.With(zap.String("component", "search")),
		state:      State{Input: Criteria{Kind: KindName}},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) PageSize() int {
	return c.pageSize
}

// State returns a snapshot that callers may keep or modify freely.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Init loads the category listing once. A failure is reported in the state;
// the controller stays usable without categories.
func (c *Controller) Init(ctx context.Context) State {
	c.mu.Lock()
	c.inFlight++
	c.replace(func(s *State) { s.Loading = true })
	c.mu.Unlock()

	cats, err := c.categories.ListCategories(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight--
	c.replace(func(s *State) {
		s.Loading = c.inFlight > 0
		if err != nil {
			c.logger.Error("failed to load categories", zap.Error(err))
			s.ErrMsg = msgCategoriesFailed
			s.Err = err
			return
		}
		s.Categories = cats
		if s.Input.Kind == KindCategory && s.Input.Value == "" {
			s.Input = ResolveCriteriaForKind(KindCategory, Criteria{}, cats)
		}
	})
	return c.state.clone()
}

// SetInput records what the user is typing. It never triggers a query.
func (c *Controller) SetInput(criteria Criteria) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.replace(func(s *State) { s.Input = criteria })
	return c.state.clone()
}

// SelectKind switches the live input to kind, deriving its default value.
func (c *Controller) SelectKind(kind Kind) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.replace(func(s *State) { s.Input = ResolveCriteriaForKind(kind, s.Input, s.Categories) })
	return c.state.clone()
}

// AddNewlyAdded shows item on top of the current results until the next search.
func (c *Controller) AddNewlyAdded(item model.Product) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.replace(func(s *State) { s.NewlyAdded = append(s.NewlyAdded, item) })
	return c.state.clone()
}

// SubmitSearch validates criteria and queries its first page.
func (c *Controller) SubmitSearch(ctx context.Context, criteria Criteria) State {
	c.mu.Lock()
	c.replace(func(s *State) { s.Input = criteria })

	req, err := BuildRequest(criteria, 1, c.pageSize, c.state.Categories)
	if err != nil {
		c.rejectLocked(kindLabel(criteria.Kind), err)
		defer c.mu.Unlock()
		return c.state.clone()
	}
	gen := c.beginLocked()
	c.mu.Unlock()

	items, amount, err := c.querier.Query(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.finishLocked(gen, req, err) {
		return c.state.clone()
	}

	total := TotalPages(amount, c.pageSize)
	c.replace(func(s *State) {
		s.Active = &ActiveQuery{Criteria: criteria, Request: req, Generation: gen}
		s.Page = Page{Index: clampIndex(1, total), Total: total}
		s.Results = items
		s.NewlyAdded = nil
		s.ErrMsg = ""
		s.Err = nil
	})
	c.logger.Debug("search committed",
		zap.String("kind", string(criteria.Kind)),
		zap.Int("amount", amount),
		zap.Int("total_pages", total),
		zap.Uint64("generation", gen),
	)
	return c.state.clone()
}

// ChangePage queries page newIndex of the active query.
func (c *Controller) ChangePage(ctx context.Context, newIndex int) State {
	c.mu.Lock()
	active := c.state.Active
	if active == nil {
		c.rejectLocked(labelNoActive, &ValidationError{Reason: "no search has been submitted yet"})
		defer c.mu.Unlock()
		return c.state.clone()
	}
	if newIndex < 1 || newIndex > c.state.Page.Total {
		c.rejectLocked(kindLabel(active.Criteria.Kind), &ValidationError{Kind: active.Criteria.Kind, Reason: "page out of range"})
		defer c.mu.Unlock()
		return c.state.clone()
	}

	criteria := active.Criteria
	req := active.Request.WithPage(newIndex)
	gen := c.beginLocked()
	c.mu.Unlock()

	items, amount, err := c.querier.Query(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.finishLocked(gen, req, err) {
		return c.state.clone()
	}

	total := TotalPages(amount, c.pageSize)
	c.replace(func(s *State) {
		s.Active = &ActiveQuery{Criteria: criteria, Request: req, Generation: gen}
		s.Page = Page{Index: clampIndex(newIndex, total), Total: total}
		s.Results = items
		s.ErrMsg = ""
		s.Err = nil
	})
	return c.state.clone()
}

// replace builds the next state from a copy of the current one and swaps it in.
func (c *Controller) replace(fn func(s *State)) {
	next := c.state.clone()
	fn(&next)
	c.state = next
}

func (c *Controller) rejectLocked(label string, err error) {
	c.metrics.ValidationError(label)
	c.replace(func(s *State) {
		s.ErrMsg = err.Error()
		s.Err = err
	})
}

func (c *Controller) beginLocked() uint64 {
	c.generation++
	c.inFlight++
	c.replace(func(s *State) { s.Loading = true })
	return c.generation
}

// finishLocked settles a call and reports whether its result should be applied.
func (c *Controller) finishLocked(gen uint64, req Request, err error) bool {
	c.inFlight--
	c.replace(func(s *State) { s.Loading = c.inFlight > 0 })

	if gen != c.generation {
		c.metrics.StaleResponse()
		c.logger.Debug("discarding stale response",
			zap.Uint64("generation", gen),
			zap.Uint64("current_generation", c.generation),
			zap.Error(ErrStaleResponse),
		)
		return false
	}
	if err != nil {
		qerr := &QueryError{Request: req, Err: err}
		c.logger.Error("search query failed",
			zap.String("kind", string(req.Kind())),
			zap.Int("page", req.Pagination().Page),
			zap.Error(err),
		)
		c.replace(func(s *State) {
			s.ErrMsg = msgQueryFailed
			s.Err = qerr
		})
		return false
	}
	return true
}

// kindLabel is the metrics label of a rejected submission.
func kindLabel(kind Kind) string {
	if !slices.Contains(Kinds, kind) {
		return "invalid"
	}
	return string(kind)
}

func clampIndex(index, total int) int {
	if total == 0 {
		return 0
	}
	return min(max(index, 1), total)
}

// IsValidation reports whether err was raised locally without a network call.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

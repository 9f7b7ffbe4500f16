package filters

import (
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"
)

// Change is a delta against one filter category. Build it with the helper
// constructors below rather than by hand.
type Change struct {
	Category CategoryKey
	Added    []string
	Removed  []string
	// Mode overrides the match mode of an attribute category when set.
	Mode MatchMode
	// Min and Max replace a price bound when non-nil; a pointer to "" clears it.
	Min *Amount
	Max *Amount
}

func AddTerms(slug string, mode MatchMode, terms ...string) Change {
	return Change{Category: AttributeCategory(slug), Added: terms, Mode: mode}
}

func RemoveTerms(slug string, terms ...string) Change {
	return Change{Category: AttributeCategory(slug), Removed: terms}
}

func SetMatchMode(slug string, mode MatchMode) Change {
	return Change{Category: AttributeCategory(slug), Mode: mode}
}

func SetMinPrice(a Amount) Change {
	return Change{Category: PriceCategory, Min: &a}
}

func SetMaxPrice(a Amount) Change {
	return Change{Category: PriceCategory, Max: &a}
}

func SetPriceRange(min, max Amount) Change {
	return Change{Category: PriceCategory, Min: &min, Max: &max}
}

func AddStock(statuses ...StockStatus) Change {
	return Change{Category: StockCategory, Added: stockStrings(statuses)}
}

func RemoveStock(statuses ...StockStatus) Change {
	return Change{Category: StockCategory, Removed: stockStrings(statuses)}
}

func stockStrings(statuses []StockStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func (c Change) validate() error {
	switch c.Category {
	case PriceCategory:
		if len(c.Added) > 0 || len(c.Removed) > 0 || c.Mode != "" {
			return fmt.Errorf("price change only sets bounds")
		}
		for _, a := range []*Amount{c.Min, c.Max} {
			if a != nil && *a != "" {
				if _, err := ParseAmount(string(*a)); err != nil {
					return err
				}
			}
		}
	case StockCategory:
		if c.Mode != "" || c.Min != nil || c.Max != nil {
			return fmt.Errorf("stock change only adds or removes statuses")
		}
		for _, v := range slices.Concat(c.Added, c.Removed) {
			if _, err := ParseStockStatus(v); err != nil {
				return err
			}
		}
	default:
		slug, ok := c.Category.AttributeSlug()
		if !ok || slug == "" || AttributeParam(slug) == ParamStockStatus {
			return fmt.Errorf("invalid filter category %q", c.Category)
		}
		if c.Min != nil || c.Max != nil {
			return fmt.Errorf("attribute change cannot set price bounds")
		}
		if c.Mode != "" {
			if _, err := ParseMatchMode(string(c.Mode)); err != nil {
				return err
			}
		}
		if slices.Contains(slices.Concat(c.Added, c.Removed), "") {
			return fmt.Errorf("empty attribute term")
		}
	}
	return nil
}

// Store holds the committed Selection of one catalog view and the buffer of
// staged changes not yet committed. A Store is owned by a single widget
// instance and is not safe for concurrent use.
type Store struct {
	current Selection
	pending map[CategoryKey]*Change
	order   []CategoryKey

	// Changes staged while a commit is in flight wait here.
	deferred   []Change
	committing bool

	listeners []func(Selection)
	logger    *zap.Logger
}

type StoreOption func(*Store)

// WithInitialSelection seeds the committed selection, typically from the
// current page URL.
func WithInitialSelection(s Selection) StoreOption {
	return func(st *Store) { st.current = s.Clone() }
}

func WithStoreLogger(l *zap.Logger) StoreOption {
	return func(st *Store) { st.logger = l }
}

func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		pending: make(map[CategoryKey]*Change),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnChange registers fn to be called once per successful commit.
func (s *Store) OnChange(fn func(Selection)) {
	s.listeners = append(s.listeners, fn)
}

func (s *Store) Current() Selection {
	return s.current.Clone()
}

func (s *Store) HasPending() bool {
	return len(s.order) > 0
}

// Pending returns the selection that Commit would produce.
func (s *Store) Pending() Selection {
	return s.fold()
}

// Stage merges c into the pending buffer. Current is untouched. Removing a
// value that is not present is a no-op, and staging the same change twice
// has the same effect as staging it once.
func (s *Store) Stage(c Change) error {
	if err := c.validate(); err != nil {
		return fmt.Errorf("stage %s: %w", c.Category, err)
	}
	if s.committing {
		s.deferred = append(s.deferred, c)
		return nil
	}
	s.merge(c)
	return nil
}

// Discard drops every staged change.
func (s *Store) Discard() {
	clear(s.pending)
	s.order = nil
}

// Commit folds the pending buffer into the current selection and returns it.
func (s *Store) Commit() (Selection, error) {
	return s.CommitWith(nil)
}

// CommitWith folds the pending buffer into a candidate selection and calls
// apply with it before making it current. If apply fails the current
// selection and the pending buffer are left as they were. Changes staged
// while apply runs are queued and become the new pending buffer; in that case
// the commit still lands but ErrStaleCommit is returned.
//
// Listeners are notified once per successful commit. A buffer that folds
// back into the current selection commits nothing and notifies nobody.
func (s *Store) CommitWith(apply func(Selection) error) (Selection, error) {
	return s.commitWith(apply, true)
}

// commitWith is CommitWith with a choice of what survives a failed apply:
// keepFailed false drops the failed buffer but still keeps the changes
// queued during apply.
func (s *Store) commitWith(apply func(Selection) error, keepFailed bool) (Selection, error) {
	if s.committing {
		return s.Current(), errors.New("commit already in flight")
	}
	if !s.HasPending() {
		return s.Current(), nil
	}

	next := s.fold()
	if next.Equal(s.current) {
		s.Discard()
		return s.Current(), nil
	}

	s.committing = true
	var err error
	if apply != nil {
		err = apply(next.Clone())
	}
	s.committing = false

	if err != nil {
		if !keepFailed {
			s.Discard()
		}
		s.replayDeferred()
		s.logger.Warn("filter commit rolled back", zap.Error(err))
		return s.Current(), err
	}

	s.current = next
	s.Discard()
	stale := s.replayDeferred()
	s.logger.Debug("filter selection committed", zap.String("query", Encode(next)))
	for _, fn := range s.listeners {
		fn(next.Clone())
	}
	if stale && s.HasPending() {
		return next.Clone(), ErrStaleCommit
	}
	return next.Clone(), nil
}

func (s *Store) replayDeferred() bool {
	if len(s.deferred) == 0 {
		return false
	}
	queued := s.deferred
	s.deferred = nil
	for _, c := range queued {
		s.merge(c)
	}
	return true
}

func (s *Store) merge(c Change) {
	delta, ok := s.pending[c.Category]
	if !ok {
		delta = &Change{Category: c.Category}
	}

	switch c.Category {
	case PriceCategory:
		cur, _ := s.current.Price()
		if c.Min != nil {
			delta.Min = boundDelta(*c.Min, cur.Min)
		}
		if c.Max != nil {
			delta.Max = boundDelta(*c.Max, cur.Max)
		}
	default:
		present, curMode := s.currentValues(c.Category)
		for _, v := range c.Added {
			switch {
			case slices.Contains(delta.Removed, v):
				delta.Removed = without(delta.Removed, v)
			case !slices.Contains(present, v) && !slices.Contains(delta.Added, v):
				delta.Added = append(delta.Added, v)
			}
		}
		for _, v := range c.Removed {
			switch {
			case slices.Contains(delta.Added, v):
				delta.Added = without(delta.Added, v)
			case slices.Contains(present, v) && !slices.Contains(delta.Removed, v):
				delta.Removed = append(delta.Removed, v)
			}
		}
		if c.Mode != "" {
			delta.Mode = c.Mode
			if c.Mode == curMode {
				delta.Mode = ""
			}
		}
	}

	if len(delta.Added) == 0 && len(delta.Removed) == 0 && delta.Mode == "" && delta.Min == nil && delta.Max == nil {
		delete(s.pending, c.Category)
		s.order = without(s.order, c.Category)
		return
	}
	s.pending[c.Category] = delta
	if !slices.Contains(s.order, c.Category) {
		s.order = append(s.order, c.Category)
	}
}

// boundDelta returns nil when the staged bound equals the committed one.
func boundDelta(staged, current Amount) *Amount {
	if staged == current {
		return nil
	}
	return &staged
}

func (s *Store) currentValues(key CategoryKey) ([]string, MatchMode) {
	if key == StockCategory {
		return stockStrings(s.current.stock), ""
	}
	slug, _ := key.AttributeSlug()
	f, ok := s.current.attributes[slug]
	if !ok {
		return nil, DefaultMatchMode
	}
	return f.Terms, f.Mode
}

func (s *Store) fold() Selection {
	next := s.current.Clone()
	for _, key := range s.order {
		delta := s.pending[key]
		switch key {
		case PriceCategory:
			p := next.price
			if delta.Min != nil {
				p.Min = *delta.Min
			}
			if delta.Max != nil {
				p.Max = *delta.Max
			}
			next.setPrice(p)
		case StockCategory:
			values := applyDelta(stockStrings(next.stock), delta)
			statuses := make([]StockStatus, len(values))
			for i, v := range values {
				statuses[i] = StockStatus(v)
			}
			next.setStock(statuses)
		default:
			slug, _ := key.AttributeSlug()
			f, ok := next.attributes[slug]
			mode := f.Mode
			if !ok {
				mode = DefaultMatchMode
			}
			if delta.Mode != "" {
				mode = delta.Mode
			}
			next.setAttribute(slug, mode, applyDelta(f.Terms, delta))
		}
	}
	return next
}

func applyDelta(values []string, delta *Change) []string {
	out := slices.DeleteFunc(slices.Clone(values), func(v string) bool {
		return slices.Contains(delta.Removed, v)
	})
	return append(out, delta.Added...)
}

func without[T comparable](in []T, v T) []T {
	return slices.DeleteFunc(in, func(x T) bool { return x == v })
}

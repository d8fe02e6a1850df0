package listview

import (
	"context"
	"slices"
	"sync"

	"github.com/hance08/bankdash/internal/export"
)

// PageInfo describes the visible window for rendering pager controls.
type PageInfo struct {
	Start   int
	End     int
	Total   int
	Page    int
	Pages   int
	CanPrev bool
	CanNext bool
	HasMore bool
}

// ViewModel binds a loader, the query state and a window for one screen.
// Every screen owns its own ViewModel.
type ViewModel[T any] struct {
	loader   *Loader[T]
	opts     Options[T]
	row      export.RowMapper[T]
	window   Window
	defaults Query

	mu      sync.Mutex
	query   Query
	rev     uint64
	cache   []T
	cacheAt [2]uint64 // loader generation, query revision
	cached  bool
}

func NewViewModel[T any](loader *Loader[T], opts Options[T], row export.RowMapper[T], window Window, defaults Query) *ViewModel[T] {
	if defaults.Category == "" {
		defaults.Category = CategoryAll
	}
	return &ViewModel[T]{
		loader:   loader,
		opts:     opts,
		row:      row,
		window:   window,
		defaults: defaults,
		query:    defaults,
	}
}

func (vm *ViewModel[T]) Loader() *Loader[T] { return vm.loader }

func (vm *ViewModel[T]) Window() Window { return vm.window }

// Load fetches the collection. The window is clamped afterwards on the
// next read.
func (vm *ViewModel[T]) Load(ctx context.Context) error {
	return vm.loader.Load(ctx)
}

func (vm *ViewModel[T]) Refresh(ctx context.Context) error {
	return vm.loader.Refresh(ctx)
}

func (vm *ViewModel[T]) Query() Query {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.query
}

// SetText changes the free-text query. Only the window resets.
func (vm *ViewModel[T]) SetText(text string) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.query.Text == text {
		return
	}
	vm.query.Text = text
	vm.changed()
}

// SetCategory changes the category filter. The rest of the query state
// (free text, sort order and window) returns to its defaults.
func (vm *ViewModel[T]) SetCategory(category string) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if category == "" {
		category = CategoryAll
	}
	if vm.query.Category == category {
		return
	}
	vm.query.Category = category
	vm.query.Text = vm.defaults.Text
	vm.query.Sort = vm.defaults.Sort
	vm.changed()
}

// SetSort changes the ordering and resets the window.
func (vm *ViewModel[T]) SetSort(key SortKey) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.query.Sort == key {
		return
	}
	vm.query.Sort = key
	vm.changed()
}

// ResetQuery restores the default query state.
func (vm *ViewModel[T]) ResetQuery() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.query = vm.defaults
	vm.changed()
}

func (vm *ViewModel[T]) changed() {
	vm.rev++
	vm.window.Reset()
}

// Derived returns the filtered and ordered projection of the loaded
// collection. It is recomputed only when the collection or the query
// changed since the last call.
func (vm *ViewModel[T]) Derived() []T {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return slices.Clone(vm.derivedLocked())
}

func (vm *ViewModel[T]) derivedLocked() []T {
	key := [2]uint64{vm.loader.Generation(), vm.rev}
	if vm.cached && vm.cacheAt == key {
		return vm.cache
	}
	vm.cache = Derive(vm.loader.Items(), vm.query, vm.opts)
	vm.cacheAt = key
	vm.cached = true
	return vm.cache
}

// Visible returns the windowed slice of the derived list.
func (vm *ViewModel[T]) Visible() ([]T, PageInfo) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	derived := vm.derivedLocked()
	total := len(derived)
	start, end := vm.window.Bounds(total)

	info := PageInfo{Start: start, End: end, Total: total, Page: 1, Pages: 1}
	switch w := vm.window.(type) {
	case *Paged:
		info.Page = w.Page()
		info.Pages = w.Pages(total)
		info.CanPrev = w.CanPrev()
		info.CanNext = w.CanNext(total)
	case *Progressive:
		info.HasMore = w.HasMore(total)
	}

	return slices.Clone(derived[start:end]), info
}

// Paged returns the paging window, or nil for a progressive screen.
func (vm *ViewModel[T]) Paged() *Paged {
	p, _ := vm.window.(*Paged)
	return p
}

// Progressive returns the reveal window, or nil for a paged screen.
func (vm *ViewModel[T]) Progressive() *Progressive {
	p, _ := vm.window.(*Progressive)
	return p
}

// Navigate runs fn against the window with the current derived total so
// paging moves stay in range.
func (vm *ViewModel[T]) Navigate(fn func(w Window, total int)) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	fn(vm.window, len(vm.derivedLocked()))
}

// Rows maps the whole derived projection (not just the visible window)
// into export rows.
func (vm *ViewModel[T]) Rows() []export.Row {
	if vm.row == nil {
		return nil
	}
	return export.Rows(vm.Derived(), vm.row)
}

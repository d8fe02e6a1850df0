package listview

import (
	"context"
	"slices"
	"sync"
)

// FetchFunc retrieves the raw collection from the API.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// Compare orders two items like cmp.Compare: negative when a sorts first.
type Compare[T any] func(a, b T) int

// DefaultMessage is shown when a failure carries no message of its own.
const DefaultMessage = "Something went wrong. Please try again."

// Loader holds the most recently fetched collection. Only one fetch runs at
// a time; overlapping Load calls wait for the previous one to settle and
// then fetch again, so the last caller always sees the newest data.
type Loader[T any] struct {
	fetch   FetchFunc[T]
	newest  Compare[T]
	message func(error) string

	fetchMu sync.Mutex

	mu         sync.RWMutex
	items      []T
	loading    bool
	loaded     bool
	err        error
	errMsg     string
	generation uint64
}

// NewLoader builds a loader. newest orders fetched items before they are
// stored; message turns a fetch error into display text.
func NewLoader[T any](fetch FetchFunc[T], newest Compare[T], message func(error) string) *Loader[T] {
	if message == nil {
		message = func(error) string { return DefaultMessage }
	}
	return &Loader[T]{fetch: fetch, newest: newest, message: message}
}

// Load fetches the collection. On failure the previous collection is kept
// and the error message is recorded.
func (l *Loader[T]) Load(ctx context.Context) error {
	l.fetchMu.Lock()
	defer l.fetchMu.Unlock()

	l.setLoading(true)
	items, err := l.fetch(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.loading = false

	if err != nil {
		l.err = err
		l.errMsg = l.message(err)
		if l.errMsg == "" {
			l.errMsg = DefaultMessage
		}
		return err
	}

	sorted := slices.Clone(items)
	if l.newest != nil {
		slices.SortStableFunc(sorted, l.newest)
	}

	l.items = sorted
	l.loaded = true
	l.err = nil
	l.errMsg = ""
	l.generation++
	return nil
}

// Refresh reloads the collection.
func (l *Loader[T]) Refresh(ctx context.Context) error {
	return l.Load(ctx)
}

func (l *Loader[T]) setLoading(v bool) {
	l.mu.Lock()
	l.loading = v
	l.mu.Unlock()
}

// Items returns a copy of the stored collection, newest first.
func (l *Loader[T]) Items() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.items)
}

func (l *Loader[T]) Loading() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loading
}

// Loaded reports whether at least one fetch has succeeded.
func (l *Loader[T]) Loaded() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loaded
}

// Err is the error of the last fetch, nil after a success.
func (l *Loader[T]) Err() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.err
}

// Message is the display text for the last failure, "" after a success.
func (l *Loader[T]) Message() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.errMsg
}

// Generation increases on every successful fetch.
func (l *Loader[T]) Generation() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.generation
}

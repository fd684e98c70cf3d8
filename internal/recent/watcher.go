package recent

import (
	"errors"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a Store when another process rewrites its backing file.
// It watches the file's parent directory so that atomic rename-over-write
// saves are observed as well as in-place writes.
type Watcher struct {
	mu sync.Mutex

	store   *Store
	watcher *fsnotify.Watcher

	// onReload, if set, runs after each successful reload.
	onReload func()

	closed  bool
	closeCh chan struct{}
	doneWg  sync.WaitGroup
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithReloadCallback sets a callback invoked after each reload triggered
// by an external change to the backing file.
func WithReloadCallback(fn func()) WatcherOption {
	return func(w *Watcher) {
		w.onReload = fn
	}
}

// NewWatcher creates a watcher for the store's backing file. The watcher
// begins delivering reloads immediately; call Close to stop it.
func NewWatcher(store *Store, opts ...WatcherOption) (*Watcher, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		store:   store,
		watcher: fsw,
		closeCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	dir := filepath.Dir(store.Path())
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w.doneWg.Add(1)
	go w.processLoop()

	return w, nil
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	err := w.watcher.Close()
	w.doneWg.Wait()
	return err
}

func (w *Watcher) processLoop() {
	defer w.doneWg.Done()

	target := w.store.Path()
	for {
		select {
		case <-w.closeCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !sameFile(event.Name, target) {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			if err := w.store.Reload(); err != nil {
				continue
			}
			if w.onReload != nil {
				w.onReload()
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

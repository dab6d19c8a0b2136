package catalog

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DebounceWindow is how long a file must stay quiet before its change is
// reported. A burst of events for one file yields a single report after the
// last of them.
const DebounceWindow = 100 * time.Millisecond

// Watcher reports level files in a directory that were written, created,
// renamed or removed. Events carries file paths; it is closed after Close.
type Watcher struct {
	watcher *fsnotify.Watcher
	ext     string
	logger  *zap.Logger

	Events  chan string
	Errors  chan error
	fired   chan firing
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher starts watching dirs for changes to files ending in ext.
//
// Precondition: each dir must exist; logger must not be nil.
// Postcondition: Returns a running Watcher or a non-nil error.
func NewWatcher(ext string, logger *zap.Logger, dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		watcher: fw,
		ext:     ext,
		logger:  logger,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		fired:   make(chan firing),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher. It is safe to call more than once.
//
// Postcondition: Events and Errors are closed when Close returns.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	defer close(w.Errors)
	defer close(w.Events)

	pending := make(map[string]*quietTimer)
	defer func() {
		for _, q := range pending {
			q.timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !IsLevelFile(event.Name, w.ext) {
				continue
			}
			w.logger.Debug("level file event", zap.String("path", event.Name), zap.Stringer("op", event.Op))
			if q, ok := pending[event.Name]; ok && q.timer.Stop() {
				q.timer.Reset(DebounceWindow)
				continue
			}
			pending[event.Name] = w.startQuietTimer(event.Name)
		case f := <-w.fired:
			if pending[f.path] != f.q {
				// superseded by a later event
				continue
			}
			delete(pending, f.path)
			select {
			case w.Events <- f.path:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			case <-w.closeCh:
				return
			}
		case <-w.closeCh:
			return
		}
	}
}

// quietTimer waits out the debounce window for one file.
type quietTimer struct {
	timer *time.Timer
}

type firing struct {
	path string
	q    *quietTimer
}

func (w *Watcher) startQuietTimer(path string) *quietTimer {
	q := &quietTimer{}
	q.timer = time.AfterFunc(DebounceWindow, func() {
		select {
		case w.fired <- firing{path: path, q: q}:
		case <-w.closeCh:
		}
	})
	return q
}

package config

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-viewer/engine"
	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 100 * time.Millisecond

// Watcher reloads a config file when it changes and publishes the live tuning.
// Reloads that fail to parse or validate are logged and skipped; the previous tuning stays in effect.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	logger  *slog.Logger

	Tunings chan engine.Tuning
	Errors  chan error

	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// Watch starts watching path. The parent directory is watched so editors that replace the
// file on save are still seen.
//
// Parameters:
//   - path: the config file to watch
//   - logger: destination for reload messages; nil uses slog.Default()
//
// Returns:
//   - *Watcher: the running watcher; call Close when done
//   - error: an error if the directory cannot be watched
func Watch(path string, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher: fw,
		path:    abs,
		logger:  logger.With("component", "config_watcher", "path", abs),
		Tunings: make(chan engine.Tuning, 4),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher and closes its channels. Safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Tunings)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)

	// A burst of writes collapses into one reload after the file goes quiet
	var pending <-chan time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			pending = time.After(reloadDebounce)
		case <-pending:
			pending = nil
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.publishError(err)
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		w.logger.Warn("config reload rejected", "error", err)
		w.publishError(err)
		return
	}
	tuning, err := cfg.Tuning()
	if err != nil {
		w.publishError(err)
		return
	}
	select {
	case w.Tunings <- tuning:
		w.logger.Info("config reloaded")
	case <-w.closeCh:
	}
}

// publishError drops the error when nobody is reading Errors.
func (w *Watcher) publishError(err error) {
	select {
	case w.Errors <- err:
	default:
	}
}

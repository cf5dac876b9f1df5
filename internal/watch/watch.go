// Package watch reports changes to an option-set file so an open picker can
// re-attach to the fresh contents.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 150 * time.Millisecond

// FileWatcher calls OnChange once per burst of writes to one file. The
// parent directory is watched so rename-on-save editors are seen too.
type FileWatcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	onChange func()
	logger   *zap.Logger
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

func New(path string, onChange func(), logger *zap.Logger) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileWatcher{
		watcher:  w,
		path:     abs,
		debounce: defaultDebounce,
		onChange: onChange,
		logger:   logger,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// SetDebounce changes the quiet period. Call before Start.
func (fw *FileWatcher) SetDebounce(d time.Duration) {
	fw.debounce = d
}

// Start begins watching. It does not block.
func (fw *FileWatcher) Start(ctx context.Context) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.running {
		return nil
	}
	if err := fw.watcher.Add(filepath.Dir(fw.path)); err != nil {
		return err
	}
	fw.running = true
	go fw.run(ctx)
	fw.logger.Debug("watching option set", zap.String("path", fw.path))
	return nil
}

// Stop ends the loop and releases the watcher. It is safe to call more than
// once and without Start.
func (fw *FileWatcher) Stop() {
	fw.mu.Lock()
	running := fw.running
	fw.running = false
	fw.mu.Unlock()

	if running {
		close(fw.stopCh)
		<-fw.doneCh
	}
	_ = fw.watcher.Close()
}

func (fw *FileWatcher) run(ctx context.Context) {
	defer close(fw.doneCh)

	timer := time.NewTimer(fw.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-fw.stopCh:
			return
		case ev, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != fw.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(fw.debounce)
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warn("watch error", zap.Error(err))
		case <-timer.C:
			fw.logger.Debug("option set changed", zap.String("path", fw.path))
			if fw.onChange != nil {
				fw.onChange()
			}
		}
	}
}

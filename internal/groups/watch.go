package groups

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/daeuniverse/daed-sub000/internal/scheduler"
)

const DefaultDebounce = 200 * time.Millisecond

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// Watch queues a reload on s whenever the database file or one of its
// journal files changes. Bursts of events within debounce cause a single
// reload. Closing the returned io.Closer stops watching.
func (c *Catalog) Watch(s *scheduler.Scheduler, debounce time.Duration) (io.Closer, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// sqlite replaces and journals its files, so watch the directory.
	if err := watcher.Add(filepath.Dir(c.path)); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	stopCh := make(chan struct{})
	doneCh := make(chan struct{})

	go func() {
		defer close(doneCh)
		var (
			timer  *time.Timer
			timerC <-chan time.Time
		)
		resetTimer := func() {
			if timer == nil {
				timer = time.NewTimer(debounce)
				timerC = timer.C
				return
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(debounce)
			timerC = timer.C
		}

		for {
			select {
			case <-stopCh:
				if timer != nil {
					timer.Stop()
				}
				return
			case <-timerC:
				timerC = nil
				s.ScheduleHighPriorityTask(c.Task())
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Errorf("group database watcher: %v", err)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if c.affects(evt) {
					resetTimer()
				}
			}
		}
	}()

	log.Infof("watching %s", c.path)
	return closerFunc(func() error {
		close(stopCh)
		err := watcher.Close()
		<-doneCh
		return err
	}), nil
}

// affects reports whether evt touches the database or its -wal/-journal files.
func (c *Catalog) affects(evt fsnotify.Event) bool {
	if evt.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	return strings.HasPrefix(filepath.Base(evt.Name), filepath.Base(c.path))
}

package watch

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/idicxi/wishfront/internal/event"
	"github.com/idicxi/wishfront/internal/ws"
)

// Source is one subscribable view of server state. Fetch loads a full
// snapshot and returns a commit closure that publishes it; the closure is
// returned even on error so the failure can be recorded against the
// backing store. Apply folds a push event into the store and reports
// whether a full refresh is needed instead.
type Source interface {
	Topic() string
	Fetch(ctx context.Context) (commit func(), err error)
	Apply(ev event.Event) (refresh bool)
}

// conn is the slice of ws.Channel the watcher consumes.
type conn interface {
	Messages() <-chan []byte
	StatusChanges() <-chan ws.Status
	Close()
}

type dialFunc func(ctx context.Context, url string) conn

type fetchResult struct {
	gen    int
	commit func()
	err    error
}

// Watcher keeps one Source in sync with the server. It owns at most one
// push channel at a time and a single run loop that serializes every
// snapshot commit and event merge, so stores never see interleaved
// writes.
//
// Refreshes fire on activation, on Refresh, on a periodic backstop tick,
// and when a Source asks for one after an event. At most one fetch runs
// at a time; requests arriving mid-fetch coalesce into a single trailing
// fetch. Every fetch carries the generation it was started under, and a
// result from a superseded generation is discarded without committing.
type Watcher struct {
	wsBase   string
	interval time.Duration
	log      *logrus.Logger
	dial     dialFunc

	watchCh   chan Source
	refreshCh chan struct{}
	done      chan struct{}
	closeOnce sync.Once
	inFlight  atomic.Bool
}

// NewWatcher builds a watcher that opens channels under the given
// ws/wss base URL and refreshes at least every interval.
func NewWatcher(wsBase string, interval time.Duration, log *logrus.Logger) *Watcher {
	return &Watcher{
		wsBase:   wsBase,
		interval: interval,
		log:      log,
		dial: func(ctx context.Context, url string) conn {
			return ws.Open(ctx, url)
		},
		watchCh:   make(chan Source),
		refreshCh: make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
}

// Start launches the run loop. Call it once, before Watch.
func (w *Watcher) Start(ctx context.Context) {
	go w.run(ctx)
}

// Watch activates a source: the previous channel is torn down, the
// generation advances, a channel for the new topic opens, and an
// immediate fetch begins. Any fetch still in flight for the previous
// source will complete but never commit.
func (w *Watcher) Watch(src Source) {
	select {
	case w.watchCh <- src:
	case <-w.done:
	}
}

// Refresh requests an immediate fetch. Requests made while a fetch is
// pending collapse into it.
func (w *Watcher) Refresh() {
	select {
	case w.refreshCh <- struct{}{}:
	default:
	}
}

// InFlight reports whether a fetch is currently running.
func (w *Watcher) InFlight() bool {
	return w.inFlight.Load()
}

// Close shuts the watcher down. Idempotent.
func (w *Watcher) Close() {
	w.closeOnce.Do(func() { close(w.done) })
}

func (w *Watcher) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	var (
		src      Source
		ch       conn
		msgs     <-chan []byte
		status   <-chan ws.Status
		gen      int
		inflight bool
		pending  bool
		wasOpen  bool
	)
	results := make(chan fetchResult)

	defer func() {
		if ch != nil {
			ch.Close()
		}
	}()

	startFetch := func() {
		if src == nil {
			return
		}
		if inflight {
			pending = true
			return
		}
		inflight = true
		w.inFlight.Store(true)
		go func(g int, s Source) {
			commit, err := s.Fetch(ctx)
			select {
			case results <- fetchResult{gen: g, commit: commit, err: err}:
			case <-w.done:
			case <-ctx.Done():
			}
		}(gen, src)
	}

	for {
		select {
		case <-w.done:
			return
		case <-ctx.Done():
			return

		case next := <-w.watchCh:
			gen++
			pending = false
			wasOpen = false
			if ch != nil {
				ch.Close()
			}
			src = next
			ch = w.dial(ctx, w.wsBase+"/ws/"+src.Topic())
			msgs = ch.Messages()
			status = ch.StatusChanges()
			startFetch()

		case <-w.refreshCh:
			startFetch()

		case <-ticker.C:
			startFetch()

		case res := <-results:
			inflight = false
			w.inFlight.Store(false)
			if res.gen == gen {
				if res.err != nil {
					w.log.WithError(res.err).Warn("refresh failed")
				}
				if res.commit != nil {
					res.commit()
				}
			}
			if pending {
				pending = false
				startFetch()
			}

		case raw, ok := <-msgs:
			if !ok {
				msgs = nil
				continue
			}
			ev, ok := event.Decode(raw)
			if !ok {
				continue
			}
			if src.Apply(ev) {
				startFetch()
			}

		case s, ok := <-status:
			if !ok {
				status = nil
				continue
			}
			w.log.WithField("status", s.String()).Debug("channel status")
			// Resync after a reconnect; events may have been missed
			// while the connection was down.
			if s == ws.StatusOpen {
				if wasOpen {
					startFetch()
				}
				wasOpen = true
			}
		}
	}
}

package ws

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Status describes the channel's connection state.
type Status int

const (
	// StatusConnecting means a dial attempt is in progress.
	StatusConnecting Status = iota
	// StatusOpen means frames are flowing.
	StatusOpen
	// StatusClosed means the connection is down; a reconnect may follow.
	StatusClosed
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusConnecting:
		return "connecting"
	case StatusOpen:
		return "open"
	case StatusClosed:
		return "closed"
	default:
		return "unknown"
	}
}

const (
	baseBackoff      = 2 * time.Second
	maxBackoff       = 30 * time.Second
	handshakeTimeout = 10 * time.Second
	messageBuffer    = 32
	statusBuffer     = 8
)

// Channel maintains one push-notification connection for a single topic.
//
// Transport failures never surface to the caller as errors: the channel
// reports a Closed status and reconnects with capped exponential backoff
// until Close is called or the context is cancelled. Raw text frames are
// delivered in connection order on Messages; a slow consumer drops frames
// rather than backpressuring the socket (the polling backstop covers any
// gap).
type Channel struct {
	url       string
	messages  chan []byte
	status    chan Status
	done      chan struct{}
	closeOnce sync.Once
	backoff   time.Duration
}

// Open starts a channel for the given ws:// or wss:// URL. It returns
// immediately; connection progress is reported on StatusChanges.
func Open(ctx context.Context, url string) *Channel {
	return open(ctx, url, baseBackoff)
}

func open(ctx context.Context, url string, backoff time.Duration) *Channel {
	c := &Channel{
		url:      url,
		messages: make(chan []byte, messageBuffer),
		status:   make(chan Status, statusBuffer),
		done:     make(chan struct{}),
		backoff:  backoff,
	}
	go c.run(ctx)
	return c
}

// Messages delivers raw frames. The channel is closed once the Channel
// shuts down for good.
func (c *Channel) Messages() <-chan []byte {
	return c.messages
}

// StatusChanges delivers connection state transitions.
func (c *Channel) StatusChanges() <-chan Status {
	return c.status
}

// Close tears the channel down. It is idempotent and safe to call on an
// already-closed channel.
func (c *Channel) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

func (c *Channel) run(ctx context.Context) {
	defer close(c.messages)
	defer close(c.status)

	dialer := &websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	failures := 0

	for {
		if c.stopped(ctx) {
			return
		}

		c.notify(StatusConnecting)
		conn, resp, err := dialer.DialContext(ctx, c.url, nil)
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
		if err != nil {
			c.notify(StatusClosed)
			if !c.wait(ctx, calculateBackoff(failures, c.backoff)) {
				return
			}
			failures++
			continue
		}

		c.notify(StatusOpen)
		failures = 0
		c.readLoop(ctx, conn)
		c.notify(StatusClosed)

		if !c.wait(ctx, calculateBackoff(failures, c.backoff)) {
			return
		}
		failures++
	}
}

// readLoop pumps frames until the connection drops or the channel stops.
func (c *Channel) readLoop(ctx context.Context, conn *websocket.Conn) {
	stop := make(chan struct{})
	defer close(stop)

	// ReadMessage only unblocks when the connection closes underneath it.
	go func() {
		select {
		case <-c.done:
		case <-ctx.Done():
		case <-stop:
		}
		_ = conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		c.deliver(data)
	}
}

func (c *Channel) deliver(data []byte) {
	select {
	case c.messages <- data:
	default:
		// Consumer is behind; drop the frame.
	}
}

func (c *Channel) notify(s Status) {
	select {
	case c.status <- s:
	default:
	}
}

func (c *Channel) stopped(ctx context.Context) bool {
	select {
	case <-c.done:
		return true
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// wait sleeps for d, returning false when the channel should shut down.
func (c *Channel) wait(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-c.done:
		return false
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// calculateBackoff doubles the base interval per consecutive failure,
// capped at maxBackoff.
func calculateBackoff(failures int, baseInterval time.Duration) time.Duration {
	if failures < 0 {
		failures = 0
	}
	backoff := baseInterval
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	if backoff > maxBackoff {
		return maxBackoff
	}
	return backoff
}

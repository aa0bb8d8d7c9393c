// Package pricefeed maintains the live gold-price channel: a WebSocket
// subscription that degrades to fixed-interval polling when the socket
// cannot be established or kept alive.
package pricefeed

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/srilaxmialankar/storefront-golang/internal/models"
	"github.com/srilaxmialankar/storefront-golang/pkg/logx"
)

// Status is the externally visible connection state of the feed.
type Status string

const (
	StatusInitializing Status = "initializing"
	StatusConnecting   Status = "connecting"
	StatusConnected    Status = "connected (real-time)"
	StatusReconnecting Status = "disconnected, reconnecting"
	StatusPolling      Status = "using polling (interval)"
	StatusFailed       Status = "connection failed, switching to polling"
)

// FetchFunc retrieves the full current carat price table. The push channel
// only signals that prices changed; the values always come from this fetch.
type FetchFunc func(ctx context.Context) (models.CaratPriceTable, error)

// UpdateFunc receives every freshly fetched price table.
type UpdateFunc func(table models.CaratPriceTable)

// Options tunes the feed client. Zero values fall back to the production
// defaults (5s connect timeout, 5s reconnect delay, 30s poll interval).
type Options struct {
	ConnectTimeout time.Duration
	ReconnectDelay time.Duration
	PollInterval   time.Duration
}

func (o Options) withDefaults() Options {
	if o.ConnectTimeout <= 0 {
		o.ConnectTimeout = 5 * time.Second
	}
	if o.ReconnectDelay <= 0 {
		o.ReconnectDelay = 5 * time.Second
	}
	if o.PollInterval <= 0 {
		o.PollInterval = 30 * time.Second
	}
	return o
}

// signal is the only message the price channel pushes; it carries no price
// values.
type signal struct {
	Type string `json:"type"`
}

const signalPriceUpdate = "PRICE_UPDATE"

// Client is the live price-feed client.
//
// Lifecycle: Start dials the WebSocket (bounded by the connect timeout) and
// reads update signals, fetching the full table on each. If the socket
// closes unexpectedly the client makes exactly one reconnect attempt after a
// fixed delay; if that attempt fails too, or the initial dial fails, it
// degrades to polling the price endpoint at a fixed interval, with an
// immediate first poll. Polling is the permanent steady state once engaged:
// the client never re-attempts the live channel, and the socket and polling
// loop never run simultaneously. Stop tears down the socket, any pending
// reconnect delay and the polling ticker.
type Client struct {
	url      string
	opts     Options
	fetch    FetchFunc
	onUpdate UpdateFunc
	log      zerolog.Logger

	mu      sync.Mutex
	status  Status
	running bool
	conn    *websocket.Conn
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New creates a feed client for the given WebSocket URL.
func New(url string, fetch FetchFunc, onUpdate UpdateFunc, opts Options) *Client {
	return &Client{
		url:      url,
		opts:     opts.withDefaults(),
		fetch:    fetch,
		onUpdate: onUpdate,
		log:      logx.With("pricefeed"),
		status:   StatusInitializing,
	}
}

// Status returns the current connection status.
func (c *Client) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Start launches the feed in a background goroutine. It first fetches the
// current table once so consumers have prices even before the socket is up.
// Calling Start on a running client is a no-op.
func (c *Client) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return nil
	}
	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.running = true
	c.mu.Unlock()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.refresh(runCtx)
		c.run(runCtx)
	}()

	c.log.Info().Str("url", c.url).Msg("price feed started")
	return nil
}

// Stop tears the feed down: the socket is closed, a pending reconnect delay
// is abandoned and the polling ticker stops. It waits for the background
// goroutine to exit or ctx to expire.
func (c *Client) Stop(ctx context.Context) error {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return nil
	}
	cancel := c.cancel
	conn := c.conn
	c.running = false
	c.cancel = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if conn != nil {
		conn.Close()
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.wg.Wait()
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	c.log.Info().Msg("price feed stopped")
	return nil
}

// Refresh fetches the price table on demand (the UI's "refresh prices"
// button) and publishes it on success.
func (c *Client) Refresh(ctx context.Context) error {
	table, err := c.fetch(ctx)
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	c.onUpdate(table)
	return nil
}

// run owns the socket lifecycle. At most one reconnect is attempted; every
// terminal failure path ends in the polling loop, which only ctx can stop.
func (c *Client) run(ctx context.Context) {
	attemptedReconnect := false

	for ctx.Err() == nil {
		conn, err := c.dial(ctx)
		if err != nil {
			c.log.Warn().Err(err).Msg("websocket connect failed")
			c.setStatus(StatusFailed)
			c.poll(ctx)
			return
		}

		c.setStatus(StatusConnected)
		c.readLoop(ctx, conn)
		if ctx.Err() != nil {
			return
		}

		// Unexpected close. One reconnect attempt, then polling for good.
		if attemptedReconnect {
			c.setStatus(StatusFailed)
			c.poll(ctx)
			return
		}
		attemptedReconnect = true
		c.setStatus(StatusReconnecting)

		select {
		case <-ctx.Done():
			return
		case <-time.After(c.opts.ReconnectDelay):
		}
	}
}

// dial opens the socket, bounded by the connect timeout.
func (c *Client) dial(ctx context.Context) (*websocket.Conn, error) {
	c.setStatus(StatusConnecting)

	dialCtx, cancel := context.WithTimeout(ctx, c.opts.ConnectTimeout)
	defer cancel()

	dialer := websocket.Dialer{HandshakeTimeout: c.opts.ConnectTimeout}
	conn, _, err := dialer.DialContext(dialCtx, c.url, nil)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()
	return conn, nil
}

// readLoop consumes update signals until the socket dies or ctx is
// cancelled. A PRICE_UPDATE signal triggers a full table fetch; anything
// unparseable is logged and skipped.
func (c *Client) readLoop(ctx context.Context, conn *websocket.Conn) {
	defer func() {
		c.mu.Lock()
		c.conn = nil
		c.mu.Unlock()
		conn.Close()
	}()

	// Unblock ReadMessage when ctx is cancelled mid-read.
	readerDone := make(chan struct{})
	defer close(readerDone)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-readerDone:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				c.log.Warn().Err(err).Msg("websocket closed unexpectedly")
			}
			return
		}

		var msg signal
		if err := json.Unmarshal(data, &msg); err != nil {
			c.log.Warn().Err(err).Msg("ignoring malformed feed message")
			continue
		}
		if msg.Type == signalPriceUpdate {
			c.refresh(ctx)
		}
	}
}

// poll is the permanent fallback: an immediate fetch, then one fetch per
// interval until teardown. The live channel is never re-attempted.
func (c *Client) poll(ctx context.Context) {
	c.setStatus(StatusPolling)
	c.log.Info().Dur("interval", c.opts.PollInterval).Msg("degraded to polling")

	c.refresh(ctx)

	ticker := time.NewTicker(c.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.refresh(ctx)
		}
	}
}

// refresh fetches the full table and publishes it. Failures are logged and
// swallowed; the previous table stays in effect. Nothing is published after
// teardown.
func (c *Client) refresh(ctx context.Context) {
	fetchCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	table, err := c.fetch(fetchCtx)
	if err != nil {
		if ctx.Err() == nil {
			c.log.Warn().Err(err).Msg("price table fetch failed")
		}
		return
	}
	if ctx.Err() != nil {
		return
	}
	c.onUpdate(table)
}

func (c *Client) setStatus(status Status) {
	c.mu.Lock()
	changed := c.status != status
	c.status = status
	c.mu.Unlock()

	if changed {
		c.log.Info().Str("status", string(status)).Msg("price feed status")
	}
}

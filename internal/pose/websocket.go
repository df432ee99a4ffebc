package pose

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// DefaultWebSocketPath is where browsers post landmark streams.
const DefaultWebSocketPath = "/pose"

// maxSampleSize caps one incoming message.
const maxSampleSize = 1024

// WebSocketProvider accepts browser connections streaming JSON samples, one
// per text message, e.g. from a MediaPipe page. Samples from all
// connections are merged into one stream.
type WebSocketProvider struct {
	Addr   string
	Path   string
	Logger *log.Logger

	upgrader websocket.Upgrader

	mu       sync.Mutex
	listener net.Listener
	ready    chan struct{}
}

// NewWebSocketProvider creates a provider listening on addr.
func NewWebSocketProvider(addr string, logger *log.Logger) *WebSocketProvider {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &WebSocketProvider{
		Addr:   addr,
		Path:   DefaultWebSocketPath,
		Logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  maxSampleSize,
			WriteBufferSize: maxSampleSize,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		ready: make(chan struct{}),
	}
}

// Ready is closed once the listener is bound.
func (p *WebSocketProvider) Ready() <-chan struct{} {
	return p.ready
}

// ListenAddr returns the bound address, or nil before Ready.
func (p *WebSocketProvider) ListenAddr() net.Addr {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.listener == nil {
		return nil
	}
	return p.listener.Addr()
}

// Run serves until ctx is done.
func (p *WebSocketProvider) Run(ctx context.Context, emit func(Sample)) error {
	ln, err := net.Listen("tcp", p.Addr)
	if err != nil {
		return fmt.Errorf("pose: listen %s: %w", p.Addr, err)
	}
	p.mu.Lock()
	p.listener = ln
	p.mu.Unlock()
	close(p.ready)

	var emitMu sync.Mutex
	serialized := func(s Sample) {
		emitMu.Lock()
		defer emitMu.Unlock()
		emit(s)
	}

	mux := http.NewServeMux()
	mux.HandleFunc(p.Path, func(w http.ResponseWriter, r *http.Request) {
		p.handle(ctx, w, r, serialized)
	})
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		//nolint:errcheck // Best-effort shutdown
		srv.Shutdown(shutdownCtx)
	}()

	p.Logger.Info("pose websocket listening", "addr", ln.Addr().String(), "path", p.Path)
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("pose: serve: %w", err)
	}
	return nil
}

func (p *WebSocketProvider) handle(ctx context.Context, w http.ResponseWriter, r *http.Request, emit func(Sample)) {
	conn, err := p.upgrader.Upgrade(w, r, nil)
	if err != nil {
		p.Logger.Warn("pose websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxSampleSize)

	// Unblock the read loop on shutdown
	stop := context.AfterFunc(ctx, func() {
		//nolint:errcheck // Connection is closing anyway
		conn.Close()
	})
	defer stop()

	p.Logger.Info("pose client connected", "remote", r.RemoteAddr)
	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) && ctx.Err() == nil {
				p.Logger.Warn("pose client read failed", "remote", r.RemoteAddr, "err", err)
			}
			p.Logger.Info("pose client disconnected", "remote", r.RemoteAddr)
			return
		}
		if kind != websocket.TextMessage {
			continue
		}
		ts, err := DecodeSample(data)
		if err != nil {
			p.Logger.Warn("skipping pose sample", "remote", r.RemoteAddr, "err", err)
			continue
		}
		emit(ts.Sample)
	}
}

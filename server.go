package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"i4.energy/across/jdy40gw/jdy40"
)

const (
	// defaultFlushGap is the quiet time that ends a received chunk
	defaultFlushGap = 20 * time.Millisecond
	maxChunk        = 256
)

// Server handles incoming HTTP requests for interacting with the
// configured radio module and fans received payload out to WebSocket
// listeners.
type Server struct {
	Logger *slog.Logger
	Radio  Radio

	mux       *http.ServeMux
	upgrader  websocket.Upgrader
	flushGap  time.Duration
	mu        sync.Mutex
	listeners map[chan []byte]struct{}
	receivers []func([]byte)
}

// NewServer creates a Server for radio. Radio must be safe for
// concurrent use, e.g. a *jdy40.Shared.
func NewServer(radio Radio, logger *slog.Logger) *Server {
	s := &Server{
		Logger:    logger,
		Radio:     radio,
		listeners: make(map[chan []byte]struct{}),
		flushGap:  defaultFlushGap,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}

	s.mux = http.NewServeMux()
	s.mux.HandleFunc("GET /config", s.handleGetConfig)
	s.mux.HandleFunc("POST /config", s.handleSetConfig)
	s.mux.HandleFunc("POST /send", s.handleSend)
	s.mux.HandleFunc("GET /listen", s.handleListen)
	return s
}

// ServeHTTP implements the http.Handler interface for the Server struct
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// OnReceive registers fn to be called with every chunk of received
// payload, in addition to the WebSocket listeners.
func (s *Server) OnReceive(fn func([]byte)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.receivers = append(s.receivers, fn)
}

// Receive reads payload from the radio until ctx is cancelled or the
// radio fails, dispatching it to listeners. Bytes arriving back to back
// are grouped into one chunk; a chunk ends when the radio has been quiet
// for the flush gap or it reaches maxChunk bytes.
func (s *Server) Receive(ctx context.Context) error {
	r := &radioReader{ctx: ctx, radio: s.Radio}
	received := make(chan byte, maxChunk)
	readErr := make(chan error, 1)
	go func() {
		defer close(received)
		var b [1]byte
		for {
			if _, err := r.Read(b[:]); err != nil {
				readErr <- err
				return
			}
			received <- b[0]
		}
	}()

	gap := time.NewTimer(s.flushGap)
	defer gap.Stop()
	for {
		b, ok := <-received
		if !ok {
			break
		}
		chunk := []byte{b}
		gap.Reset(s.flushGap)
	collect:
		for len(chunk) < maxChunk {
			select {
			case b, ok := <-received:
				if !ok {
					break collect
				}
				chunk = append(chunk, b)
				gap.Reset(s.flushGap)
			case <-gap.C:
				break collect
			}
		}
		s.dispatch(chunk)
	}

	if err := <-readErr; !errors.Is(err, io.EOF) {
		s.Logger.Error("Receive loop stopped", "error", err)
		return err
	}
	return nil
}

func (s *Server) dispatch(chunk []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, fn := range s.receivers {
		fn(chunk)
	}
	for ch := range s.listeners {
		select {
		case ch <- chunk:
		default:
			// Listener is not keeping up; drop rather than stall the radio
			s.Logger.Warn("Dropped payload for slow listener", "bytes", len(chunk))
		}
	}
}

func (s *Server) subscribe() chan []byte {
	ch := make(chan []byte, 256)
	s.mu.Lock()
	s.listeners[ch] = struct{}{}
	s.mu.Unlock()
	return ch
}

func (s *Server) unsubscribe(ch chan []byte) {
	s.mu.Lock()
	delete(s.listeners, ch)
	s.mu.Unlock()
}

func (s *Server) sendError(w http.ResponseWriter, message string, statusCode int) {
	if message == "" {
		w.WriteHeader(statusCode)
		return
	}

	type ErrorResponse struct {
		Message string `json:"message"`
	}
	resp := ErrorResponse{Message: message}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) sendJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(v)
}

// handleGetConfig reports the configuration last applied to the module
func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, documentFromConfig(s.Radio.Config()))
}

// handleSetConfig applies a configuration. Omitted fields keep the
// module's current values.
func (s *Server) handleSetConfig(w http.ResponseWriter, r *http.Request) {
	var doc configDocument
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	cfg, err := doc.apply(s.Radio.Config())
	if err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.Radio.ApplyConfig(cfg); err != nil {
		s.Logger.Error("Failed to configure module", "error", err)
		status := http.StatusBadGateway
		if errors.Is(err, jdy40.ErrRead) {
			status = http.StatusGatewayTimeout
		}
		s.sendError(w, err.Error(), status)
		return
	}

	s.Logger.Info("Module configured", "config", cfg.String())
	s.sendJSON(w, documentFromConfig(cfg))
}

// handleSend transmits a payload through the module
func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	type SendRequest struct {
		Payload string `json:"payload"`
		Hex     bool   `json:"hex"`
	}

	var req SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Payload == "" {
		s.sendError(w, "'payload' field is required", http.StatusBadRequest)
		return
	}

	payload, err := decodePayload(req.Payload, req.Hex)
	if err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.Radio.WriteBuffer(payload); err != nil {
		s.Logger.Error("Failed to send payload", "error", err)
		s.sendError(w, err.Error(), http.StatusBadGateway)
		return
	}

	s.Logger.Info("Payload sent", "bytes", len(payload))
	w.WriteHeader(http.StatusOK)
}

// handleListen upgrades to a WebSocket that carries received payload as
// binary messages. Binary or text messages from the client are
// transmitted through the module.
func (s *Server) handleListen(w http.ResponseWriter, r *http.Request) {
	// Subscribe before the handshake completes so nothing received after
	// the client sees the upgrade is missed
	ch := s.subscribe()
	defer s.unsubscribe(ch)

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.Logger.Warn("WebSocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	s.Logger.Info("Listener connected", "remote", r.RemoteAddr)

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if err := s.Radio.WriteBuffer(msg); err != nil {
				s.Logger.Error("Failed to send payload", "error", err)
			}
		}
	}()

	for {
		select {
		case chunk := <-ch:
			if err := conn.WriteMessage(websocket.BinaryMessage, chunk); err != nil {
				s.Logger.Info("Listener disconnected", "remote", r.RemoteAddr, "error", err)
				return
			}
		case <-closed:
			s.Logger.Info("Listener disconnected", "remote", r.RemoteAddr)
			return
		case <-r.Context().Done():
			return
		}
	}
}

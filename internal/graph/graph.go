// Package graph serves a live view of which blocks of the open documents
// reference which definitions.
package graph

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/gorilla/websocket"
	"github.com/tliron/commonlog"

	"github.com/daeuniverse/daed-sub000/internal/cache"
	"github.com/daeuniverse/daed-sub000/internal/symbols"
)

var log = commonlog.GetLogger("dae-lsp.graph")

// Message is sent over WebSocket to update clients.
type Message struct {
	Op    string     `json:"op"` // "init", "document", "remove"
	URI   string     `json:"uri,omitempty"`
	Graph *GraphData `json:"graph,omitempty"`
}

//go:embed static/*
var staticFiles embed.FS

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

var ErrNotFound = errors.New("document not found")

// Viewer serves the graph of every document held by a parse cache.
type Viewer struct {
	cache *cache.Cache

	mu     sync.Mutex
	url    string
	server *http.Server
	cancel context.CancelFunc

	clientsMu sync.Mutex
	clients   map[*websocket.Conn]struct{}
}

func NewViewer(c *cache.Cache) *Viewer {
	return &Viewer{
		cache:   c,
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// Router returns the HTTP handler of the viewer.
func (v *Viewer) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/", v.index)
	r.Get("/api/graph", v.getGraph)
	r.Get("/ws", v.handleWS)
	return r
}

// Start listens on addr (":0" picks a free port) and returns the URL of the
// viewer. Calling Start on a running viewer returns the existing URL.
func (v *Viewer) Start(addr string) (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.server != nil {
		return v.url, nil
	}

	l, err := net.Listen("tcp", addr)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithCancel(context.Background())
	v.cancel = cancel
	v.server = &http.Server{Handler: v.Router()}
	v.url = "http://" + l.Addr().String() + "/"

	go func() {
		if err := v.server.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("graph server: %v", err)
		}
	}()
	go v.forward(v.cache.Subscribe(ctx))

	log.Infof("graph viewer listening on %s", v.url)
	return v.url, nil
}

// Stop shuts the server down and disconnects all clients.
func (v *Viewer) Stop() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.server == nil {
		return nil
	}
	v.cancel()
	err := v.server.Close()
	v.server = nil
	v.url = ""

	v.clientsMu.Lock()
	for conn := range v.clients {
		conn.Close()
		delete(v.clients, conn)
	}
	v.clientsMu.Unlock()
	return err
}

// Snapshot returns the graph of every cached document.
func (v *Viewer) Snapshot() GraphData {
	docs := make(map[string]GraphData)
	v.cache.Range(func(uri string, result symbols.ParseResult) bool {
		docs[uri] = Build(uri, result)
		return true
	})
	return merge(docs)
}

func (v *Viewer) index(w http.ResponseWriter, r *http.Request) {
	page, err := staticFiles.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

// getGraph returns the whole graph, or one document's with ?uri=.
func (v *Viewer) getGraph(w http.ResponseWriter, r *http.Request) {
	uri := r.URL.Query().Get("uri")
	if uri == "" {
		render.JSON(w, r, v.Snapshot())
		return
	}
	result, ok := v.cache.Lookup(uri)
	if !ok {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, render.M{"message": ErrNotFound.Error()})
		return
	}
	render.JSON(w, r, Build(uri, result))
}

// forward turns cache events into messages for connected clients.
func (v *Viewer) forward(events <-chan cache.Event) {
	for event := range events {
		switch event.Type {
		case cache.Parsed:
			result, ok := v.cache.Lookup(event.URI)
			if !ok {
				continue
			}
			data := Build(event.URI, result)
			v.broadcast(Message{Op: "document", URI: event.URI, Graph: &data})
		case cache.Evicted:
			v.broadcast(Message{Op: "remove", URI: event.URI})
		}
	}
}

// broadcast marshals and sends a message to all clients.
func (v *Viewer) broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Errorf("marshal %s message: %v", msg.Op, err)
		return
	}
	v.clientsMu.Lock()
	defer v.clientsMu.Unlock()
	for conn := range v.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Debugf("broadcast: %v", err)
			conn.Close()
			delete(v.clients, conn)
		}
	}
}

// handleWS upgrades HTTP connections and sends the initial graph state.
func (v *Viewer) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Errorf("websocket upgrade: %v", err)
		return
	}

	state := v.Snapshot()
	data, err := json.Marshal(Message{Op: "init", Graph: &state})
	if err != nil {
		log.Errorf("marshal init message: %v", err)
		conn.Close()
		return
	}

	v.clientsMu.Lock()
	err = conn.WriteMessage(websocket.TextMessage, data)
	if err == nil {
		v.clients[conn] = struct{}{}
	}
	v.clientsMu.Unlock()
	if err != nil {
		conn.Close()
		return
	}

	defer func() {
		v.clientsMu.Lock()
		delete(v.clients, conn)
		v.clientsMu.Unlock()
		conn.Close()
	}()

	// keep connection open
	for {
		if _, _, err := conn.NextReader(); err != nil {
			break
		}
	}
}

package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"

	"orbit-and-ore/server/internal/world"
	"orbit-and-ore/server/logging"
	"orbit-and-ore/server/logging/sinks"
	"orbit-and-ore/server/protocol"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

func main() {
	var (
		addr       = flag.String("addr", ":8080", "http listen address")
		configPath = flag.String("config", "", "path to a YAML galaxy config")
		seed       = flag.String("seed", "", "override the world seed")
		logJSON    = flag.String("log-json", "", "append ndjson events to this file")
	)
	flag.Parse()

	router, err := buildRouter(*logJSON)
	if err != nil {
		log.Fatalf("logging setup failed: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		router.Close(ctx)
	}()

	cfg, err := world.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if *seed != "" {
		cfg.Seed = *seed
	}

	w, err := world.New(cfg, world.Deps{Publisher: router})
	if err != nil {
		log.Fatalf("world construction failed: %v", err)
	}
	w.PopulateGalaxy()

	hub := newHub(w, router)

	stop := make(chan struct{})
	go hub.RunSimulation(stop)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(rw http.ResponseWriter, _ *http.Request) {
		rw.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/join", handleJoin(hub))
	mux.HandleFunc("/ws", handleWebsocket(hub))
	mux.HandleFunc("/diagnostics", handleDiagnostics(hub))
	mux.HandleFunc("/schema", handleSchema())

	server := &http.Server{Addr: *addr, Handler: mux}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	go func() {
		<-ctx.Done()
		close(stop)
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		server.Shutdown(shutdownCtx)
	}()

	log.Printf("listening on %s (seed %q, %d stars)", *addr, cfg.Seed, cfg.StarCount)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

func buildRouter(jsonPath string) (*logging.Router, error) {
	cfg := logging.DefaultConfig()
	named := []logging.NamedSink{
		{Name: "console", Sink: sinks.NewConsole(os.Stdout)},
	}
	if jsonPath != "" {
		file, err := os.OpenFile(jsonPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		cfg.EnabledSinks = append(cfg.EnabledSinks, "json")
		named = append(named, logging.NamedSink{Name: "json", Sink: sinks.NewJSON(file, cfg.JSON.FlushInterval)})
	}
	return logging.NewRouter(logging.SystemClock, cfg, named)
}

func handleJoin(hub *Hub) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(rw, "POST required", http.StatusMethodNotAllowed)
			return
		}
		rw.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(rw).Encode(hub.Join()); err != nil {
			log.Printf("join encode failed: %v", err)
		}
	}
}

func handleWebsocket(hub *Hub) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		clientID := r.URL.Query().Get("id")
		if clientID == "" {
			http.Error(rw, "id query parameter required", http.StatusBadRequest)
			return
		}
		compress := r.URL.Query().Get("compress") == "1"

		conn, err := upgrader.Upgrade(rw, r, nil)
		if err != nil {
			log.Printf("websocket upgrade failed: %v", err)
			return
		}
		sub := hub.Subscribe(clientID, conn, compress)
		go readLoop(hub, sub)
	}
}

// readLoop consumes client messages until the connection dies. Commands are
// queued, heartbeats refresh liveness, anything else is ignored.
func readLoop(hub *Hub, sub *subscriber) {
	defer func() {
		hub.Disconnect(sub.id)
		sub.conn.Close()
	}()
	for {
		_, data, err := sub.conn.ReadMessage()
		if err != nil {
			return
		}
		hub.MarkSeen(sub)

		var envelope struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(data, &envelope); err != nil {
			continue
		}
		switch envelope.Type {
		case "command":
			var msg protocol.CommandMessage
			if err := json.Unmarshal(data, &msg); err != nil {
				continue
			}
			hub.EnqueueCommand(sub, msg.Command)
		case "heartbeat":
			// MarkSeen above already did the work.
		}
	}
}

func handleDiagnostics(hub *Hub) http.HandlerFunc {
	return func(rw http.ResponseWriter, _ *http.Request) {
		rw.Header().Set("Content-Type", "application/json")
		json.NewEncoder(rw).Encode(hub.DiagnosticsSnapshot())
	}
}

func handleSchema() http.HandlerFunc {
	schema := protocol.BuildSchema()
	return func(rw http.ResponseWriter, _ *http.Request) {
		rw.Header().Set("Content-Type", "application/json")
		json.NewEncoder(rw).Encode(schema)
	}
}

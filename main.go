package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"gorm.io/gorm"

	"github.com/asmaiqbal85/ai-weather-agent/agents"
	"github.com/asmaiqbal85/ai-weather-agent/bootstrap"
	"github.com/asmaiqbal85/ai-weather-agent/config"
	logcontext "github.com/asmaiqbal85/ai-weather-agent/context"
	"github.com/asmaiqbal85/ai-weather-agent/log"
	"github.com/asmaiqbal85/ai-weather-agent/orm"
)

// historyLimit caps how many stored messages are replayed per turn
const historyLimit = 20

// ChatServer serves the JSON chat endpoint
type ChatServer struct {
	assistant agents.Assistant
	db        *gorm.DB
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type chatResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
}

func (s *ChatServer) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "POST only"})
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "message is required"})
		return
	}

	// Tag the request for log correlation
	requestID := logcontext.NewRequestID()
	ctx := logcontext.WithRequestID(r.Context(), requestID)

	log.Infof(ctx, "Received chat message: %s", req.Message)

	session, err := s.resolveSession(req.SessionID)
	if err != nil {
		log.Errorf(ctx, "Session error: %v", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown session"})
		return
	}

	history, err := orm.History(s.db, session.ID, historyLimit)
	if err != nil {
		log.Errorf(ctx, "History error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "The assistant is unavailable right now."})
		return
	}

	turns := make([]agents.Turn, 0, len(history))
	for _, msg := range history {
		turns = append(turns, agents.Turn{Role: msg.Role, Content: msg.Content})
	}

	reply, err := s.assistant.Reply(ctx, turns, req.Message)
	if err != nil {
		log.Errorf(ctx, "Assistant error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "The assistant is unavailable right now. Please try again."})
		return
	}

	if err := orm.AppendMessage(s.db, session.ID, agents.RoleUser, req.Message); err != nil {
		log.Warnf(ctx, "Failed to store user message: %v", err)
	}
	if err := orm.AppendMessage(s.db, session.ID, agents.RoleModel, reply); err != nil {
		log.Warnf(ctx, "Failed to store reply: %v", err)
	}

	writeJSON(w, http.StatusOK, chatResponse{SessionID: session.ID, Reply: reply})
}

func (s *ChatServer) resolveSession(id string) (*orm.Session, error) {
	if id == "" {
		return orm.CreateSession(s.db)
	}
	return orm.GetSession(s.db, id)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func main() {
	// Initialize logging
	log.Init()

	// .env is optional; real deployments set process env directly
	godotenv.Load()

	// Setup signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info(context.Background(), "Program terminated externally. Exiting...")
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf(context.Background(), "Failed to load config: %v", err)
	}

	app, err := bootstrap.Setup(context.Background(), cfg)
	if err != nil {
		log.Fatalf(context.Background(), "Setup failed: %v", err)
	}

	mux := http.NewServeMux()
	chat := &ChatServer{assistant: app.Assistant, db: app.DB}
	mux.HandleFunc("/chat", chat.handleChat)

	// Simple CORS middleware
	corsHandler := func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}
			h.ServeHTTP(w, r)
		})
	}

	// h2c for HTTP/2 without TLS (dev and internal services)
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: h2c.NewHandler(corsHandler(mux), &http2.Server{}),
	}

	go func() {
		<-ctx.Done()
		log.Info(context.Background(), "Shutting down server...")
		srv.Shutdown(context.Background())
	}()

	log.Infof(context.Background(), "Starting server on port %s", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf(context.Background(), "Server failed: %v", err)
	}
}

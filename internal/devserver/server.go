// Package devserver is a minimal in-memory registration backend for local
// development. It answers the same wire contract the client speaks.
package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/zjrosen/signup/internal/api"
	"github.com/zjrosen/signup/internal/log"
	"github.com/zjrosen/signup/internal/registration"
)

// Config configures the server's behavior.
type Config struct {
	// Latency delays every registration response.
	Latency time.Duration
	// RejectUsernames are always answered with 400.
	RejectUsernames []string
}

// User is a registered account.
type User struct {
	ID        string
	Username  string
	Email     string
	CreatedAt time.Time
}

// ValidationResponse is the 400 body.
type ValidationResponse struct {
	ValidationErrors map[string]string `json:"validationErrors"`
}

// MessageResponse is the 200 body.
type MessageResponse struct {
	Message string `json:"message"`
}

// Server holds registered users in memory.
type Server struct {
	cfg    Config
	reject map[string]struct{}
	now    func() time.Time
	users  *userStore
}

// New creates a server with no users.
func New(cfg Config) *Server {
	reject := make(map[string]struct{}, len(cfg.RejectUsernames))
	for _, name := range cfg.RejectUsernames {
		reject[name] = struct{}{}
	}
	return &Server{
		cfg:    cfg,
		reject: reject,
		now:    time.Now,
		users:  newUserStore(),
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Post(api.UsersPath, s.handleCreateUser)
	return r
}

// Users returns registered users ordered by username.
func (s *Server) Users() []User {
	return s.users.list()
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Latency > 0 {
		select {
		case <-time.After(s.cfg.Latency):
		case <-r.Context().Done():
			return
		}
	}

	var p registration.Payload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, MessageResponse{Message: "Invalid request body"})
		return
	}

	if errs := s.validate(p); len(errs) > 0 {
		log.Warn(log.CatServer, "Registration rejected",
			"request_id", middleware.GetReqID(r.Context()),
			"username", p.Username,
			"errors", len(errs))
		writeJSON(w, http.StatusBadRequest, ValidationResponse{ValidationErrors: errs})
		return
	}

	user := User{
		ID:        uuid.NewString(),
		Username:  p.Username,
		Email:     p.Email,
		CreatedAt: s.now(),
	}
	// Two requests can race past validate; add is the atomic check.
	if err := s.users.add(user); err != nil {
		writeJSON(w, http.StatusBadRequest, ValidationResponse{
			ValidationErrors: map[string]string{"username": "Username in use"},
		})
		return
	}

	log.Info(log.CatServer, "User created", "id", user.ID, "username", user.Username)
	writeJSON(w, http.StatusOK, MessageResponse{Message: "User created"})
}

func (s *Server) validate(p registration.Payload) map[string]string {
	errs := make(map[string]string)
	if p.Username == "" {
		errs["username"] = "Username cannot be null"
	}
	if p.Email == "" {
		errs["email"] = "E-mail cannot be null"
	}
	if p.Password == "" {
		errs["password"] = "Password cannot be null"
	}
	if _, rejected := s.reject[p.Username]; rejected && p.Username != "" {
		errs["username"] = "Username in use"
	}

	if s.users.has(p.Username) {
		errs["username"] = "Username in use"
	}
	return errs
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug(log.CatServer, "Request",
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}

// ListenAndServe serves h on addr until ctx is cancelled, then shuts down
// gracefully.
func ListenAndServe(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(log.CatServer, "Listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving %s: %w", addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	}
}

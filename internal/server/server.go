package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"cue-cards/internal/config"
	"cue-cards/internal/domain"
	"cue-cards/internal/logging"
	"cue-cards/internal/repository"
)

// Response bodies written by the cards handler
const (
	msgInvalidJSON      = "Invalid JSON"
	msgMethodNotAllowed = "Method not allowed"
	msgReadFailed       = "Failed to read cards"
	msgWriteFailed      = "Failed to write cards"
)

// Options tunes the cards handler
type Options struct {
	Path         string
	MaxBodyBytes int64
	WriteTimeout time.Duration
}

// Handler serves the whole card document over a single resource path
type Handler struct {
	store repository.DocumentStore
	opts  Options
}

// New creates the cards handler backed by store
func New(store repository.DocumentStore, opts Options) *Handler {
	if opts.Path == "" {
		opts.Path = "/api/cards"
	}
	return &Handler{store: store, opts: opts}
}

// Routes returns a mux with the cards handler mounted at its path
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(h.opts.Path, h)
	return mux
}

// ServeHTTP implements http.Handler
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.getCards(w, r)
	case http.MethodPost:
		h.postCards(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": msgMethodNotAllowed})
	}
}

func (h *Handler) getCards(w http.ResponseWriter, r *http.Request) {
	body, err := h.store.Read(r.Context())
	if errors.Is(err, repository.ErrNoDocument) {
		writeJSON(w, http.StatusOK, domain.EmptyAppData())
		return
	}
	if err != nil {
		logging.Errorf("read cards: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": msgReadFailed})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func (h *Handler) postCards(w http.ResponseWriter, r *http.Request) {
	reader := io.Reader(r.Body)
	if h.opts.MaxBodyBytes > 0 {
		reader = http.MaxBytesReader(w, r.Body, h.opts.MaxBodyBytes)
	}

	body, err := io.ReadAll(reader)
	if err != nil || !json.Valid(body) {
		logging.Debugf("rejected document: %v\n", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msgInvalidJSON})
		return
	}

	ctx := r.Context()
	if h.opts.WriteTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.opts.WriteTimeout)
		defer cancel()
	}

	if err := h.store.Write(ctx, body); err != nil {
		logging.Errorf("write cards: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": msgWriteFailed})
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Errorf("encode response: %v", err)
	}
}

// OptionsFromConfig builds handler options from configuration
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Path:         cfg.Server.Path,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
		WriteTimeout: cfg.Storage.WriteTimeout,
	}
}

// Run serves the cards endpoint on cfg.Server.Addr until ctx is cancelled
func Run(ctx context.Context, cfg *config.Config, store repository.DocumentStore) error {
	handler := New(store, OptionsFromConfig(cfg))

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      AccessLog(handler.Routes()),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Infof("serving %s on http://%s", cfg.Server.Path, cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logging.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

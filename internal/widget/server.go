package widget

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/logger"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/metrics"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/models"
)

const (
	msgWaterAdded   = "✅ Water added from widget!"
	msgGoalReached  = "🎉 You've reached your water goal!"
	shutdownTimeout = 5 * time.Second
)

// GlassAdder records one glass of water.
type GlassAdder interface {
	AddGlass() (models.WaterStatus, bool, error)
}

// WaterResponse answers POST /water.
type WaterResponse struct {
	Added   bool               `json:"added"`
	Message string             `json:"message"`
	Water   models.WaterStatus `json:"water"`
	Summary Summary            `json:"summary"`
}

// Server exposes the summary, the add-water button and metrics over HTTP.
type Server struct {
	refresher *Refresher
	water     GlassAdder
	router    *mux.Router
	// mu serializes add-water so two taps can't both read the same count.
	mu sync.Mutex
}

func NewServer(refresher *Refresher, water GlassAdder) *Server {
	s := &Server{refresher: refresher, water: water}
	router := mux.NewRouter()
	router.HandleFunc("/summary", s.handleSummary).Methods("GET")
	router.HandleFunc("/water", s.handleAddWater).Methods("POST")
	router.Handle("/metrics", metrics.Handler()).Methods("GET")
	s.router = router
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Debug("Failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	logger.Error("Widget request failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.refresher.Summary()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleAddWater(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	status, added, err := s.water.AddGlass()
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}

	resp := WaterResponse{Added: added, Water: status, Message: msgGoalReached}
	if added {
		metrics.GlassesAdded.Inc()
		resp.Message = msgWaterAdded
		summary, err := s.refresher.Refresh(r.Context())
		if err != nil {
			logger.Warn("Widget surfaces not updated", "error", err)
		}
		resp.Summary = summary
	} else if summary, err := s.refresher.Summary(); err == nil {
		resp.Summary = summary
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListenAndServe serves on addr until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Widget server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

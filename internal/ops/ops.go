// Package ops serves the operational listener: a health probe and the
// runtime profiler. It runs on its own port, separate from the dashboard.
package ops

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"flightdash/ports"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Health is the /healthz payload
type Health struct {
	Status   string    `json:"status"`
	Dataset  string    `json:"dataset"`
	Rows     int       `json:"rows"`
	LoadedAt time.Time `json:"loaded_at"`
	Uptime   string    `json:"uptime"`
}

// NewRouter builds the ops routes over the loaded dataset
func NewRouter(source ports.TableSource, started time.Time) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		table := source.Table()
		h := Health{
			Status:   "ok",
			Dataset:  source.Path(),
			Rows:     table.Len(),
			LoadedAt: source.LoadedAt(),
			Uptime:   time.Since(started).Round(time.Second).String(),
		}
		status := http.StatusOK
		if table == nil {
			h.Status = "no dataset"
			status = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if err := json.NewEncoder(w).Encode(h); err != nil {
			log.Printf("[Ops] healthz encode failed: %v", err)
		}
	})

	r.Mount("/debug", middleware.Profiler())
	return r
}

// Serve runs the ops listener until ctx is canceled
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[Ops] listening on http://%s (healthz, debug/pprof)", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

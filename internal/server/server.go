package server

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/foxsi02/russian-world-game/internal/config"
	"github.com/foxsi02/russian-world-game/internal/game"
	"github.com/foxsi02/russian-world-game/internal/httpmw"
	"github.com/foxsi02/russian-world-game/internal/telemetry"
	"github.com/foxsi02/russian-world-game/internal/ws"
)

type Options struct {
	Config    *config.Config
	Engine    *game.Engine
	Telemetry telemetry.Repository
	Hub       *ws.Hub
	Logger    *log.Logger
}

// NewHandler assembles the full HTTP surface: API routes, health
// endpoints, the admin page and the websocket feed, wrapped in the
// middleware chain.
func NewHandler(opts Options) (http.Handler, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if opts.Engine == nil {
		return nil, errors.New("engine is required")
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "russian-world-game",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if _, err := opts.Engine.Players.Count(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"ok":    false,
				"error": "player storage unavailable",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "russian-world-game",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	app := &App{
		Engine:    opts.Engine,
		Telemetry: opts.Telemetry,
		BootNow:   time.Now(),
	}

	rr := &RouteRegistry{}
	RegisterAPIRoutes(mux, rr, app)
	RegisterAdminUI(mux, rr, opts.Config.Server.Addr)

	if opts.Hub != nil {
		mux.Handle("GET /ws", opts.Hub)
	}

	return httpmw.Chain(
		mux,
		httpmw.WithAccessLog(opts.Logger),
		httpmw.WithRequestID,
		httpmw.WithRecover(opts.Logger),
	), nil
}

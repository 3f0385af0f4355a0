package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/foxsi02/russian-world-game/internal/game"
	"github.com/foxsi02/russian-world-game/internal/property"
	"github.com/foxsi02/russian-world-game/internal/telemetry"
)

// App holds the in-memory state for the server.
// This makes it obvious what the handlers depend on.
type App struct {
	Engine    *game.Engine
	Telemetry telemetry.Repository

	BootNow time.Time
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeResult(w http.ResponseWriter, v any) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "result": v})
}

func writeErr(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]any{"success": false, "error": err.Error()})
}

// statusFor maps engine sentinel errors onto HTTP statuses: unknown ids to
// 404, malformed input to 400, state conflicts and failed preconditions to
// 409, anything else to 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrPlayerNotFound),
		errors.Is(err, game.ErrJobNotFound),
		errors.Is(err, game.ErrStoreNotFound),
		errors.Is(err, game.ErrItemNotFound),
		errors.Is(err, game.ErrCompanyNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrInvalidRole),
		errors.Is(err, game.ErrNegativeExperience),
		errors.Is(err, game.ErrInvalidQuantity),
		errors.Is(err, game.ErrInvalidEvidence),
		errors.Is(err, game.ErrSelfTarget):
		return http.StatusBadRequest
	case errors.Is(err, game.ErrPlayerExists),
		errors.Is(err, game.ErrRoleTaken),
		errors.Is(err, game.ErrNoRole),
		errors.Is(err, game.ErrRoleMismatch),
		errors.Is(err, game.ErrInsufficientEnergy),
		errors.Is(err, game.ErrInsufficientFunds),
		errors.Is(err, game.ErrInsufficientShares),
		errors.Is(err, game.ErrCapitalTooSmall),
		errors.Is(err, game.ErrOnCooldown),
		errors.Is(err, game.ErrArrested),
		errors.Is(err, game.ErrTargetArrested),
		errors.Is(err, game.ErrBonusClaimed),
		errors.Is(err, game.ErrAlreadyFriends):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

func RegisterAPIRoutes(mux *http.ServeMux, rr *RouteRegistry, app *App) {
	engine := app.Engine

	Handle(mux, rr, "players", "POST /api/players", "Register a player", `{"id":1,"name":"Ivan","username":"ivan42"}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ID       int64  `json:"id"`
			Name     string `json:"name"`
			Username string `json:"username"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json body", 400)
			return
		}
		if body.ID == 0 || body.Name == "" {
			http.Error(w, "id and name are required", 400)
			return
		}
		p, err := engine.RegisterPlayer(r.Context(), body.ID, body.Name, body.Username)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeResult(w, p)
	})

	Handle(mux, rr, "players", "GET /api/players/{id}", "Player profile", "", func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			http.Error(w, "invalid player id", 400)
			return
		}
		prof, err := engine.Profile(r.Context(), id)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeResult(w, prof)
	})

	Handle(mux, rr, "players", "POST /api/players/{id}/role", "Choose a role", `{"role":"businessman"}`, func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			http.Error(w, "invalid player id", 400)
			return
		}
		var body struct {
			Role string `json:"role"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json body", 400)
			return
		}
		res, err := engine.ChooseRole(r.Context(), id, body.Role)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeResult(w, res)
	})

	Handle(mux, rr, "jobs", "GET /api/players/{id}/jobs", "Jobs available to the player", "", func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			http.Error(w, "invalid player id", 400)
			return
		}
		jobs, err := engine.AvailableJobs(r.Context(), id)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeResult(w, jobs)
	})

	Handle(mux, rr, "jobs", "POST /api/players/{id}/work", "Work a job", `{"job_id":4}`, func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			http.Error(w, "invalid player id", 400)
			return
		}
		var body struct {
			JobID int `json:"job_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json body", 400)
			return
		}
		res, err := engine.WorkJob(r.Context(), id, body.JobID)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeResult(w, res)
	})

	Handle(mux, rr, "skills", "POST /api/players/{id}/skills", "Add skill experience", `{"skill":"management","exp":1000}`, func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			http.Error(w, "invalid player id", 400)
			return
		}
		var body struct {
			Skill string `json:"skill"`
			Exp   int    `json:"exp"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json body", 400)
			return
		}
		if body.Skill == "" {
			http.Error(w, "skill is required", 400)
			return
		}
		res, err := engine.AddSkillExperience(r.Context(), id, body.Skill, body.Exp)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeResult(w, res)
	})

	Handle(mux, rr, "players", "POST /api/players/{id}/bonus", "Claim the daily bonus", "", func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			http.Error(w, "invalid player id", 400)
			return
		}
		res, err := engine.ClaimDailyBonus(r.Context(), id)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeResult(w, res)
	})

	Handle(mux, rr, "players", "POST /api/players/{id}/friends", "Add a mutual friend", `{"friend_id":2}`, func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			http.Error(w, "invalid player id", 400)
			return
		}
		var body struct {
			FriendID int64 `json:"friend_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json body", 400)
			return
		}
		if err := engine.AddFriend(r.Context(), id, body.FriendID); err != nil {
			writeErr(w, err)
			return
		}
		writeResult(w, map[string]any{"friend_id": body.FriendID})
	})

	Handle(mux, rr, "skills", "GET /api/players/{id}/professions", "Profession progress", "", func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			http.Error(w, "invalid player id", 400)
			return
		}
		res, err := engine.Professions(r.Context(), id)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeResult(w, res)
	})

	Handle(mux, rr, "crimes", "POST /api/crimes/arrest", "Attempt an arrest", `{"police_id":1,"suspect_id":2,"evidence":3}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			PoliceID  int64 `json:"police_id"`
			SuspectID int64 `json:"suspect_id"`
			Evidence  int   `json:"evidence"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json body", 400)
			return
		}
		res, err := engine.Arrest(r.Context(), body.PoliceID, body.SuspectID, body.Evidence)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeResult(w, res)
	})

	Handle(mux, rr, "crimes", "POST /api/crimes/rob", "Attempt a robbery", `{"robber_id":1,"victim_id":2}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			RobberID int64 `json:"robber_id"`
			VictimID int64 `json:"victim_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json body", 400)
			return
		}
		res, err := engine.Rob(r.Context(), body.RobberID, body.VictimID)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeResult(w, res)
	})

	Handle(mux, rr, "economy", "GET /api/stores", "Store catalog", "", func(w http.ResponseWriter, r *http.Request) {
		writeResult(w, property.Stores())
	})

	Handle(mux, rr, "economy", "POST /api/players/{id}/properties", "Buy a property", `{"store_id":"vehicles","item_id":"sedan"}`, func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			http.Error(w, "invalid player id", 400)
			return
		}
		var body struct {
			StoreID string `json:"store_id"`
			ItemID  string `json:"item_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json body", 400)
			return
		}
		res, err := engine.BuyProperty(r.Context(), id, body.StoreID, body.ItemID)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeResult(w, res)
	})

	Handle(mux, rr, "economy", "GET /api/market", "Stock quotes", "", func(w http.ResponseWriter, r *http.Request) {
		companies, err := engine.Market.ListCompanies(r.Context())
		if err != nil {
			writeErr(w, err)
			return
		}
		writeResult(w, companies)
	})

	Handle(mux, rr, "economy", "POST /api/players/{id}/shares/buy", "Buy shares", `{"symbol":"METL","qty":5}`, func(w http.ResponseWriter, r *http.Request) {
		tradeHandler(w, r, engine.BuyShares)
	})

	Handle(mux, rr, "economy", "POST /api/players/{id}/shares/sell", "Sell shares", `{"symbol":"METL","qty":5}`, func(w http.ResponseWriter, r *http.Request) {
		tradeHandler(w, r, engine.SellShares)
	})

	Handle(mux, rr, "economy", "POST /api/players/{id}/corporations", "Found a corporation", `{"name":"Vector","type":"tech","capital":10000}`, func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			http.Error(w, "invalid player id", 400)
			return
		}
		var body struct {
			Name    string `json:"name"`
			Type    string `json:"type"`
			Capital int    `json:"capital"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json body", 400)
			return
		}
		if body.Name == "" {
			http.Error(w, "name is required", 400)
			return
		}
		res, err := engine.CreateCorporation(r.Context(), id, body.Name, body.Type, body.Capital)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeResult(w, res)
	})

	Handle(mux, rr, "economy", "GET /api/corporations", "List corporations", "", func(w http.ResponseWriter, r *http.Request) {
		corps, err := engine.Market.ListCorporations(r.Context())
		if err != nil {
			writeErr(w, err)
			return
		}
		writeResult(w, corps)
	})

	Handle(mux, rr, "world", "GET /api/stats", "World statistics", "", func(w http.ResponseWriter, r *http.Request) {
		stats, err := engine.Statistics(r.Context())
		if err != nil {
			writeErr(w, err)
			return
		}
		writeResult(w, stats)
	})

	Handle(mux, rr, "world", "GET /api/top", "Hall of fame", "", func(w http.ResponseWriter, r *http.Request) {
		limit := 10
		if q := r.URL.Query().Get("limit"); q != "" {
			if n, err := strconv.Atoi(q); err == nil {
				limit = n
			}
		}
		top, err := engine.HallOfFame(r.Context(), limit)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeResult(w, top)
	})

	Handle(mux, rr, "world", "GET /api/events", "Recent game events", "", func(w http.ResponseWriter, r *http.Request) {
		limit := 50
		if q := r.URL.Query().Get("limit"); q != "" {
			if n, err := strconv.Atoi(q); err == nil {
				limit = n
			}
		}
		events, err := app.Telemetry.Recent(limit)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeResult(w, events)
	})

	Handle(mux, rr, "world", "GET /api/config", "Active balance configuration", "", func(w http.ResponseWriter, r *http.Request) {
		writeResult(w, engine.Balance)
	})
}

func tradeHandler(w http.ResponseWriter, r *http.Request, trade func(ctx context.Context, id int64, symbol string, qty int) (game.TradeResult, error)) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid player id", 400)
		return
	}
	var body struct {
		Symbol string `json:"symbol"`
		Qty    int    `json:"qty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid json body", 400)
		return
	}
	res, err := trade(r.Context(), id, body.Symbol, body.Qty)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeResult(w, res)
}

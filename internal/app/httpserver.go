package app

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Spok95/telegram-challenge-bot/internal/aggregate"
	"github.com/Spok95/telegram-challenge-bot/internal/config"
	"github.com/Spok95/telegram-challenge-bot/internal/db"
	"github.com/Spok95/telegram-challenge-bot/internal/metrics"
	"github.com/Spok95/telegram-challenge-bot/internal/models"
)

type HTTPServer struct {
	srv *http.Server
}

func StartHTTP(ctx context.Context, cfg *config.Config, database *sql.DB) *HTTPServer {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 800*time.Millisecond)
		defer cancel()
		t0 := time.Now()
		if err := database.PingContext(ctx); err != nil {
			http.Error(w, "db not ok: "+err.Error(), http.StatusServiceUnavailable)
			return
		}
		metrics.ObserveDBPing(time.Since(t0))
		_, _ = w.Write([]byte("ok"))
	})

	mux.Handle("/metrics", metrics.Handler())

	mux.HandleFunc("GET /api/scoreboard", func(w http.ResponseWriter, r *http.Request) {
		acts, roster, win, ok := boardData(w, r, database, cfg)
		if !ok {
			return
		}
		rows, totals := aggregate.Scoreboard(acts, roster, win)
		writeJSON(w, map[string]any{
			"period": win.String(),
			"rows":   rows,
			"totals": totals,
		})
	})

	mux.HandleFunc("GET /api/leaderboard", func(w http.ResponseWriter, r *http.Request) {
		acts, roster, win, ok := boardData(w, r, database, cfg)
		if !ok {
			return
		}
		writeJSON(w, aggregate.Individuals(acts, roster, win))
	})

	mux.HandleFunc("GET /api/daily", func(w http.ResponseWriter, r *http.Request) {
		acts, roster, win, ok := boardData(w, r, database, cfg)
		if !ok {
			return
		}
		seed, err := db.DailySeed(r.Context(), database)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, aggregate.DailySeries(acts, roster, win, seed))
	})

	mux.HandleFunc("GET /api/activities", func(w http.ResponseWriter, r *http.Request) {
		acts, roster, win, ok := boardData(w, r, database, cfg)
		if !ok {
			return
		}
		writeJSON(w, aggregate.Processed(acts, roster, win))
	})

	// Коррекция дат: {"id1":"2025-11-05", ...}. Валидация формата — в хранилище.
	mux.HandleFunc("POST /api/activities/date", func(w http.ResponseWriter, r *http.Request) {
		var updates map[string]string
		if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
			http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
			return
		}
		if len(updates) == 0 {
			http.Error(w, "empty update", http.StatusBadRequest)
			return
		}
		if err := db.SetDateOverrides(r.Context(), database, updates); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, map[string]int{"updated": len(updates)})
	})

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: mux}

	go func() {
		_ = srv.ListenAndServe() // закрываем аккуратно при Shutdown
	}()

	go func() {
		<-ctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
	}()

	return &HTTPServer{srv: srv}
}

func boardData(w http.ResponseWriter, r *http.Request, database *sql.DB, cfg *config.Config) ([]models.StoredActivity, models.Roster, aggregate.Window, bool) {
	month := cfg.ChallengeMonth
	if m := r.URL.Query().Get("month"); m != "" {
		month = m
	}
	win, err := aggregate.MonthWindow(month)
	if err != nil {
		http.Error(w, "month: "+err.Error(), http.StatusBadRequest)
		return nil, models.Roster{}, aggregate.Window{}, false
	}
	acts, err := db.Activities(r.Context(), database)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, models.Roster{}, aggregate.Window{}, false
	}
	roster, _, err := db.TeamRoster(r.Context(), database)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, models.Roster{}, aggregate.Window{}, false
	}
	return acts, roster, win, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(v)
}

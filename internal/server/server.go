// Package server exposes a small ops HTTP surface next to the bot:
// a health probe and a read-only stats endpoint.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"guildsports-bot/internal/config"
	"guildsports-bot/internal/models"
	"guildsports-bot/internal/store"
)

func New(cfg config.Config, st *store.Store, log *zap.Logger) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := st.Ping(r.Context()); err != nil {
			log.Error("health check", zap.Error(err))
			http.Error(w, "db unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// All-time guild/sport totals as JSON, for dashboards and curiosity.
	mux.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		totals, err := st.GuildSportTotals(store.All)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		type sportRow struct {
			Sport    models.Sport             `json:"sport"`
			Distance map[models.Guild]float64 `json:"distance_km"`
			Entries  map[models.Guild]int64   `json:"entries"`
		}
		rows := make([]sportRow, 0, len(totals))
		for _, t := range totals {
			rows = append(rows, sportRow{Sport: t.Sport, Distance: t.Distance, Entries: t.Entries})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"generated_at": time.Now().UTC().Format(time.RFC3339),
			"totals":       rows,
		})
	})

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: mux,
	}
}

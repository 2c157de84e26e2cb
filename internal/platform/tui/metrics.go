package tui

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vovakirdan/tui-memory/internal/memory"
)

var (
	sshSessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "memory_ssh_sessions_active",
		Help: "Number of connected SSH players",
	})

	gamesCompletedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "memory_games_completed_total",
		Help: "Completed games by whether they set a new best time",
	}, []string{"new_best"})

	gameSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "memory_game_seconds",
		Help:    "Time taken to clear the board",
		Buckets: []float64{15, 30, 45, 60, 90, 120, 180, 300, 600},
	})

	gameMoves = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "memory_game_moves",
		Help:    "Moves taken to clear the board",
		Buckets: prometheus.LinearBuckets(10, 5, 10),
	})
)

// observeResult records a completed game.
func observeResult(r memory.Result) {
	label := "false"
	if r.IsNewBest {
		label = "true"
	}
	gamesCompletedTotal.WithLabelValues(label).Inc()
	gameSeconds.Observe(float64(r.Seconds))
	gameMoves.Observe(float64(r.Moves))
}

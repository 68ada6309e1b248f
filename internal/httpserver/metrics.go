package httpserver

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics is per-Server so tests can build many servers without
// duplicate registration panics.
type metrics struct {
	reg      *prometheus.Registry
	queries  prometheus.Counter
	matches  prometheus.Histogram
	sampled  prometheus.Counter
	guesses  *prometheus.CounterVec
	gamesNew prometheus.Counter
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)
	return &metrics{
		reg: reg,
		queries: f.NewCounter(prometheus.CounterOpts{
			Name: "wordle_helper_eligible_queries_total",
			Help: "Eligibility queries evaluated.",
		}),
		matches: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "wordle_helper_eligible_matches",
			Help:    "Words left per eligibility query.",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000, 5000},
		}),
		sampled: f.NewCounter(prometheus.CounterOpts{
			Name: "wordle_helper_random_words_total",
			Help: "Random words handed out.",
		}),
		guesses: f.NewCounterVec(prometheus.CounterOpts{
			Name: "wordle_helper_game_guesses_total",
			Help: "Practice game guesses by resulting state.",
		}, []string{"state"}),
		gamesNew: f.NewCounter(prometheus.CounterOpts{
			Name: "wordle_helper_games_started_total",
			Help: "Practice games started.",
		}),
	}
}

func (m *metrics) observeEligible(matched int) {
	m.queries.Inc()
	m.matches.Observe(float64(matched))
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

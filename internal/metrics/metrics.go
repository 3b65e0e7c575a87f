package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SyncRuns = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "challengebot", Name: "sync_runs_total", Help: "Completed sync passes",
	})
	SyncErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "challengebot", Name: "sync_errors_total", Help: "Failed sync passes",
	})
	ActivitiesFetched = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "challengebot", Name: "activities_fetched_total", Help: "Raw activities fetched from the club feed",
	})
	ActivitiesStored = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "challengebot", Name: "activities_stored", Help: "Activities in the store after last merge",
	})
	DuplicatesEvicted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "challengebot", Name: "duplicates_evicted_total", Help: "Stale duplicates removed during merge",
	})
	StravaRequestDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "challengebot", Name: "strava_request_seconds", Help: "Strava API request latency",
		Buckets: prometheus.DefBuckets,
	})
	DBPing = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "challengebot", Name: "db_ping_seconds", Help: "DB ping latency",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(
		SyncRuns, SyncErrors,
		ActivitiesFetched, ActivitiesStored, DuplicatesEvicted,
		StravaRequestDuration, DBPing,
	)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveStravaRequest(d time.Duration) { StravaRequestDuration.Observe(d.Seconds()) }

func ObserveDBPing(d time.Duration) { DBPing.Observe(d.Seconds()) }

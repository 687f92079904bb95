package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "store_cache_hits_total",
		Help: "Fetches answered from the in-memory collection within TTL",
	}, []string{"store"})

	CacheMissesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "store_cache_misses_total",
		Help: "Fetches that went to the upstream API",
	}, []string{"store"})

	FetchDedupTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "store_fetch_dedup_total",
		Help: "Concurrent fetches coalesced onto an in-flight request",
	}, []string{"store"})

	FetchFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "store_fetch_failures_total",
		Help: "Fetches that failed and left stale data in place",
	}, []string{"store"})

	MutationRollbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "store_mutation_rollbacks_total",
		Help: "Optimistic mutations rolled back after an API failure",
	}, []string{"store"})

	UpstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_requests_total",
		Help: "HTTP requests issued to the backend API",
	}, []string{"method", "path", "status"})
)

// Package metrics exposes the editor core's Prometheus collectors. The
// terminal-UI and LSP-transport layers are out of scope (spec.md §1), but
// the highlight cache and sandbox still emit counters/histograms any
// embedding process can scrape, following the corpus's own
// prometheus/client_golang usage.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// HighlightCacheHits counts Highlight calls served entirely from the
	// cached span list for a (version, language) pair.
	HighlightCacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "grim_highlight_cache_hits_total",
		Help: "Total number of highlight cache hits.",
	})

	// HighlightCacheMisses counts Highlight calls that required a full
	// reparse.
	HighlightCacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "grim_highlight_cache_misses_total",
		Help: "Total number of highlight cache misses.",
	})

	// HighlightReparseSeconds records wall-clock time spent inside the
	// tree-sitter or fallback parser per reparse.
	HighlightReparseSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "grim_highlight_reparse_seconds",
		Help:    "Duration of highlight cache reparses in seconds.",
		Buckets: prometheus.DefBuckets,
	})

	// SandboxViolations counts script-host resource/capability violations
	// by plugin id, mirroring the sandbox's own Stats.Violations counter
	// in a form a process-wide scrape can aggregate across plugins.
	SandboxViolations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "grim_sandbox_violations_total",
		Help: "Total number of sandbox violations by plugin id and kind.",
	}, []string{"plugin", "kind"})

	// PluginLoadDuration records wall-clock time spent loading a plugin,
	// by kind (script/native) and outcome (ready/failed).
	PluginLoadDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "grim_plugin_load_duration_seconds",
		Help:    "Duration of plugin load attempts in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind", "outcome"})

	// IntegrityVerifications counts lockfile verification runs by result.
	IntegrityVerifications = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "grim_integrity_verifications_total",
		Help: "Total number of package integrity verifications by result.",
	}, []string{"result"})
)

// Registry is the collector registry every editor-core metric is
// registered against. Callers embedding this module wire it into their
// own HTTP /metrics handler (e.g. promhttp.HandlerFor(metrics.Registry, ...)).
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(
		HighlightCacheHits,
		HighlightCacheMisses,
		HighlightReparseSeconds,
		SandboxViolations,
		PluginLoadDuration,
		IntegrityVerifications,
	)
}

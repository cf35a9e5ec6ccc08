/* metrics.go
 * Contains the Prometheus recorder for scoring activity. Every method is safe on a nil *Recorder so components can
 * run without metrics wired in.
 */

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "livescore"

type Recorder struct {
	registry      *prometheus.Registry
	actions       *prometheus.CounterVec
	noops         *prometheus.CounterVec
	undos         *prometheus.CounterVec
	completions   *prometheus.CounterVec
	storeFailures *prometheus.CounterVec
	publishErrors prometheus.Counter
	commands      *prometheus.CounterVec
}

// NewRecorder registers the scoring counters on a private registry
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_applied_total",
			Help:      "Scoring actions that changed a match state.",
		}, []string{"sport", "action"}),
		noops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_ignored_total",
			Help:      "Scoring actions dropped as no-ops.",
		}, []string{"sport", "action"}),
		undos: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "undos_total",
			Help:      "Undo requests that reverted a change.",
		}, []string{"sport"}),
		completions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_completed_total",
			Help:      "Matches finalized with a result.",
		}, []string{"sport"}),
		storeFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_failures_total",
			Help:      "Lifecycle store writes that failed.",
		}, []string{"operation"}),
		publishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_failures_total",
			Help:      "Score updates that could not be published.",
		}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bot_commands_total",
			Help:      "Bot commands handled, by outcome.",
		}, []string{"command", "outcome"}),
	}
	reg.MustRegister(
		r.actions, r.noops, r.undos, r.completions, r.storeFailures, r.publishErrors, r.commands,
		collectors.NewGoCollector(),
	)
	return r
}

func (r *Recorder) RecordAction(sport, action string, changed bool) {
	if r == nil {
		return
	}
	if changed {
		r.actions.WithLabelValues(sport, action).Inc()
		return
	}
	r.noops.WithLabelValues(sport, action).Inc()
}

func (r *Recorder) RecordUndo(sport string) {
	if r == nil {
		return
	}
	r.undos.WithLabelValues(sport).Inc()
}

func (r *Recorder) RecordCompletion(sport string) {
	if r == nil {
		return
	}
	r.completions.WithLabelValues(sport).Inc()
}

func (r *Recorder) RecordStoreFailure(operation string) {
	if r == nil {
		return
	}
	r.storeFailures.WithLabelValues(operation).Inc()
}

func (r *Recorder) RecordPublishFailure() {
	if r == nil {
		return
	}
	r.publishErrors.Inc()
}

// Bot command outcomes
const (
	CommandOK          = "ok"
	CommandError       = "error"
	CommandRateLimited = "rate_limited"
)

// RecordCommand counts a bot command. outcome is one of the Command* values.
func (r *Recorder) RecordCommand(command, outcome string) {
	if r == nil {
		return
	}
	r.commands.WithLabelValues(command, outcome).Inc()
}

// Handler serves the registry in the Prometheus text format
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests and extra collectors
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

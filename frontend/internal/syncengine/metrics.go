package syncengine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var outcomesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "collabhub_sync_outcomes_total",
		Help: "Dispatched intents by intent, strategy and result",
	},
	[]string{"intent", "strategy", "result"},
)

func observe(o Outcome) {
	result := "ok"
	if o.Err != nil {
		result = "failed"
	}
	outcomesTotal.WithLabelValues(o.Intent, o.Strategy.String(), result).Inc()
}

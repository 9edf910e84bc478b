package chart

import metrics "github.com/rcrowley/go-metrics"

var (
	reconcileTimer = metrics.NewRegisteredTimer("reconcile.ns", metrics.DefaultRegistry)
	sortTimer      = metrics.NewRegisteredTimer("sort.ns", metrics.DefaultRegistry)

	chartsPlayed    = metrics.NewRegisteredCounter("reconcile.charts.played", metrics.DefaultRegistry)
	chartsNoPlay    = metrics.NewRegisteredCounter("reconcile.charts.noplay", metrics.DefaultRegistry)
	scoresUnmatched = metrics.NewRegisteredCounter("reconcile.scores.unmatched", metrics.DefaultRegistry)
)

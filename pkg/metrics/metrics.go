package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline outcome counters. Labels carry the branch that produced the
// result so fallback rates are visible without log scraping.
var (
	InsightGenerations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "collabsphere",
		Subsystem: "insights",
		Name:      "generations_total",
		Help:      "Insight pipeline runs by result source",
	}, []string{"source"})

	PlanGenerations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "collabsphere",
		Subsystem: "plans",
		Name:      "generations_total",
		Help:      "Project plan generations by generator",
	}, []string{"generator"})

	SpeechSegments = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "collabsphere",
		Subsystem: "speech",
		Name:      "segments_total",
		Help:      "Speech segments by outcome (played, skipped, cancelled)",
	}, []string{"outcome"})

	TTSRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "collabsphere",
		Subsystem: "speech",
		Name:      "tts_requests_total",
		Help:      "Hosted TTS requests by status (ok, error, quota)",
	}, []string{"status"})
)

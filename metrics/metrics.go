package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var rateBuckets = []float64{0, 0.02, 0.05, 0.1, 0.15, 0.2, 0.3, 0.5, 0.75, 1.0, 1.5}

var (
	ScoresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tigerscore_scores_total",
		Help: "Reference/hypothesis pairs scored",
	})

	EmptyReference = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tigerscore_empty_reference_total",
		Help: "Pairs rejected because the reference normalized to nothing",
	})

	WER = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tigerscore_wer",
		Help:    "Word error rate per scored pair",
		Buckets: rateBuckets,
	})

	CER = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tigerscore_cer",
		Help:    "Character error rate per scored pair",
		Buckets: rateBuckets,
	})

	ScoreDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tigerscore_score_duration_seconds",
		Help:    "Time to normalize and align one pair",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
	})

	TranscribeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tigerscore_transcribe_duration_seconds",
		Help:    "Speech-to-text latency per service",
		Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120, 300},
	}, []string{"service"})

	TranscribeErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tigerscore_transcribe_errors_total",
		Help: "Failed speech-to-text runs per service",
	}, []string{"service"})
)

package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FilterDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stance_filter_dropped_total",
		Help: "The total number of training messages dropped by the filter",
	}, []string{"reason"})

	FitDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "stance_fit_duration_seconds",
		Help:    "Duration of classifier fitting, including hyperparameter search",
		Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600, 1800},
	}, []string{"classifier"})

	PredictDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "stance_predict_duration_seconds",
		Help:    "Duration of classifier prediction over the evaluation set",
		Buckets: prometheus.DefBuckets,
	}, []string{"classifier"})

	CVMeanAccuracy = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "stance_cv_mean_accuracy",
		Help: "Mean held-out accuracy of the selected configuration",
	}, []string{"classifier"})

	SearchCandidatesEvaluated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stance_search_candidates_total",
		Help: "The total number of hyperparameter candidates evaluated",
	}, []string{"classifier"})

	EnsembleAccuracy = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "stance_ensemble_accuracy",
		Help: "Evaluation accuracy of each ensemble combination strategy",
	}, []string{"strategy"})
)

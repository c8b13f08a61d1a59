package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	resumeUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "applicant_portal",
		Name:      "resume_uploads_total",
		Help:      "Resume uploads by outcome.",
	}, []string{"result"})

	submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "applicant_portal",
		Name:      "submissions_total",
		Help:      "Application submissions by outcome.",
	}, []string{"result"})

	collaboratorFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "applicant_portal",
		Name:      "collaborator_failures_total",
		Help:      "Failures of the extraction, validation and indexing collaborators.",
	}, []string{"collaborator"})

	matchingScores = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "applicant_portal",
		Name:      "matching_score",
		Help:      "Matching scores of submitted applications.",
		Buckets:   prometheus.LinearBuckets(10, 10, 10),
	})
)

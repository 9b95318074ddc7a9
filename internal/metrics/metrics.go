package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ImageUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kackar_image_uploads_total",
		Help: "Image uploads by outcome (accepted, rejected, failed).",
	}, []string{"outcome"})

	DerivativesGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kackar_image_derivatives_generated_total",
		Help: "Derivative files generated, by profile.",
	}, []string{"profile"})

	ContactSubmissions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kackar_contact_submissions_total",
		Help: "Contact form submissions accepted.",
	})
)

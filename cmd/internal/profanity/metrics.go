package profanity

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"quill/cmd/internal/fault"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quill",
		Subsystem: "profanity",
		Name:      "requests_total",
		Help:      "Classification calls by final outcome, after retries.",
	}, []string{"outcome"})

	retriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "quill",
		Subsystem: "profanity",
		Name:      "retries_total",
		Help:      "Individual retried attempts against the classification service.",
	})
)

func outcomeLabel(err error) string {
	switch {
	case errors.Is(err, fault.ErrClient):
		return "client_error"
	case errors.Is(err, fault.ErrServer):
		return "server_error"
	case errors.Is(err, fault.ErrTransport):
		return "transport_error"
	default:
		return "error"
	}
}

package nats

import (
	"context"
	"errors"

	"github.com/nats-io/nats.go"

	"github.com/mkowalczyk/zus-accident-assistant/internal/infrastructure/resilience"
)

// retryableConnErrors are transient connection states worth another
// publish attempt once the connection recovers.
var retryableConnErrors = []error{
	nats.ErrNoServers,
	nats.ErrTimeout,
	nats.ErrConnectionClosed,
	nats.ErrDisconnected,
}

func classifyNATSError(err error) resilience.ErrorClassification {
	switch {
	case err == nil:
		return resilience.ErrorClassification{}
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		// The caller gave up; neither retry nor count against the breaker.
		return resilience.ErrorClassification{}
	case resilience.IsCircuitOpen(err), isRetryableConnError(err):
		return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
	default:
		return resilience.ErrorClassification{RecordFailure: true}
	}
}

func isRetryableConnError(err error) bool {
	for _, target := range retryableConnErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

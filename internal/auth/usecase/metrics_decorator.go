package usecase

import (
	"context"
	"time"

	authDomain "github.com/loomchat/chatvault/internal/auth/domain"
	"github.com/loomchat/chatvault/internal/metrics"
)

// clientUseCaseWithMetrics decorates ClientUseCase with metrics instrumentation.
type clientUseCaseWithMetrics struct {
	next    ClientUseCase
	metrics metrics.BusinessMetrics
}

// NewClientUseCaseWithMetrics wraps a ClientUseCase with metrics recording.
func NewClientUseCaseWithMetrics(useCase ClientUseCase, m metrics.BusinessMetrics) ClientUseCase {
	return &clientUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// CreateClient records metrics for client creation operations.
func (c *clientUseCaseWithMetrics) CreateClient(
	ctx context.Context,
	name string,
) (*authDomain.CreateClientOutput, error) {
	start := time.Now()
	output, err := c.next.CreateClient(ctx, name)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "auth", "client_create", status)
	c.metrics.RecordDuration(ctx, "auth", "client_create", time.Since(start), status)

	return output, err
}

// Authenticate records metrics for authentication operations.
func (c *clientUseCaseWithMetrics) Authenticate(
	ctx context.Context,
	token string,
) (*authDomain.Client, error) {
	start := time.Now()
	client, err := c.next.Authenticate(ctx, token)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "auth", "authenticate", status)
	c.metrics.RecordDuration(ctx, "auth", "authenticate", time.Since(start), status)

	return client, err
}

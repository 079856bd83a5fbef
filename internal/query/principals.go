package query

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/multierr"
)

// DeletePrincipal removes every scope and role assignment held by the
// principal, across all resources. The two sweeps run concurrently;
// failures are reported and the operation is idempotent and re-runnable.
func (e *engine) DeletePrincipal(ctx context.Context, principalID string) error {
	ctx, span := e.tracer.Start(ctx, "engine.DeletePrincipal", trace.WithAttributes(
		attribute.String("principal", principalID),
	))
	defer span.End()

	principal, err := e.validPrincipal(principalID)
	if err != nil {
		return spanFail(span, err)
	}

	var (
		wg        sync.WaitGroup
		scopesErr error
		rolesErr  error
	)

	wg.Add(2)

	go func() {
		defer wg.Done()

		scopesErr = e.deleteScopeAssignmentsByPrincipal(ctx, principal)
	}()

	go func() {
		defer wg.Done()

		rolesErr = e.deleteRoleAssignmentsByPrincipal(ctx, principal)
	}()

	wg.Wait()

	if err := multierr.Combine(scopesErr, rolesErr); err != nil {
		e.logger.Errorw("principal cascade incomplete; reissue the delete", "principal", principal, "error", err)

		return spanFail(span, err)
	}

	return nil
}

package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

func (r *Router) principalDelete(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "api.principalDelete", trace.WithAttributes(
		attribute.String("principal", c.QueryParam("id")),
	))
	defer span.End()

	principal, err := queryParam(c, "id")
	if err != nil {
		return r.errorResponse("error deleting principal", err)
	}

	if err := r.engine.DeletePrincipal(ctx, principal); err != nil {
		return r.errorResponse("error deleting principal", err)
	}

	return c.JSON(http.StatusOK, deleteResponse{Success: true})
}

func (r *Router) principalAccessGet(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "api.principalAccessGet", trace.WithAttributes(
		attribute.String("principal", c.QueryParam("id")),
		attribute.String("resource", c.QueryParam("resource")),
		attribute.String("scope", c.QueryParam("scope")),
	))
	defer span.End()

	principal, err := queryParam(c, "id")
	if err != nil {
		return r.errorResponse("error getting principal access", err)
	}

	resource, err := queryParam(c, "resource")
	if err != nil {
		return r.errorResponse("error getting principal access", err)
	}

	scope := c.QueryParam("scope")

	if scope == "" {
		accessResult, err := r.engine.GetPrincipalAccess(ctx, principal, resource)
		if err != nil {
			return r.errorResponse("error getting principal access", err)
		}

		return c.JSON(http.StatusOK, accessResponse{
			Principal: accessResult.PrincipalID,
			Resource:  accessResult.ResourceName,
			Scopes:    accessResult.ScopeNames,
			Roles:     accessResult.RoleNames,
		})
	}

	accessResult, err := r.engine.GetPrincipalScopedAccess(ctx, principal, resource, scope)
	if err != nil {
		return r.errorResponse("error getting principal access", err)
	}

	return c.JSON(http.StatusOK, accessResponse{
		Principal: accessResult.PrincipalID,
		Resource:  accessResult.ResourceName,
		Scopes:    accessResult.ScopeNames,
		Roles:     accessResult.RoleNames,
	})
}

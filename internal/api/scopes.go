package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

func (r *Router) scopeCreate(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "api.scopeCreate")
	defer span.End()

	var reqBody createScopeRequest

	if err := c.Bind(&reqBody); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "error parsing request body").SetInternal(err)
	}

	span.SetAttributes(
		attribute.String("resource", reqBody.Resource),
		attribute.String("scope", reqBody.Name),
	)

	scope, err := r.engine.CreateScope(ctx, reqBody.Resource, reqBody.Name)
	if err != nil {
		return r.errorResponse("error creating scope", err)
	}

	resp := scopeResponse{
		Resource: scope.ResourceName,
		Name:     scope.Name,
	}

	return c.JSON(http.StatusCreated, resp)
}

func (r *Router) scopeGet(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "api.scopeGet", trace.WithAttributes(
		attribute.String("resource", c.QueryParam("resource")),
		attribute.String("scope", c.QueryParam("name")),
	))
	defer span.End()

	resource, err := queryParam(c, "resource")
	if err != nil {
		return r.errorResponse("error getting scope", err)
	}

	name, err := queryParam(c, "name")
	if err != nil {
		return r.errorResponse("error getting scope", err)
	}

	scope, err := r.engine.GetScope(ctx, resource, name)
	if err != nil {
		return r.errorResponse("error getting scope", err)
	}

	resp := scopeResponse{
		Resource: scope.ResourceName,
		Name:     scope.Name,
	}

	return c.JSON(http.StatusOK, resp)
}

func (r *Router) scopeDelete(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "api.scopeDelete", trace.WithAttributes(
		attribute.String("resource", c.QueryParam("resource")),
		attribute.String("scope", c.QueryParam("name")),
	))
	defer span.End()

	resource, err := queryParam(c, "resource")
	if err != nil {
		return r.errorResponse("error deleting scope", err)
	}

	name, err := queryParam(c, "name")
	if err != nil {
		return r.errorResponse("error deleting scope", err)
	}

	if err := r.engine.DeleteScope(ctx, resource, name); err != nil {
		return r.errorResponse("error deleting scope", err)
	}

	return c.JSON(http.StatusOK, deleteResponse{Success: true})
}

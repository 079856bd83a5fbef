package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

func (r *Router) roleCreate(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "api.roleCreate")
	defer span.End()

	var reqBody createRoleRequest

	if err := c.Bind(&reqBody); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "error parsing request body").SetInternal(err)
	}

	span.SetAttributes(
		attribute.String("resource", reqBody.Resource),
		attribute.String("role", reqBody.Name),
	)

	role, err := r.engine.CreateRole(ctx, reqBody.Resource, reqBody.Name)
	if err != nil {
		return r.errorResponse("error creating role", err)
	}

	resp := roleResponse{
		Resource: role.ResourceName,
		Name:     role.Name,
	}

	return c.JSON(http.StatusCreated, resp)
}

func (r *Router) roleGet(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "api.roleGet", trace.WithAttributes(
		attribute.String("resource", c.QueryParam("resource")),
		attribute.String("role", c.QueryParam("name")),
	))
	defer span.End()

	resource, err := queryParam(c, "resource")
	if err != nil {
		return r.errorResponse("error getting role", err)
	}

	name, err := queryParam(c, "name")
	if err != nil {
		return r.errorResponse("error getting role", err)
	}

	role, err := r.engine.GetRole(ctx, resource, name)
	if err != nil {
		return r.errorResponse("error getting role", err)
	}

	resp := roleResponse{
		Resource: role.ResourceName,
		Name:     role.Name,
	}

	return c.JSON(http.StatusOK, resp)
}

func (r *Router) roleDelete(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "api.roleDelete", trace.WithAttributes(
		attribute.String("resource", c.QueryParam("resource")),
		attribute.String("role", c.QueryParam("name")),
	))
	defer span.End()

	resource, err := queryParam(c, "resource")
	if err != nil {
		return r.errorResponse("error deleting role", err)
	}

	name, err := queryParam(c, "name")
	if err != nil {
		return r.errorResponse("error deleting role", err)
	}

	if err := r.engine.DeleteRole(ctx, resource, name); err != nil {
		return r.errorResponse("error deleting role", err)
	}

	return c.JSON(http.StatusOK, deleteResponse{Success: true})
}

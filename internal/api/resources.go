package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

func (r *Router) resourceCreate(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "api.resourceCreate")
	defer span.End()

	var reqBody createResourceRequest

	if err := c.Bind(&reqBody); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "error parsing request body").SetInternal(err)
	}

	span.SetAttributes(attribute.String("resource", reqBody.Name))

	resource, err := r.engine.CreateResource(ctx, reqBody.Name)
	if err != nil {
		return r.errorResponse("error creating resource", err)
	}

	resp := resourceResponse{
		Name:   resource.Name,
		Scopes: resource.ScopeNames,
		Roles:  resource.RoleNames,
	}

	return c.JSON(http.StatusCreated, resp)
}

func (r *Router) resourceGet(c echo.Context) error {
	name := c.QueryParam("name")

	ctx, span := tracer.Start(c.Request().Context(), "api.resourceGet", trace.WithAttributes(attribute.String("resource", name)))
	defer span.End()

	name, err := queryParam(c, "name")
	if err != nil {
		return r.errorResponse("error getting resource", err)
	}

	resource, err := r.engine.GetResource(ctx, name)
	if err != nil {
		return r.errorResponse("error getting resource", err)
	}

	resp := resourceResponse{
		Name:   resource.Name,
		Scopes: resource.ScopeNames,
		Roles:  resource.RoleNames,
	}

	return c.JSON(http.StatusOK, resp)
}

func (r *Router) resourceDelete(c echo.Context) error {
	name := c.QueryParam("name")

	ctx, span := tracer.Start(c.Request().Context(), "api.resourceDelete", trace.WithAttributes(attribute.String("resource", name)))
	defer span.End()

	name, err := queryParam(c, "name")
	if err != nil {
		return r.errorResponse("error deleting resource", err)
	}

	if err := r.engine.DeleteResource(ctx, name); err != nil {
		return r.errorResponse("error deleting resource", err)
	}

	return c.JSON(http.StatusOK, deleteResponse{Success: true})
}

package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

func (r *Router) scopeAssignmentCreate(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "api.scopeAssignmentCreate")
	defer span.End()

	var reqBody createScopeAssignmentRequest

	if err := c.Bind(&reqBody); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "error parsing request body").SetInternal(err)
	}

	span.SetAttributes(
		attribute.String("resource", reqBody.Resource),
		attribute.String("scope", reqBody.Scope),
		attribute.String("principal", reqBody.Principal),
	)

	assignment, err := r.engine.CreateScopeAssignment(ctx, reqBody.Resource, reqBody.Scope, reqBody.Principal)
	if err != nil {
		return r.errorResponse("error creating scope assignment", err)
	}

	resp := scopeAssignmentResponse{
		Resource:  assignment.ResourceName,
		Scope:     assignment.ScopeName,
		Principal: assignment.PrincipalID,
	}

	return c.JSON(http.StatusCreated, resp)
}

func (r *Router) scopeAssignmentDelete(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "api.scopeAssignmentDelete", trace.WithAttributes(
		attribute.String("resource", c.QueryParam("resource")),
		attribute.String("scope", c.QueryParam("scope")),
		attribute.String("principal", c.QueryParam("principal")),
	))
	defer span.End()

	resource, err := queryParam(c, "resource")
	if err != nil {
		return r.errorResponse("error deleting scope assignment", err)
	}

	scope, err := queryParam(c, "scope")
	if err != nil {
		return r.errorResponse("error deleting scope assignment", err)
	}

	principal, err := queryParam(c, "principal")
	if err != nil {
		return r.errorResponse("error deleting scope assignment", err)
	}

	if err := r.engine.DeleteScopeAssignment(ctx, resource, scope, principal); err != nil {
		return r.errorResponse("error deleting scope assignment", err)
	}

	return c.JSON(http.StatusOK, deleteResponse{Success: true})
}

func (r *Router) scopeAssignmentsList(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "api.scopeAssignmentsList", trace.WithAttributes(
		attribute.String("resource", c.QueryParam("resource")),
		attribute.String("scope", c.QueryParam("scope")),
	))
	defer span.End()

	resource, err := queryParam(c, "resource")
	if err != nil {
		return r.errorResponse("error listing scope assignments", err)
	}

	scope, err := queryParam(c, "scope")
	if err != nil {
		return r.errorResponse("error listing scope assignments", err)
	}

	principals, err := r.engine.GetPrincipalsForScope(ctx, resource, scope)
	if err != nil {
		return r.errorResponse("error listing scope assignments", err)
	}

	return c.JSON(http.StatusOK, listPrincipalsResponse{Data: principals})
}

func (r *Router) roleAssignmentCreate(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "api.roleAssignmentCreate")
	defer span.End()

	var reqBody createRoleAssignmentRequest

	if err := c.Bind(&reqBody); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "error parsing request body").SetInternal(err)
	}

	span.SetAttributes(
		attribute.String("resource", reqBody.Resource),
		attribute.String("role", reqBody.Role),
		attribute.String("principal", reqBody.Principal),
	)

	assignment, err := r.engine.CreateRoleAssignment(ctx, reqBody.Resource, reqBody.Role, reqBody.Principal)
	if err != nil {
		return r.errorResponse("error creating role assignment", err)
	}

	resp := roleAssignmentResponse{
		Resource:  assignment.ResourceName,
		Role:      assignment.RoleName,
		Principal: assignment.PrincipalID,
	}

	return c.JSON(http.StatusCreated, resp)
}

func (r *Router) roleAssignmentDelete(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "api.roleAssignmentDelete", trace.WithAttributes(
		attribute.String("resource", c.QueryParam("resource")),
		attribute.String("role", c.QueryParam("role")),
		attribute.String("principal", c.QueryParam("principal")),
	))
	defer span.End()

	resource, err := queryParam(c, "resource")
	if err != nil {
		return r.errorResponse("error deleting role assignment", err)
	}

	role, err := queryParam(c, "role")
	if err != nil {
		return r.errorResponse("error deleting role assignment", err)
	}

	principal, err := queryParam(c, "principal")
	if err != nil {
		return r.errorResponse("error deleting role assignment", err)
	}

	if err := r.engine.DeleteRoleAssignment(ctx, resource, role, principal); err != nil {
		return r.errorResponse("error deleting role assignment", err)
	}

	return c.JSON(http.StatusOK, deleteResponse{Success: true})
}

func (r *Router) roleAssignmentsList(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "api.roleAssignmentsList", trace.WithAttributes(
		attribute.String("resource", c.QueryParam("resource")),
		attribute.String("role", c.QueryParam("role")),
	))
	defer span.End()

	resource, err := queryParam(c, "resource")
	if err != nil {
		return r.errorResponse("error listing role assignments", err)
	}

	role, err := queryParam(c, "role")
	if err != nil {
		return r.errorResponse("error listing role assignments", err)
	}

	principals, err := r.engine.GetPrincipalsForRole(ctx, resource, role)
	if err != nil {
		return r.errorResponse("error listing role assignments", err)
	}

	return c.JSON(http.StatusOK, listPrincipalsResponse{Data: principals})
}

// Package api exposes the authorization engine over HTTP.
package api

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.infratographer.com/x/echojwtx"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/StevenKehrli/Trelnex-sub007/internal/query"
)

var tracer = otel.Tracer("github.com/StevenKehrli/Trelnex-sub007/internal/api")

// Router provides a router for the API
type Router struct {
	authMW echo.MiddlewareFunc
	engine query.Engine
	logger *zap.SugaredLogger
}

// NewRouter returns a new api router
func NewRouter(authCfg echojwtx.AuthConfig, engine query.Engine, options ...Option) (*Router, error) {
	auth, err := echojwtx.NewAuth(context.Background(), authCfg)
	if err != nil {
		return nil, err
	}

	router := &Router{
		authMW: auth.Middleware(),
		engine: engine,
		logger: zap.NewNop().Sugar(),
	}

	for _, opt := range options {
		if err := opt(router); err != nil {
			return nil, err
		}
	}

	return router, nil
}

// Routes will add the routes for this API version to a router group.
//
// Entity names may contain '/' and ':' so they are carried in query
// parameters and request bodies, never in path segments.
func (r *Router) Routes(rg *echo.Group) {
	v1 := rg.Group("api/v1")
	{
		v1.Use(r.authMW)

		v1.POST("/resources", r.resourceCreate)
		v1.GET("/resources", r.resourceGet)
		v1.DELETE("/resources", r.resourceDelete)

		v1.POST("/scopes", r.scopeCreate)
		v1.GET("/scopes", r.scopeGet)
		v1.DELETE("/scopes", r.scopeDelete)

		v1.POST("/roles", r.roleCreate)
		v1.GET("/roles", r.roleGet)
		v1.DELETE("/roles", r.roleDelete)

		v1.POST("/assignments/scopes", r.scopeAssignmentCreate)
		v1.GET("/assignments/scopes", r.scopeAssignmentsList)
		v1.DELETE("/assignments/scopes", r.scopeAssignmentDelete)

		v1.POST("/assignments/roles", r.roleAssignmentCreate)
		v1.GET("/assignments/roles", r.roleAssignmentsList)
		v1.DELETE("/assignments/roles", r.roleAssignmentDelete)

		v1.DELETE("/principals", r.principalDelete)
		v1.GET("/principals/access", r.principalAccessGet)
	}
}

// Option defines a router option function.
type Option func(r *Router) error

// WithLogger sets the logger for the router.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(r *Router) error {
		r.logger = logger.Named("api")

		return nil
	}
}

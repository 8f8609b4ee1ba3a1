// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/JustKota/FrvttaeProyect/internal/delivery/http/middleware"
	"github.com/JustKota/FrvttaeProyect/internal/delivery/http/router/handler"
	"github.com/JustKota/FrvttaeProyect/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams holds all the handlers that need to be registered, injected
// by Fx.
type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	AdminHandler   *handler.AdminHandler
	HealthHandler  *handler.HealthHandler
	AuthMiddleware *middleware.AuthMiddleware
}

type router struct {
	authHandler    *handler.AuthHandler
	adminHandler   *handler.AdminHandler
	healthHandler  *handler.HealthHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		adminHandler:   params.AdminHandler,
		healthHandler:  params.HealthHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", r.healthHandler.Health)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login/face", r.authHandler.FaceLogin)
		authGroup.POST("/login/google", r.authHandler.FederatedLogin)
	}

	// Administrator routes require authentication and the admin role
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		adminGroup.GET("/logs", r.adminHandler.ListLoginRecords)
		adminGroup.DELETE("/users/:username", r.adminHandler.DeleteUser)
	}
}

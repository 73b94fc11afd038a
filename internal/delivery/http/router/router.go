// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"pfm/internal/delivery/http/middleware"
	"pfm/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams holds the handlers and guards to register, injected by Fx.
type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	UserHandler    *handler.UserHandler
	FinanceHandler *handler.FinanceHandler
	InsightHandler *handler.InsightHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	userHandler    *handler.UserHandler
	financeHandler *handler.FinanceHandler
	insightHandler *handler.InsightHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		userHandler:    params.UserHandler,
		financeHandler: params.FinanceHandler,
		insightHandler: params.InsightHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes (public)
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/refresh", r.authHandler.RefreshToken)
		authGroup.POST("/logout", r.authHandler.Logout)
	}

	// Current-account route behind the required guard
	userGroup := e.Group("/users")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.GET("/me", r.userHandler.Me)
	}

	// Finance resources, all owner-scoped and guarded
	for prefix, routes := range map[string][2]echo.HandlerFunc{
		"/transactions": {r.financeHandler.ListTransactions, r.financeHandler.CreateTransaction},
		"/categories":   {r.financeHandler.ListCategories, r.financeHandler.CreateCategory},
		"/budgets":      {r.financeHandler.ListBudgets, r.financeHandler.CreateBudget},
		"/goals":        {r.financeHandler.ListGoals, r.financeHandler.CreateGoal},
	} {
		group := e.Group(prefix)
		group.Use(r.authMiddleware.Authenticate)
		group.GET("", routes[0])
		group.POST("", routes[1])
	}

	// Insights work anonymously but personalize when a valid token is present
	insightGroup := e.Group("/ai")
	insightGroup.Use(r.authMiddleware.OptionalAuthenticate)
	{
		insightGroup.GET("/insights", r.insightHandler.GetInsights)
	}
}

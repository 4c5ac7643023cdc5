// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"accounts/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler *handler.AccountHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler *handler.AccountHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler: params.AccountHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/", handler.Home)
	e.GET("/health", handler.HealthCheck)

	// Registration needs no credentials
	e.POST("/register", r.accountHandler.RegisterForm)
	e.POST("/add_user", r.accountHandler.AddUser)

	// Every other route authenticates with the Password header
	e.GET("/get_user/:email", r.accountHandler.GetUser)
	e.PUT("/update_user/:email", r.accountHandler.UpdateUser)
	e.DELETE("/delete_user/:email", r.accountHandler.DeleteUser)
}

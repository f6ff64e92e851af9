// Package router assembles the HTTP route table.
package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "user_backend/internal/feature/auth/transport/handler"
	userhandler "user_backend/internal/feature/users/transport/handler"
	"user_backend/internal/platform/http/handler"
	jwtmw "user_backend/internal/platform/jwt"
)

// New builds the gin engine with all routes wired. Creation and login stay
// public; everything that reads or mutates existing users sits behind the
// bearer-token guard.
func New(authHandler *authhandler.AuthHandler, userHandler *userhandler.UserHandler, jwtSecret string) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	r.GET("/healthz", handler.Health)

	// Public: login and user creation (the bootstrap path)
	r.POST("/auth/login", authHandler.Login)

	api := r.Group("/api")
	api.POST("/users", userHandler.Create)

	protected := api.Group("")
	protected.Use(jwtmw.AuthRequired(jwtSecret))
	{
		protected.GET("/users", userHandler.List)
		protected.GET("/users/:id", userHandler.Get)
		protected.PATCH("/users/:id", userHandler.Update)
		protected.DELETE("/users/:id", userHandler.Delete)
	}

	// Demo route showing the guard's decoded identity
	r.GET("/protected", jwtmw.AuthRequired(jwtSecret), authhandler.Protected)

	return r
}

package main

import (
	"log"

	"user_backend/internal/app/router"
	authhandler "user_backend/internal/feature/auth/transport/handler"
	authusecase "user_backend/internal/feature/auth/usecase"
	"user_backend/internal/feature/users/adapters"
	userhandler "user_backend/internal/feature/users/transport/handler"
	usersusecase "user_backend/internal/feature/users/usecase"
	"user_backend/internal/platform/config"
	infradb "user_backend/internal/platform/db"
	jwtmw "user_backend/internal/platform/jwt"
	"user_backend/internal/platform/password"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if cfg.JWT.Secret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	// db
	db := infradb.Open(cfg.DB)

	// Repository
	userRepo := adapters.NewUserMySQL(db)

	// Credential primitives
	hasher := password.NewDefaultHasher()
	tokenGen := jwtmw.NewGenerator(cfg.JWT.Secret, cfg.JWT.Expiration)

	// Usecase
	userUC := usersusecase.NewUserUsecase(userRepo, hasher)
	authUC := authusecase.NewAuthUsecase(userRepo, hasher, tokenGen)

	// Handler
	userH := userhandler.NewUserHandler(userUC)
	authH := authhandler.NewAuthHandler(authUC)

	r := router.New(authH, userH, cfg.JWT.Secret)

	if err := r.Run(":" + cfg.HTTP.Port); err != nil {
		log.Fatal(err)
	}
}

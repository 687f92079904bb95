package main

import (
	"log"
	"os"

	"doorsteps/internal/database"
	"doorsteps/internal/pkg/logger"
	"doorsteps/internal/stubapi"
)

func main() {
	zl, err := logger.New(os.Getenv("APP_ENV"))
	if err != nil {
		log.Fatal(err)
	}
	defer zl.Sync()

	dsn := os.Getenv("STUB_DSN")
	if dsn == "" {
		dsn = "stubapi.db"
	}
	secret := os.Getenv("STUB_JWT_SECRET")
	if secret == "" {
		secret = "dev-only-secret"
	}

	db, err := database.Connect(dsn, zl)
	if err != nil {
		log.Fatal(err)
	}

	srv, err := stubapi.New(db, []byte(secret), zl)
	if err != nil {
		log.Fatal(err)
	}
	if err := srv.Seed(); err != nil {
		log.Fatal(err)
	}

	addr := os.Getenv("STUB_ADDR")
	if addr == "" {
		addr = ":9090"
	}
	zl.Info("stub backend listening")
	if err := srv.Router().Run(addr); err != nil {
		log.Fatal(err)
	}
}

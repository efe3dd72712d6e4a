package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/massagehub/booking-api/internal/auth"
	"github.com/massagehub/booking-api/internal/config"
	dbpkg "github.com/massagehub/booking-api/internal/db"
	"github.com/massagehub/booking-api/internal/mail"
	"github.com/massagehub/booking-api/internal/middleware"
	"github.com/massagehub/booking-api/internal/routes"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	blacklist := auth.NewRedisBlacklist(cfg)
	mailer := mail.NewSMTPMailer(cfg)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, blacklist, mailer)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

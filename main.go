package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"bounty-board/handlers"
	"bounty-board/middleware"
	"bounty-board/models"
	"bounty-board/services"
	"bounty-board/utils"
	"bounty-board/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"googlemaps.github.io/maps"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB, answer images only
	})

	app.Use(middleware.RequestLogger())

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins: allowedOriginsString,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
		MaxAge:       86400, // 24 hours
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	r2Enabled, err := utils.InitR2()
	if err != nil {
		log.Fatal("failed to initialize R2 client:", err)
	}
	if !r2Enabled {
		log.Println("⚠️  R2 not configured, answer images will be stored under ./uploads")
		if err := utils.EnsureUploadDir(); err != nil {
			log.Fatal("failed to ensure upload dir:", err)
		}
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.Bounty{},
		&models.Answer{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	// Default bounty expiry; unset means bounties without an explicit
	// expiryMinutes never expire.
	var defaultExpiry *int
	if raw := os.Getenv("DEFAULT_EXPIRY_MINUTES"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			log.Fatal("DEFAULT_EXPIRY_MINUTES must be a positive integer")
		}
		defaultExpiry = &n
	}

	bountyService := services.NewBountyService(db, defaultExpiry)
	answerService := services.NewAnswerService(db)

	// Google Maps integration is optional: without a key, place search
	// returns 503 and address backfill is skipped.
	var mapsClient *maps.Client
	if apiKey := os.Getenv("MAPS_API_KEY"); apiKey != "" {
		mapsClient, err = maps.NewClient(maps.WithAPIKey(apiKey), maps.WithHTTPClient(utils.HTTPClient))
		if err != nil {
			log.Fatal("failed to initialize maps client:", err)
		}
	} else {
		log.Println("⚠️  MAPS_API_KEY not set, place search and address backfill disabled")
	}
	placeService := services.NewPlaceService(mapsClient)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if mapsClient != nil {
		geocodeWorker := workers.NewGeocodeBackfillWorker(db, mapsClient)
		go geocodeWorker.Poll(ctx, 30*time.Second)
	}

	bountyService.StartExpirySweeper()

	handlers.SetupBountyRoutes(app, bountyService, answerService)
	handlers.SetupPlaceRoutes(app, placeService)

	if !r2Enabled {
		app.Static("/uploads", "./uploads")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Println("✅ Expiry sweeper running (every 1m)")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

// cmd/api/main.go
// Main entry point for the discovery API
// This file bootstraps all components and starts the server

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sparkd-app/sparkd-backend/internal/auth"
	"github.com/sparkd-app/sparkd-backend/internal/common/database"
	"github.com/sparkd-app/sparkd-backend/internal/common/storage"
	"github.com/sparkd-app/sparkd-backend/internal/common/utils"
	"github.com/sparkd-app/sparkd-backend/internal/config"
	"github.com/sparkd-app/sparkd-backend/internal/discovery"
	"github.com/sparkd-app/sparkd-backend/internal/interactions"
	"github.com/sparkd-app/sparkd-backend/internal/profile"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	log.Println("========================================")
	log.Println("🚀 Starting Sparkd Discovery API")
	log.Println("========================================")

	// 1. Load environment variables
	log.Println("📁 Step 1: Loading .env file...")
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  Warning: No .env file found (%v), using environment variables", err)
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	// 2. Load configuration
	log.Println("\n📋 Step 2: Loading configuration...")
	cfg := config.Load()
	log.Println("✅ Configuration loaded")

	// 3. Validate configuration
	log.Println("\n✔️  Step 3: Validating configuration...")
	if err := cfg.Validate(); err != nil {
		log.Fatal("❌ Configuration validation failed:", err)
	}
	log.Println("✅ Configuration is valid")

	// 4. Connect to PostgreSQL
	log.Println("\n🗄️  Step 4: Connecting to PostgreSQL...")
	db, err := database.NewPostgresDBFromURL(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Failed to connect to PostgreSQL:", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("❌ Failed to ping PostgreSQL:", err)
	}
	log.Println("✅ Connected to PostgreSQL successfully")

	// 5. Connect to Redis (optional)
	log.Println("\n📮 Step 5: Connecting to Redis...")
	var redisClient *redis.Client

	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClientFromURL(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️  Redis unavailable (%v), continuing without Redis", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Println("✅ Connected to Redis successfully")
		}
	} else {
		log.Println("⚠️  Redis URL not configured, skipping Redis connection")
	}

	// 6. Initialize Auth system
	log.Println("\n🔐 Step 6: Initializing authentication...")
	authService := auth.NewService(cfg.JWTSecret)
	authMiddleware := auth.NewMiddleware(authService)
	log.Println("✅ Authentication initialized")

	// 7. Initialize photo URL signing
	log.Println("\n🖼️  Step 7: Initializing photo URL signing...")
	var photoSigner storage.PhotoURLSigner
	if cfg.UseS3 {
		s3Signer, err := storage.NewS3Signer(cfg.S3Bucket, cfg.AWSRegion)
		if err != nil {
			log.Printf("⚠️  Failed to init S3 signer, using passthrough: %v", err)
			photoSigner = storage.NewPassthroughSigner(cfg.BaseURL)
		} else {
			photoSigner = s3Signer
			log.Println("   ✅ Using S3 presigned photo URLs")
		}
	} else {
		photoSigner = storage.NewPassthroughSigner(cfg.BaseURL)
		log.Println("   ✅ Using passthrough photo URLs (development mode)")
	}

	// 8. Initialize Discovery module
	log.Println("\n💘 Step 8: Initializing Discovery module...")

	profileRepo := profile.NewPostgresRepository(db)
	discoveryRepo := discovery.NewPostgresRepository(db)

	resolver := discovery.NewHTTPPostcodeResolver(
		cfg.GeocoderBaseURL,
		cfg.GeocoderTimeout,
		redisClient,
		cfg.PostcodeCacheTTL,
	)

	var scoreCache discovery.ScoreCache
	if redisClient != nil {
		scoreCache = discovery.NewRedisScoreCache(redisClient, cfg.ScoreCacheTTL)
		log.Println("   ✅ Score cache enabled")
	} else {
		scoreCache = discovery.NewNoopScoreCache()
		log.Println("   ⚠️  Score cache disabled, recomputing every request")
	}

	discoveryService := discovery.NewService(discoveryRepo, profileRepo, resolver, scoreCache, photoSigner, cfg)
	discoveryHandler := discovery.NewHandler(discoveryService)
	log.Println("✅ Discovery module initialized")

	// 9. Initialize Interactions module
	log.Println("\n🤝 Step 9: Initializing Interactions module...")
	interactionsRepo := interactions.NewPostgresRepository(db)
	interactionsService := interactions.NewService(interactionsRepo)
	interactionsHandler := interactions.NewHandler(interactionsService)
	log.Println("✅ Interactions module initialized")

	// 10. Setup routes
	log.Println("\n🛣️  Step 10: Setting up routes...")
	router := mux.NewRouter()

	router.HandleFunc("/health", healthCheck).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	discovery.RegisterRoutes(router, discoveryHandler, authMiddleware)
	log.Println("   ✅ Discovery routes registered")

	interactions.RegisterRoutes(router, interactionsHandler, authMiddleware)
	log.Println("   ✅ Interactions routes registered")

	router.Use(loggingMiddleware)
	router.Use(corsMiddleware)

	// 11. Create and start HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Println("\n========================================")
		log.Printf("🚀 Server starting on http://localhost%s", srv.Addr)
		log.Printf("🌍 Environment: %s", cfg.Environment)
		log.Println("========================================")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Failed to start server:", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("\n⚠️  Shutdown signal received...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ Server forced to shutdown:", err)
	}

	log.Println("✅ Server shut down gracefully")
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// loggingMiddleware tags every request with a short request ID
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.New().String()[:8]

		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r)

		log.Printf("[%s] %s %s %v", requestID, r.Method, r.RequestURI, time.Since(start))
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

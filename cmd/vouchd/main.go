// Command vouchd is the Vouch leaderboard service.
// It accepts signed scan submissions, serves the hall of shame and its
// category awards, and archives submitted results and badges.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/vouchdev/vouch/internal/api"
	"github.com/vouchdev/vouch/internal/archive"
	"github.com/vouchdev/vouch/internal/leaderboard"
	"github.com/vouchdev/vouch/internal/platform"
)

type config struct {
	Port         string
	DatabaseURL  string
	SubmitSecret string
	APIKey       string
	GCSBucket    string
	S3Bucket     string
}

func loadConfig() config {
	return config{
		Port:         envOrDefault("PORT", "8080"),
		DatabaseURL:  envOrDefault("DATABASE_URL", "postgres://localhost:5432/vouch?sslmode=disable"),
		SubmitSecret: os.Getenv("SUBMIT_SECRET"),
		APIKey:       os.Getenv("API_KEY"),
		GCSBucket:    os.Getenv("GCS_BUCKET"),
		S3Bucket:     os.Getenv("S3_BUCKET"),
	}
}

func main() {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := loadConfig()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("ping database: %v", err)
	}

	if err := platform.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	storage, err := buildStorage(context.Background(), cfg)
	if err != nil {
		log.Fatalf("init storage: %v", err)
	}

	board := leaderboard.NewService(db)
	handler := api.NewHandler(board, storage, []byte(cfg.SubmitSecret))

	apiMux := http.NewServeMux()
	handler.RegisterRoutes(apiMux)

	// Health stays outside auth so load balancers can probe it.
	mux := http.NewServeMux()
	mux.Handle("/api/", api.APIKeyAuth(cfg.APIKey)(apiMux))
	mux.HandleFunc("GET /healthz", healthHandler(db))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: api.CORS(mux),
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("starting vouchd on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

// buildStorage picks the archive backend from the environment: GCS when a
// bucket is set, then S3, otherwise the local filesystem.
func buildStorage(ctx context.Context, cfg config) (archive.StorageClient, error) {
	if cfg.GCSBucket != "" {
		return archive.NewGCSStorage(ctx, cfg.GCSBucket)
	}
	if cfg.S3Bucket != "" {
		return archive.NewS3Storage(ctx, archive.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    os.Getenv("S3_REGION"),
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
		})
	}
	return archive.NewLocalStorage(envOrDefault("LOCAL_STORAGE_PATH", "/tmp/vouch-data")), nil
}

func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

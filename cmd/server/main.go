package main

import (
	"context"
	"crypto/rand"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/WongYC-66/odin-InventoryApplication-PostgreSQL/internal/config"
	"github.com/WongYC-66/odin-InventoryApplication-PostgreSQL/internal/db"
	"github.com/WongYC-66/odin-InventoryApplication-PostgreSQL/internal/media"
	"github.com/WongYC-66/odin-InventoryApplication-PostgreSQL/internal/web"
)

// shutdownTimeout bounds how long in-flight requests may run after a
// termination signal before the server gives up on them.
const shutdownTimeout = 10 * time.Second

func main() {
	seed := flag.Bool("seed", false, "populate an empty database with sample data")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *seed); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run(ctx context.Context, seed bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	// Auto-generate the session secret if not provided.
	if cfg.SessionSecret == "" {
		secret, err := generatePassword(32)
		if err != nil {
			return fmt.Errorf("generating session secret: %w", err)
		}
		cfg.SessionSecret = secret
		log.Println("Session secret auto-generated (logins will be invalidated on restart)")
	}

	// First run without a configured staff account: generate one and print
	// the password once.
	if cfg.AdminPasswordHash == "" {
		password, err := generatePassword(16)
		if err != nil {
			return fmt.Errorf("generating staff password: %w", err)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hashing staff password: %w", err)
		}
		cfg.AdminPasswordHash = string(hash)

		fmt.Println("Staff account created for this run:")
		fmt.Printf("  Username: %s\n", cfg.AdminUsername)
		fmt.Printf("  Password: %s\n", password)
		fmt.Println()
		fmt.Println("Set ADMIN_PASSWORD_HASH to make it permanent.")
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	if err := db.EnsureSchema(database); err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}

	if seed {
		if err := db.Seed(database); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
		fmt.Println("Sample data loaded.")
	}

	var uploader media.Uploader
	if cfg.CloudinaryCloudName != "" {
		uploader = media.NewCloudinary(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		fmt.Println("Image uploads go to Cloudinary.")
	} else {
		uploader = media.NewLocal(cfg.UploadDir)
		fmt.Printf("Image uploads stored locally in %s\n", cfg.UploadDir)
	}

	router, err := web.NewRouter(database, cfg, uploader)
	if err != nil {
		return fmt.Errorf("setting up router: %w", err)
	}

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: web.LoggingMiddleware(router),
	}

	fmt.Printf("Server listening on %s\n", cfg.Addr)
	return serve(ctx, server)
}

// serve runs the server until it fails or ctx is cancelled, then drains
// in-flight requests before returning.
func serve(ctx context.Context, server *http.Server) error {
	errc := make(chan error, 1)
	go func() {
		errc <- server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	fmt.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// generatePassword creates a random password of the given length.
func generatePassword(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%&*"
	result := make([]byte, length)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		result[i] = charset[n.Int64()]
	}
	return string(result), nil
}

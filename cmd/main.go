// gigmate-marketplace-service
//
// Application lifecycle backend for the gig marketplace. Exposes a REST API
// used by the mobile apps to implement:
//   - job postings and applications
//   - the application status state machine (APPLIED → … → COMPLETED)
//   - OTP-verified work handoffs (start and completion codes)
//   - the administrator approval queue for protected status changes
//
// Publishes EVENT_STATUS_CHANGED / EVENT_APPROVAL_* to Redis for the
// Gateway's push forwarding.
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

	"gigmate/marketplace-service/internal/application"
	"gigmate/marketplace-service/internal/auth"
	"gigmate/marketplace-service/internal/config"
	"gigmate/marketplace-service/internal/db"
	"gigmate/marketplace-service/internal/httpapi"
	"gigmate/marketplace-service/internal/metrics"
	"gigmate/marketplace-service/internal/notify"
	"gigmate/marketplace-service/internal/otp"
	"gigmate/marketplace-service/internal/scheduler"
	"gigmate/marketplace-service/internal/store/postgres"
)

const version = "1.0.0"

func main() {
	// ── Config ──────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[marketplace-service] Config error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── PostgreSQL ───────────────────────────────────────────────────────────
	log.Println("[marketplace-service] Connecting to PostgreSQL…")
	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[marketplace-service] PostgreSQL: %v", err)
	}
	defer pool.Close()
	log.Println("[marketplace-service] PostgreSQL connected ✓")

	if cfg.MigrationsPath != "" {
		if err := db.Migrate(cfg.MigrationsPath, cfg.DatabaseURL); err != nil {
			log.Fatalf("[marketplace-service] Migrations: %v", err)
		}
		log.Println("[marketplace-service] Migrations applied ✓")
	}

	// ── Redis ────────────────────────────────────────────────────────────────
	log.Println("[marketplace-service] Connecting to Redis…")
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("[marketplace-service] Redis: %v", err)
	}
	defer rdb.Close()
	log.Println("[marketplace-service] Redis connected ✓")

	// ── Service wiring ───────────────────────────────────────────────────────
	met := metrics.New()
	svc := application.New(
		postgres.New(pool),
		otp.NewManager(otp.NewRedisCodeStore(rdb), time.Duration(cfg.OTPTTLMinutes)*time.Minute),
		notify.NewRedisPublisher(rdb),
		met,
		time.Duration(cfg.ApprovalTTLHours)*time.Hour,
	)

	router := httpapi.NewRouter(httpapi.Dependencies{
		Service:  svc,
		Verifier: auth.NewVerifier(cfg.JWTSecret),
		Metrics:  met,
	})

	// ── Approval expiry cron ─────────────────────────────────────────────────
	sched := scheduler.New(svc, cfg.SweepIntervalMinutes)
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("[marketplace-service] Scheduler: %v", err)
	}
	defer sched.Stop()

	// ── HTTP server ──────────────────────────────────────────────────────────
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[marketplace-service] v%s listening on :%s", version, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[marketplace-service] HTTP server error: %v", err)
		}
	}()

	// ── Graceful shutdown ────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[marketplace-service] Shutting down…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[marketplace-service] Shutdown error: %v", err)
	}
	log.Println("[marketplace-service] Stopped.")
}

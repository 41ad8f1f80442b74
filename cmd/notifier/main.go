// Package main implements the notification service, the delivery sink for
// the system. Sending is simulated: each request records a delivery latency
// and succeeds or fails at a fixed rate, and the history is queryable for
// debugging and monitoring.
//
// Configuration:
//   - NOTIFIER_ADDR: Listen address (default: ":8002")
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/EliasMima/UserManagementMicroservice/internal/notification"
)

func main() {
	godotenv.Load(".env")

	addr := getenv("NOTIFIER_ADDR", ":8002")

	store := notification.NewStore()
	handler := notification.NewHandler(store, notification.NewSender())

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("notification-service listening on %s (simulation mode)", addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(ctx)
	sent, failed := store.Counts()
	log.Printf("notification-service stopped (%d notifications, %d failed)", sent+failed, failed)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

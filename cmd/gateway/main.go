// Package main implements the API gateway, the single entry point for all
// client requests. It proxies /api/users traffic to the user service and
// aggregates the health of every downstream service.
//
// Configuration:
//   - GATEWAY_ADDR: Listen address (default: ":8000")
//   - USER_SERVICE_URL: User service base URL (default: "http://user-service:8001")
//   - NOTIFICATION_SERVICE_URL: Notification service base URL
//     (default: "http://notification-service:8002")
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

	"github.com/EliasMima/UserManagementMicroservice/internal/gateway"
)

func main() {
	godotenv.Load(".env")

	addr := getenv("GATEWAY_ADDR", ":8000")
	userURL := getenv("USER_SERVICE_URL", "http://user-service:8001")
	notificationURL := getenv("NOTIFICATION_SERVICE_URL", "http://notification-service:8002")

	srv := gateway.NewServer(userURL, []gateway.Target{
		{Name: "user-service", BaseURL: userURL, Timeout: gateway.DefaultProbeTimeout},
		{Name: "notification-service", BaseURL: notificationURL, Timeout: gateway.DefaultProbeTimeout},
	})

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("api-gateway listening on %s", addr)
		log.Printf("user service: %s", userURL)
		log.Printf("notification service: %s", notificationURL)
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
	log.Println("api-gateway stopped")
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

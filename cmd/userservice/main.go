// Package main implements the user service, which owns the user records and
// performs the mutate-then-notify flow: every create, update, or delete
// commits locally first and then sends a best-effort notification.
//
// Configuration:
//   - USER_ADDR: Listen address (default: ":8001")
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

	"github.com/EliasMima/UserManagementMicroservice/internal/notify"
	"github.com/EliasMima/UserManagementMicroservice/internal/user"
)

func main() {
	godotenv.Load(".env")

	addr := getenv("USER_ADDR", ":8001")
	notificationURL := getenv("NOTIFICATION_SERVICE_URL", "http://notification-service:8002")

	store := user.NewStore()
	svc := user.NewService(store, notify.NewClient(notificationURL))
	handler := user.NewHandler(svc)

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("user-service listening on %s", addr)
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
	log.Printf("user-service stopped (%d users in store)", store.Count())
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

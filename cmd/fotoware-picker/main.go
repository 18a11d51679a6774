// Command fotoware-picker runs the login flow from a terminal: it prints the
// authorize URL, catches the redirect on the loopback interface and, once
// authenticated, prints the selection widget URL for embedding.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"

	"github.com/jrsteele09/go-fotoware-picker/auth"
	"github.com/jrsteele09/go-fotoware-picker/config"
	"github.com/jrsteele09/go-fotoware-picker/credentials"
	"github.com/jrsteele09/go-fotoware-picker/credentials/boltkv"
	"github.com/jrsteele09/go-fotoware-picker/loopback"
	"github.com/jrsteele09/go-fotoware-picker/picker"
)

// sessionTTL bounds how long an abandoned login attempt stays resumable.
const sessionTTL = 30 * time.Minute

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error running picker: %s\n", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	displayAppname("Fotoware Picker")

	durable, err := boltkv.Open(cfg.TokenDBPath)
	if err != nil {
		return err
	}
	defer durable.Close()

	creds := credentials.NewStore(durable, credentials.NewMemoryKV(sessionTTL))
	controller := auth.New(cfg, creds)

	controller.Resume(context.Background(), "")
	if !controller.Session().Authenticated() {
		if err := login(cfg, controller); err != nil {
			return err
		}
	}

	session := controller.Session()
	handler := picker.NewHandler(cfg, session.AccessToken, picker.Callbacks{})
	log.Printf("Authenticated until %s\n", session.ExpiresAt.Format(time.RFC3339))
	log.Printf("Selection widget URL: %s\n", handler.WidgetURL())
	return nil
}

func login(cfg config.Config, controller *auth.Controller) error {
	authorizeURL, err := controller.Login()
	if err != nil {
		return err
	}

	server, err := loopback.New(cfg, controller)
	if err != nil {
		return err
	}

	authenticated := make(chan struct{}, 1)
	cancel := controller.Subscribe(func(s auth.Session) {
		if s.Authenticated() {
			select {
			case authenticated <- struct{}{}:
			default:
			}
		}
	})
	defer cancel()

	go func() {
		if err := server.ListenAndServe(); err != nil {
			log.Printf("Loopback server stopped: %s\n", err)
		}
	}()

	log.Printf("Open this URL in your browser to log in:\n\n    %s\n\n", authorizeURL)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	select {
	case <-authenticated:
	case <-stop:
		shutdown(server)
		return fmt.Errorf("interrupted before login completed")
	}

	shutdown(server)
	return nil
}

func shutdown(server *loopback.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Loopback shutdown: %s\n", err)
	}
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}

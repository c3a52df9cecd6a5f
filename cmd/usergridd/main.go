package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/denchenko/usergrid/internal/adapters"
	httpadapter "github.com/denchenko/usergrid/internal/adapters/primary/http"
	"github.com/denchenko/usergrid/internal/config"
	"github.com/denchenko/usergrid/internal/core"
	"github.com/denchenko/usergrid/internal/core/app"
	ulog "github.com/denchenko/usergrid/internal/log"
	do "github.com/samber/do/v2"
)

func main() {
	injector := do.New(
		config.Package,
		ulog.Package,
		core.Package,
		adapters.SecondaryPackage,
		adapters.PrimaryPackage,
	)

	server, err := do.Invoke[*httpadapter.Server](injector)
	if err != nil {
		log.Fatalf("Failed to create HTTP server: %v", err)
	}

	do.MustInvoke[*app.App](injector).SeedOnStart(context.Background())

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	adapters.Close(injector)
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/gotas/internal/cli"
	"github.com/dmitrijs2005/gotas/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	args := os.Args[1:]
	cfg, err := config.Load(args)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := cli.NewApp(cfg).Run(ctx, args); err != nil {
		stop()
		log.Fatalf("%v", err)
	}
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mithrel/copilotmd/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		log.SetFlags(0)
		log.SetPrefix("copilotmd: ")
		log.Fatal(err)
	}
}

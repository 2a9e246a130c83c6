package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"docrag/internal/cli"
)

func main() {
	// .env is optional; the credential can come from the process
	// environment directly.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	cli.Execute(ctx)
}

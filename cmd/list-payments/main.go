package main

import (
	"context"
	"log/slog"
	"os"

	adapter "github.com/DanielPopoola/payment-records/internal/adapters/lambda"
	"github.com/DanielPopoola/payment-records/internal/app"
	"github.com/DanielPopoola/payment-records/internal/config"
	"github.com/aws/aws-lambda-go/lambda"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger(os.Stdout).With("function", "list-payments")
	slog.SetDefault(logger)

	a, err := app.New(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("failed to initialise application", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	lambda.Start(adapter.ListPayments(a.Handler))
}

package main

import (
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/tizor98/albertonet-sub000/internal/api"
	"github.com/tizor98/albertonet-sub000/internal/config"
	"github.com/tizor98/albertonet-sub000/internal/contact"
	"github.com/tizor98/albertonet-sub000/internal/content"
	"github.com/tizor98/albertonet-sub000/internal/i18n"
	"github.com/tizor98/albertonet-sub000/internal/store"
	"github.com/tizor98/albertonet-sub000/pkg/logger"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	st, err := store.New(cfg.Storage)
	if err != nil {
		logger.Error("failed to build store", "error", err)
		os.Exit(1)
	}

	bundle, err := i18n.Default(cfg.Site.DefaultLocale)
	if err != nil {
		logger.Error("failed to load locale dictionaries", "error", err)
		os.Exit(1)
	}

	var messenger contact.MessageService = contact.LogMessenger{}
	if cfg.Contact.FunctionURL != "" {
		messenger = contact.NewFunctionMessenger(cfg.Contact.FunctionURL, cfg.Contact.Timeout)
	}

	handler := api.NewHandler(
		content.NewService(st, cfg.Content),
		messenger,
		contact.NewValidator(bundle),
		cfg.Site,
	)

	logger.Info("starting site api", "backend", cfg.Storage.Backend)
	lambda.Start(handler.Handle)
}

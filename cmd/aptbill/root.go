package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"aptbill/client/internal/api"
	"aptbill/client/internal/config"
	"aptbill/client/internal/log"
	"aptbill/client/internal/repository"
	"aptbill/client/internal/session"
)

// app wires the whole client stack once per invocation: session store,
// API client, repositories.
type app struct {
	cfg      *config.AppConfig
	log      zerolog.Logger
	sessions *session.Store
	client   *api.Client

	auth       *repository.Auth
	apartments *repository.Apartments
	debts      *repository.Debts
	payments   *repository.Payments
	users      *repository.Users
}

func newApp() (*app, error) {
	// A .env beside the binary is a dev convenience; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := log.New(cfg.Environment, cfg.LogLevel)

	sessions, err := session.Open(cfg.Session.Path)
	if err != nil {
		return nil, err
	}

	client := api.New(cfg.API, sessions, logger)

	return &app{
		cfg:        cfg,
		log:        logger,
		sessions:   sessions,
		client:     client,
		auth:       repository.NewAuth(client, sessions, logger),
		apartments: repository.NewApartments(client),
		debts:      repository.NewDebts(client),
		payments:   repository.NewPayments(client),
		users:      repository.NewUsers(client),
	}, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "aptbill",
		Short:         "Terminal client for the apartment billing backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newRegisterCmd(),
		newFloorsCmd(),
		newApartmentsCmd(),
		newDebtsCmd(),
		newPaymentsCmd(),
		newUsersCmd(),
		newProfileCmd(),
		newMetricsCmd(),
		newPushCmd(),
	)
	return root
}

func runCtx() context.Context {
	return context.Background()
}

func table() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

func orDash(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func printNotice(notice string) {
	if notice != "" {
		fmt.Fprintln(os.Stderr, notice)
	}
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"go-gin-mongo-shop/internal/core/config"
	"go-gin-mongo-shop/internal/core/logger"
	"go-gin-mongo-shop/internal/repo"
	"go-gin-mongo-shop/internal/service"
)

type storeOpener func(ctx context.Context, cfg *config.Config, l *zap.Logger) (*repo.Store, error)

func openStore(ctx context.Context, cfg *config.Config, l *zap.Logger) (*repo.Store, error) {
	return repo.Open(ctx, cfg.DB, l)
}

// admin holds what every subcommand needs once the root pre-run is done.
type admin struct {
	out     io.Writer
	cfgPath string
	open    storeOpener

	log     *zap.Logger
	store   *repo.Store
	carts   *service.CartService
	cleanup func()
}

func newRootCmd(out io.Writer, open storeOpener) *cobra.Command {
	a := &admin{out: out, open: open}

	root := &cobra.Command{
		Use:           "admin",
		Short:         "Operator tools for the shop backend",
		Long:          "Inspect users and manage carts directly against the configured store.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&a.cfgPath, "config", "", "config file (default $CONFIG_PATH or ./configs/config.local.yaml)")

	root.AddCommand(newUserCmd(a), newCartCmd(a))
	a.closeAfterRun(root)
	return root
}

// closeAfterRun wraps every RunE so the store is closed whether or not the
// command failed; cobra skips post-run hooks after an error.
func (a *admin) closeAfterRun(cmd *cobra.Command) {
	for _, sub := range cmd.Commands() {
		a.closeAfterRun(sub)
	}
	if cmd.RunE == nil {
		return
	}
	run := cmd.RunE
	cmd.RunE = func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			if cerr := a.close(); err == nil {
				err = cerr
			}
		}()
		return run(cmd, args)
	}
}

func (a *admin) setup(ctx context.Context) error {
	_ = godotenv.Load()
	path := a.cfgPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	a.log, a.cleanup = logger.New(logger.Options{Level: "warn", Out: zapcore.AddSync(os.Stderr)})
	a.store, err = a.open(ctx, cfg, a.log)
	if err != nil {
		a.cleanup()
		return fmt.Errorf("open store: %w", err)
	}
	a.carts = service.NewCartService(a.store.Users, a.store.Carts, a.store.Products)
	return nil
}

func (a *admin) close() error {
	var err error
	if a.store != nil {
		err = a.store.Close()
		a.store = nil
	}
	if a.cleanup != nil {
		a.cleanup()
		a.cleanup = nil
	}
	return err
}

func (a *admin) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

package main

import (
	"errors"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/todo/internal/client/api"
	"github.com/BuzzLyutic/todo/internal/client/cache"
	"github.com/BuzzLyutic/todo/internal/client/syncer"
	"github.com/BuzzLyutic/todo/internal/config"
)

// app is built once per invocation in PersistentPreRunE and closed by the caller
// of Execute, because cobra skips post-run hooks when a command fails.
type app struct {
	apiURL    string
	cachePath string
	verbose   bool

	logger    *zap.Logger
	persister *cache.BoltPersister
	store     *cache.Store
	sync      *syncer.Syncer
}

func newRootCmd() (*cobra.Command, func() error) {
	a := &app{}

	root := &cobra.Command{
		Use:           "todo",
		Short:         "Terminal client for the to-do API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.apiURL, "api", "", "API base URL (overrides TODO_API_URL)")
	root.PersistentFlags().StringVar(&a.cachePath, "cache", "", "Cache file path (overrides TODO_CACHE_PATH)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log requests to stderr")

	root.AddCommand(
		newListCmd(a),
		newNextCmd(a),
		newPrevCmd(a),
		newAddCmd(a),
		newDoneCmd(a),
		newRmCmd(a),
	)
	return root, a.close
}

func (a *app) open(cmd *cobra.Command) error {
	cfg, err := config.LoadClient()
	if err != nil {
		return err
	}
	if a.apiURL != "" {
		cfg.APIURL = a.apiURL
	}
	if a.cachePath != "" {
		cfg.CachePath = a.cachePath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.logger = zap.NewNop()
	if a.verbose {
		if a.logger, err = zap.NewDevelopment(); err != nil {
			return err
		}
	}

	client, err := api.New(cfg.APIURL, &http.Client{Timeout: cfg.Timeout})
	if err != nil {
		return err
	}

	a.persister, err = cache.NewBoltPersister(cfg.CachePath)
	if err != nil {
		return err
	}
	a.store = cache.New(a.persister, a.logger)
	if err := a.store.Restore(); err != nil {
		// битый кэш не повод падать, начинаем с пустого
		a.logger.Warn("cache restore failed", zap.Error(err))
	}

	a.sync = syncer.New(client, a.store, a.logger)
	a.logger.Debug("client ready", zap.String("api", cfg.APIURL), zap.String("cache", cfg.CachePath))
	return nil
}

func (a *app) close() error {
	var err error
	if a.persister != nil {
		err = a.persister.Close()
		a.persister = nil
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	return err
}

// describe turns API errors into something a person can read.
func describe(err error) error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return errors.New(apiErr.Message)
	}
	return err
}

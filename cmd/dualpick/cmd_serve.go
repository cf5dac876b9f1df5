package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jask/dualpick/internal/binding"
	"github.com/jask/dualpick/internal/database/repository"
	"github.com/jask/dualpick/internal/web"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve option sets as HTML multi-select forms",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	db, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	pcfg := pickerConfig()

	bindingFor := func(set string) binding.Binding { return binding.NewSQL(db, set) }
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer client.Close()
		bindingFor = func(set string) binding.Binding { return binding.NewRedis(client, set) }
	}

	if !verbose && !cfg.Log.Verbose {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := web.NewServer(repository.NewOptionSetRepo(db), bindingFor, pcfg, cfg.UI.Locale, logger)

	addr := serveAddr
	if addr == "" {
		addr = cfg.Server.Addr
	}
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("serving", zap.String("addr", addr))
		fmt.Fprintf(cmd.OutOrStdout(), "listening on http://%s/sets/<name>\n", addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/tobim/smartgraph/internal/server"
)

// newServeCmd creates the serve command, which exposes the diagram store and
// editing operations over HTTP.
func newServeCmd() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve diagrams over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("listen") && cfg.Listen != "" {
				listen = cfg.Listen
			}

			st, err := openStore(ctx, cfg.Store)
			if err != nil {
				return err
			}
			defer func() {
				closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = st.Close(closeCtx)
			}()

			c, err := openCache(ctx, cfg.Cache)
			if err != nil {
				return err
			}
			defer c.Close()

			handler := server.New(server.Options{
				Store:  st,
				Cache:  c,
				TTL:    time.Duration(cfg.Cache.TTLMinutes) * time.Minute,
				Logger: logger,
			})
			srv := &http.Server{
				Addr:              listen,
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}

			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()

			logger.Info("listening", "addr", listen)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", ":8080", "listen address")
	return cmd
}

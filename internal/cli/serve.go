package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/coachmark/pkg/remote"
	"github.com/matzehuels/coachmark/pkg/script"
)

// shutdownTimeout bounds graceful HTTP shutdown.
const shutdownTimeout = 5 * time.Second

type serveOpts struct {
	addr     string
	strategy string
	watch    bool
}

// serveCommand creates the serve command, which drives a tour over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve <script>",
		Short: "Drive a tour over HTTP",
		Long: `Serve a tour over HTTP for automation and UI tests.

GET /tour and GET /frame report state; POST /tour/next, /tour/back,
/tour/skip, /tour/reset and /tour/tap navigate.`,
		Example: `  coachmark serve examples/welcome.toml
  curl -X POST localhost:7331/tour/next`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeScripts,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default "+defaultAddr+")")
	cmd.Flags().StringVar(&opts.strategy, "strategy", "", "adaptive placement: band or search (default from script)")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "reload the script when it changes")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, path string, opts serveOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := c.config()
	if err != nil {
		return err
	}
	if opts.addr == "" {
		opts.addr = cfg.Serve.Addr
	}
	sc, err := script.Load(path)
	if err != nil {
		return err
	}
	strategy, err := strategyFor(sc, opts.strategy)
	if err != nil {
		return err
	}
	sess, err := newSession(sc, strategy, bubbleFor(cfg.Play.BubbleWidth), logger)
	if err != nil {
		return err
	}
	defer sess.Close()

	srv := remote.New(sess.overlay, sess.screen, remote.WithLogger(logger), remote.WithBubble(sess.bubble))
	httpSrv := &http.Server{
		Addr:              opts.addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("serving tour", "addr", opts.addr, "tour", sc.Title)
		if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})
	if opts.watch {
		g.Go(func() error {
			return watchScript(gctx, path, logger, func(ns *script.Script) {
				screen, err := sess.reload(ns)
				if err != nil {
					logger.Warn("script not applied", "err", err)
					return
				}
				srv.SetScreen(screen)
			})
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}

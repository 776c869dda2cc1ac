package cmd

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tldsplit/tldsplit/api"
	"github.com/tldsplit/tldsplit/evt"
	"github.com/tldsplit/tldsplit/lists"
	"github.com/tldsplit/tldsplit/log"
	"github.com/tldsplit/tldsplit/metrics"
	"github.com/tldsplit/tldsplit/util"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Args:  cobra.NoArgs,
		Short: "start the tldsplit HTTP service",
		Run:   startServer,
	}
}

func startServer(_ *cobra.Command, _ []string) {
	extractor := newExtractor(cfg.SuffixList.IncludePrivate, cfg.SuffixList.CacheSize)

	downloader := lists.NewDownloader(cfg.SuffixList.Downloads, nil)

	suffixList, err := lists.NewSuffixList(cfg.SuffixList, downloader, extractor)
	util.FatalOnError("can't start server: ", err)

	defer suffixList.Close()

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedMethods: []string{"GET", "POST"},
	}))

	api.RegisterEndpoints(router, extractor, suffixList)
	metrics.Start(router, cfg.Prometheus)

	address := net.JoinHostPort(cfg.HTTPHost, fmt.Sprint(cfg.HTTPPort))
	srv := &http.Server{
		Addr:              address,
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
	}

	go func() {
		log.Log().Infof("http server is up and running on addr/port %s", address)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Log().Fatal("can't serve: ", err)
		}
	}()

	evt.Bus().Publish(evt.ApplicationStarted, version, buildTime)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	<-signals
	log.Log().Infof("Terminating...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	util.LogOnError("can't stop server: ", srv.Shutdown(ctx))
}

package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ruteri/ipfs-storage-provider/cmd/flags"
	"github.com/ruteri/ipfs-storage-provider/httpserver"
	"github.com/urfave/cli/v2"
)

var listenAddrFlag = &cli.StringFlag{
	Name:    "listen-addr",
	Value:   "127.0.0.1:8080",
	Usage:   "address to listen on for API",
	EnvVars: []string{"LISTEN_ADDR"},
}

func main() {
	appFlags := append([]cli.Flag{listenAddrFlag, flags.LogServiceFlagFn("ipfs-storage-provider")}, flags.CommonFlags...)
	appFlags = append(appFlags, flags.IPFSFlags...)

	app := &cli.App{
		Name:  "provider-server",
		Usage: "Serve the IPFS storage provider to an out-of-process host",
		Flags: appFlags,
		Action: func(cCtx *cli.Context) error {
			logger := flags.SetupLogger(cCtx)

			provider, err := flags.NewIPFSProvider(cCtx, logger)
			if err != nil {
				logger.Error("Failed to create provider", "err", err)
				return err
			}

			logger.Info("IPFS provider configured",
				"id", provider.Metadata().ID,
				"version", provider.Metadata().Version,
				"endpoint", provider.Endpoint())

			cfg := flags.ConfigureServer(cCtx, logger, cCtx.String(listenAddrFlag.Name))
			server, err := httpserver.New(cfg, httpserver.NewHandler(provider, logger))
			if err != nil {
				logger.Error("Failed to create server", "err", err)
				return err
			}

			server.RunInBackground()

			exit := make(chan os.Signal, 1)
			signal.Notify(exit, os.Interrupt, syscall.SIGTERM)

			logger.Info("Server is running, press Ctrl+C to stop")
			<-exit
			logger.Info("Shutdown signal received")

			server.Shutdown()
			logger.Info("Server shutdown complete")
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

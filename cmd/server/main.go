package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/yurifrl/termsheet/pkg/config"
	"github.com/yurifrl/termsheet/pkg/server"
)

func main() {
	flags := pflag.NewFlagSet("termsheet-server", pflag.ExitOnError)
	cfgFile := flags.StringP("config", "c", "", "Config file (default is termsheet.yaml)")
	flags.String("addr", config.DefaultAddr, "Listen address")
	flags.String("log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	flags.Bool("debug", false, "Include the Debug_Log sheet by default")
	flags.String("processing-date", "", "Default processing date (YYYY-MM-DD)")
	flags.Int64("max-upload-mb", config.DefaultMaxUploadMB, "Maximum upload size in MB")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Build(*cfgFile, flags)
	if err != nil {
		log.Fatal("invalid configuration", "err", err)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		Prefix:          "termsheet",
		Level:           cfg.Level(),
	})

	srv := server.New(cfg, logger)
	logger.Info("starting server", "addr", cfg.Server.Addr)
	if err := srv.Start(cfg.Server.Addr); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

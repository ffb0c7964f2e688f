// Command vmddemo serves the interactive traffic flow decomposition demo.
//
// Usage:
//
//	vmddemo [flags]
//
// On first run it writes a default configuration file next to the binary.
// Edit it to point at a directory of yearly traffic workbooks; without any
// workbooks the demo still serves the synthetic week.
//
// Examples:
//
//	vmddemo
//	vmddemo -config /etc/vmddemo.toml
//	vmddemo -listen :9090
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/cwbudde/traffic-vmd/internal/config"
	"github.com/cwbudde/traffic-vmd/internal/demo"
	"github.com/cwbudde/traffic-vmd/internal/httpd"
	"github.com/cwbudde/traffic-vmd/internal/store"
)

func main() {
	configPath := flag.String("config", "vmddemo.toml", "path to the TOML configuration file")
	listen := flag.String("listen", "", "listen address, overrides the configured one")
	dataDir := flag.String("data", "", "workbook directory, overrides the configured one")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: vmddemo [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Serves the traffic flow decomposition demo over HTTP.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *listen != "" {
		cfg.ListenAddress = *listen
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}

	opts := []demo.Option{demo.WithFilePrefix(cfg.FilePrefix)}
	if cfg.DatabasePath != "" {
		st, err := store.Open(cfg.DatabasePath)
		if err != nil {
			log.Fatalf("open cache database: %v", err)
		}
		defer st.Close()
		opts = append(opts, demo.WithStore(st))
	}

	engine := demo.NewEngine(cfg.DataDir, opts...)
	srv := httpd.NewServer(engine)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("serving demo at http://localhost%s (data dir %q)", cfg.ListenAddress, cfg.DataDir)
	if err := srv.Run(ctx, cfg.ListenAddress); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

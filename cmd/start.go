package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/szuwgh/hanword/pkg/server"
	"github.com/szuwgh/hanword/web"
)

var addr string

func init() {
	StartCmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address, overrides server.addr")
	rootCmd.AddCommand(StartCmd)
}

var StartCmd = &cobra.Command{
	Use:   "start",
	Short: "start the http api",
	Long:  `start serves segment, keywords and batch-keywords over HTTP and websocket`,
	Run: func(cmd *cobra.Command, args []string) {
		start(args)
	},
}

func start(args []string) {
	runtime.GOMAXPROCS(runtime.NumCPU())
	log.SetFlags(log.Lshortfile | log.LstdFlags)
	cfg := loadConfig()
	if addr != "" {
		cfg.Server.Addr = addr
	}
	var (
		reg      prometheus.Registerer
		gatherer prometheus.Gatherer
	)
	if cfg.Metrics.Enabled {
		r := prometheus.NewRegistry()
		r.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		reg, gatherer = r, r
	}
	s, err := server.New(cfg, reg)
	if err != nil {
		log.Fatalln("create server:", err)
	}
	defer s.Close()
	webHandler := web.New(s, cfg, gatherer)
	if webHandler == nil {
		log.Fatalln("hanword handler is nil")
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := webHandler.Run(ctx); err != nil {
		log.Fatalln(err)
	}
}

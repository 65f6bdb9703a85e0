package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/stockagent/datapipe/conf"
	"github.com/stockagent/datapipe/db"
	"github.com/stockagent/datapipe/getd"
)

var (
	dataTypes  string
	maxSymbols int
	testRun    bool
)

func init() {
	getCmd.Flags().StringVar(&dataTypes, "data_types", "all",
		"comma list of datasets to ingest, or 'all': "+strings.Join(getd.DataTypes(), ","))
	getCmd.Flags().IntVar(&maxSymbols, "max_symbols", 0,
		"cap on the symbol universe, 0 for no cap")
	getCmd.Flags().IntVar(&conf.Args.BatchSize, "batch_size", conf.Args.BatchSize,
		"rows per batched insert")
	getCmd.Flags().IntVar(&conf.Args.MaxWorkers, "max_workers", conf.Args.MaxWorkers,
		"concurrent dataset drivers")
	getCmd.Flags().BoolVar(&testRun, "test", false,
		"smoke run: cap the universe at 10 symbols")
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Run one ingestion pass over the selected datasets",
	Run: func(cmd *cobra.Command, args []string) {
		defer shutdownHook()
		if testRun && maxSymbols <= 0 {
			maxSymbols = 10
		}
		ctx, stop := withSignals(context.Background())
		defer stop()
		if e := getd.Run(ctx, dataTypes, maxSymbols); e != nil {
			log.Printf("ingestion pass failed: %+v", e)
			os.Exit(1)
		}
	},
}

func withSignals(parent context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-ch:
			log.Printf("caught %v, cancelling pass...", sig)
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, func() {
		signal.Stop(ch)
		cancel()
	}
}

func shutdownHook() {
	if r := recover(); r != nil {
		if er, hasError := r.(error); hasError {
			log.Printf("caught error:%+v, trying to cleanup...", er)
		}
	}
	if e := db.Shutdown(); e != nil {
		log.Printf("failed to close connection pool: %+v", e)
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	tomb "gopkg.in/tomb.v2"

	"fenrir/internal/matching"
)

func newReplayCmd() *cobra.Command {
	var feedPath string
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay a JSONL feed of submissions through one matching engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd.Context(), feedPath, metricsAddr)
		},
	}

	cmd.Flags().StringVar(&feedPath, "feed", "", "path to a newline-delimited JSON feed file (defaults to stdin)")
	cmd.Flags().StringVar(&metricsAddr, "metrics", "", "address to serve Prometheus metrics on, e.g. :9090 (disabled if empty)")
	return cmd
}

func runReplay(ctx context.Context, feedPath, metricsAddr string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	src := os.Stdin
	if feedPath != "" {
		f, err := os.Open(feedPath)
		if err != nil {
			return fmt.Errorf("fenrirctl: %w", err)
		}
		defer f.Close()
		src = f
	}

	metrics := newMetricsSink()
	sink := matching.FuncSink(func(e matching.Event) {
		matching.NewLogSink(log.Logger).Emit(e)
		metrics.Emit(e)
	})
	eng := matching.New(sink)

	if metricsAddr != "" {
		go serveMetrics(ctx, metricsAddr)
	}

	var t tomb.Tomb
	pump := newFeedPump()
	pump.start(&t, src)

	for {
		select {
		case rec, ok := <-pump.recv():
			if !ok {
				t.Kill(nil)
				if err := t.Wait(); err != nil {
					return fmt.Errorf("fenrirctl: feed pump: %w", err)
				}
				return nil
			}
			fmt.Println(applyRecord(eng, rec))
		case <-ctx.Done():
			t.Kill(nil)
			return t.Wait()
		}
	}
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	tomb "gopkg.in/tomb.v2"

	"fenrir/internal/matching"
)

func newDepthCmd() *cobra.Command {
	var feedPath string
	var securityID string
	var levels int

	cmd := &cobra.Command{
		Use:   "depth",
		Short: "Replay a feed silently and print the final book depth for one security",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDepth(feedPath, securityID, levels)
		},
	}

	cmd.Flags().StringVar(&feedPath, "feed", "", "path to a newline-delimited JSON feed file (defaults to stdin)")
	cmd.Flags().StringVar(&securityID, "security", "", "security id to report depth for (required)")
	cmd.Flags().IntVar(&levels, "levels", 0, "number of levels per side to report (0 = unbounded)")
	_ = cmd.MarkFlagRequired("security")
	return cmd
}

func runDepth(feedPath, securityID string, levels int) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sec, err := parseSecurityID(securityID)
	if err != nil {
		return err
	}

	src := os.Stdin
	if feedPath != "" {
		f, err := os.Open(feedPath)
		if err != nil {
			return fmt.Errorf("fenrirctl: %w", err)
		}
		defer f.Close()
		src = f
	}

	eng := matching.New(nil)

	var t tomb.Tomb
	pump := newFeedPump()
	pump.start(&t, src)

drain:
	for {
		select {
		case rec, ok := <-pump.recv():
			if !ok {
				break drain
			}
			applyRecord(eng, rec)
		case <-ctx.Done():
			t.Kill(nil)
			return t.Wait()
		}
	}
	t.Kill(nil)
	if err := t.Wait(); err != nil {
		return fmt.Errorf("fenrirctl: feed pump: %w", err)
	}

	depth := eng.Depth(matching.DepthQuery{SecurityID: sec, Levels: levels})
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(depth)
}

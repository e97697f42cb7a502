package main

import (
	"context"

	"github.com/spf13/cobra"

	"parksim/internal/sim"
)

var (
	replayFile      string
	replaySpeed     float64
	replayPrintOnly bool
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay an exported traffic log",
	Long:  "replay re-emits traffic rows from a JSONL export through the configured sink, optionally paced by the recorded timestamps.",
	RunE: func(cmd *cobra.Command, args []string) error {
		sink, cleanup, err := newSink(replayPrintOnly, "", "")
		if err != nil {
			return err
		}
		defer cleanup()
		return sim.ReplayTrafficFile(context.Background(), replayFile, sink, replaySpeed)
	},
}

func init() {
	replayCmd.Flags().StringVar(&replayFile, "file", "", "Path to a JSONL traffic export")
	replayCmd.Flags().Float64Var(&replaySpeed, "speed", 1.0, "Playback speed multiplier (0 = no pacing)")
	replayCmd.Flags().BoolVar(&replayPrintOnly, "print-only", false, "Print rows to STDOUT instead of writing to DB")
	_ = replayCmd.MarkFlagRequired("file")
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"agolink/internal/tracelog"
)

const traceFollowWait = 2 * time.Second

func newTraceCommand(ctx *commandContext) *cobra.Command {
	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "Inspect the upload diagnostic trace",
	}

	traceCmd.AddCommand(newTraceShowCommand(ctx))
	traceCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Truncate the upload trace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sink, err := ctx.traceSink()
			if err != nil {
				return err
			}
			if err := sink.Clear(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s\n", sink.Path())
			return nil
		},
	})

	return traceCmd
}

func newTraceShowCommand(ctx *commandContext) *cobra.Command {
	var lines int
	var follow bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the upload trace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sink, err := ctx.traceSink()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if lines <= 0 && !follow {
				content, err := sink.Read()
				if err != nil {
					return err
				}
				if content == "" {
					fmt.Fprintln(out, "Upload trace is empty")
					return nil
				}
				fmt.Fprint(out, content)
				return nil
			}

			result, err := sink.Tail(cmd.Context(), tracelog.TailOptions{Offset: -1, Limit: lines})
			if err != nil {
				return err
			}
			printLines(out, result.Lines)
			if !follow {
				return nil
			}
			return followTrace(cmd.Context(), sink, result.Offset, out)
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 0, "Show only the last N lines")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing new trace blocks until interrupted")
	return cmd
}

func followTrace(ctx context.Context, sink *tracelog.FileSink, offset int64, out io.Writer) error {
	for {
		result, err := sink.Tail(ctx, tracelog.TailOptions{Offset: offset, Wait: traceFollowWait})
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		printLines(out, result.Lines)
		offset = result.Offset
	}
}

func printLines(out io.Writer, lines []string) {
	for _, line := range lines {
		fmt.Fprintln(out, line)
	}
}

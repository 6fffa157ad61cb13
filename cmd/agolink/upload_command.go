package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"agolink/internal/config"
	"agolink/internal/history"
	"agolink/internal/logging"
	"agolink/internal/recipe"
	"agolink/internal/upload"
)

// labelFlags are the naming overrides shared by upload and build.
type labelFlags struct {
	film      string
	developer string
	dilution  string
}

func (f *labelFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.film, "film", "", "Film stock used as the program name")
	cmd.Flags().StringVar(&f.developer, "developer", "", "Developer appended to the expanded title")
	cmd.Flags().StringVar(&f.dilution, "dilution", "", "Dilution appended after the developer")
}

func newUploadCommand(ctx *commandContext) *cobra.Command {
	var labels labelFlags
	var endpoint string
	var ipFlag string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "upload <recipe.json>",
		Short: "Upload a recipe to the device as a development program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			path, doc, err := readRecipe(args[0])
			if err != nil {
				return err
			}

			req := upload.Request{
				IP:             cfg.Device.IP,
				LegacyEndpoint: cfg.Device.UploadEndpoint,
				UploadField:    cfg.Device.UploadField,
				Filename:       filepath.Base(path),
				Recipe:         doc,
				FilmStock:      labels.film,
				Developer:      labels.developer,
				Dilution:       labels.dilution,
			}
			if ip := strings.TrimSpace(ipFlag); ip != "" {
				req.IP = ip
			}
			if cmd.Flags().Changed("endpoint") {
				req.LegacyEndpoint = strings.TrimSpace(endpoint)
			}

			orchestrator, err := ctx.orchestrator()
			if err != nil {
				return err
			}
			result, err := orchestrator.Upload(ctx.operation(cmd, "upload"), req)
			if err != nil {
				return err
			}

			ctx.recordUpload(cmd, history.Upload{
				CorrelationID:  result.CorrelationID,
				DeviceFilename: result.DeviceFilename,
				DisplayName:    result.DisplayName,
				SourceFile:     path,
				IP:             req.IP,
				Method:         result.Method,
				URL:            result.URL,
				Message:        result.Message,
			})

			if jsonOutput {
				return writeJSON(cmd, result)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, result.Message)
			if ctx.verbose() || len(result.Attempts) > 1 {
				fmt.Fprint(out, renderAttempts(result.Attempts))
			}
			return nil
		},
	}

	labels.register(cmd)
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "Compatibility endpoint tried after the API (defaults to device.upload_endpoint)")
	cmd.Flags().StringVar(&ipFlag, "ip", "", "Device address (defaults to device.ip)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

// recordUpload writes the ledger row for a finished upload. The program is
// already on the device, so a ledger failure only warns.
func (c *commandContext) recordUpload(cmd *cobra.Command, row history.Upload) {
	err := c.withStore(func(store *history.Store) error {
		_, err := store.RecordUpload(cmd.Context(), row)
		return err
	})
	if err != nil {
		logging.WarnWithContext(c.log(), "upload not recorded in history", "history_write_failed",
			logging.Error(err),
			logging.String("device_filename", row.DeviceFilename),
			logging.String(logging.FieldImpact, "programs list will not show this upload"),
		)
	}
}

func newBuildCommand(ctx *commandContext) *cobra.Command {
	var labels labelFlags

	cmd := &cobra.Command{
		Use:   "build <recipe.json>",
		Short: "Print the device payload for a recipe without uploading it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, doc, err := readRecipe(args[0])
			if err != nil {
				return err
			}
			payload, err := recipe.Build(doc, recipe.Labels{
				Filename:  filepath.Base(path),
				FilmStock: labels.film,
				Developer: labels.developer,
				Dilution:  labels.dilution,
			})
			if err != nil {
				return err
			}
			body, err := payload.Encode()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(body))
			return nil
		},
	}

	labels.register(cmd)
	return cmd
}

func readRecipe(arg string) (string, []byte, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", nil, errors.New("recipe path is required")
	}
	path, err := config.ExpandPath(arg)
	if err != nil {
		return "", nil, err
	}
	doc, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("read recipe: %w", err)
	}
	return path, doc, nil
}

func renderAttempts(attempts []upload.Attempt) string {
	rows := make([][]string, 0, len(attempts))
	for i, attempt := range attempts {
		outcome := attempt.Error
		if outcome == "" {
			outcome = "HTTP " + attempt.Status
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			attempt.Method,
			attempt.URL,
			outcome,
			yesNo(attempt.Succeeded),
		})
	}
	return renderTable(
		[]string{"#", "Method", "URL", "Outcome", "Accepted"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
	)
}

package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/nfrund/wabridge/cmd/wabridge-cli/internal/output"
)

func newMessagesCmd(opts *options) *cobra.Command {
	messagesCmd := &cobra.Command{
		Use:   "messages",
		Short: "Inspect and manage the relay's message log",
		Long: `The messages command reads and manages the relay's in-memory message log.

Examples:
  wabridge-cli messages list
  wabridge-cli messages list --format json
  wabridge-cli messages export -o messages.json
  wabridge-cli messages clear`,
	}

	messagesCmd.AddCommand(
		newMessagesListCmd(opts),
		newMessagesClearCmd(opts),
		newMessagesExportCmd(opts),
	)
	return messagesCmd
}

func newMessagesListCmd(opts *options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored messages in arrival order",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := output.CheckFormat(format); err != nil {
				return err
			}

			records, err := opts.client().Messages(cmd.Context())
			if err != nil {
				return err
			}

			if format == output.FormatJSON {
				return output.JSON(cmd.OutOrStdout(), records)
			}
			output.Messages(cmd.OutOrStdout(), records)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", output.FormatTable, "Output format (table, json)")
	return cmd
}

func newMessagesClearCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the message log on the relay",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.client().Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Message log cleared")
			return nil
		},
	}
}

func newMessagesExportCmd(opts *options) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the message log to a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := opts.client().Messages(cmd.Context())
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(records, "", "  ")
			if err != nil {
				return fmt.Errorf("encode messages: %w", err)
			}

			if dir := filepath.Dir(path); dir != "." {
				if err := opts.fs.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("create %s: %w", dir, err)
				}
			}
			if err := afero.WriteFile(opts.fs, path, append(data, '\n'), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d messages to %s\n", len(records), path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "output", "o", "messages.json", "File to write")
	return cmd
}

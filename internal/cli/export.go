package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/swift-glide/questdb-go/internal/store"
	"github.com/swift-glide/questdb-go/result"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	DBPath string
	Table  string
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export <response.json>",
		Short: "Write a saved query response into a local SQLite table",
		Long: `Write a saved query response into a local SQLite table.

Column affinities are mapped from the declared type labels; rows whose
length disagrees with the column count are skipped.

Example:
  qdbq export response.json --db snapshot.db --table trades`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "", "SQLite database path (required)")
	cmd.Flags().StringVar(&opts.Table, "table", "", "destination table name (required)")
	cmd.MarkFlagRequired("db")
	cmd.MarkFlagRequired("table")

	return cmd
}

func runExport(opts *ExportOptions, path string, cmd *cobra.Command) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	resp, err := result.Parse(payload)
	if err != nil {
		return err
	}
	if resp.Error != "" {
		return fmt.Errorf("response carries a server error: %s", resp.Error)
	}

	st, err := store.Open(opts.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	written, err := st.Export(cmd.Context(), opts.Table, resp.Columns, resp.Dataset)
	if err != nil {
		return err
	}

	f := &Formatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return f.Success(
		fmt.Sprintf("wrote %d row(s) to %s.%s", written, opts.DBPath, opts.Table),
		map[string]any{"rows": written, "db": opts.DBPath, "table": opts.Table},
	)
}

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/swift-glide/questdb-go/dynval"
	"github.com/swift-glide/questdb-go/result"
)

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <response.json>",
		Short: "Decode a saved query response and print its columns and rows",
		Long: `Decode a saved query response payload and print its columns and rows.

Example:
  qdbq inspect response.json --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runInspect(opts *RootOptions, path string, cmd *cobra.Command) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	resp, err := result.Parse(payload)
	if err != nil {
		return err
	}
	if resp.Error != "" {
		f := &Formatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		msg := fmt.Sprintf("server error at position %d: %s", resp.Position, resp.Error)
		if err := f.Error(msg); err != nil {
			return err
		}
		return errors.New(msg)
	}

	f := &Formatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if opts.Format == "json" {
		return f.Success("", inspectData(resp))
	}
	return f.Success(renderTable(resp), nil)
}

func inspectData(resp *result.Response) map[string]any {
	rows := make([][]json.RawMessage, len(resp.Dataset))
	for i, cells := range resp.Dataset {
		row := make([]json.RawMessage, len(cells))
		for j, cell := range cells {
			// Cells decoded successfully, so re-marshaling cannot fail.
			text, _ := dynval.Marshal(cell)
			row[j] = json.RawMessage(text)
		}
		rows[i] = row
	}
	return map[string]any{
		"query":   resp.Query,
		"columns": resp.Columns,
		"rows":    rows,
		"count":   resp.Count,
	}
}

func renderTable(resp *result.Response) string {
	var b strings.Builder
	if resp.Query != "" {
		fmt.Fprintf(&b, "query: %s\n", resp.Query)
	}

	headers := make([]string, len(resp.Columns))
	for i, col := range resp.Columns {
		headers[i] = fmt.Sprintf("%s (%s)", col.Name, col.Type)
	}
	b.WriteString(strings.Join(headers, " | "))
	b.WriteByte('\n')

	for _, cells := range resp.Dataset {
		fields := make([]string, len(cells))
		for i, cell := range cells {
			fields[i] = renderCell(cell)
		}
		b.WriteString(strings.Join(fields, " | "))
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "%d row(s)", len(resp.Dataset))
	return b.String()
}

func renderCell(v dynval.Value) string {
	if s, ok := v.(dynval.String); ok {
		return string(s)
	}
	text, err := dynval.Marshal(v)
	if err != nil {
		return fmt.Sprintf("<%T>", v)
	}
	return string(text)
}

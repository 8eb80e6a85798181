package cli

import (
	"github.com/spf13/cobra"

	"github.com/swift-glide/questdb-go/queryenc"
)

// EncodeOptions holds flags for the encode command.
type EncodeOptions struct {
	*RootOptions
	Params    string
	Arrays    string
	Separator string
	Dates     string
}

// NewEncodeCommand creates the encode command.
func NewEncodeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EncodeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode a YAML parameter document into a query string",
		Long: `Encode a YAML parameter document into a percent-encoded query string.

Nested mappings render as bracket notation (parent[child]=v); sequences
render per --arrays.

Example:
  qdbq encode --params params.yaml --arrays repeated`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Params, "params", "", "YAML parameter document (required)")
	cmd.Flags().StringVar(&opts.Arrays, "arrays", "bracketed", "array strategy (bracketed|separator|repeated)")
	cmd.Flags().StringVar(&opts.Separator, "separator", ",", "element separator for --arrays separator")
	cmd.Flags().StringVar(&opts.Dates, "dates", "epoch", "date encoding (epoch|iso8601)")
	cmd.MarkFlagRequired("params")

	return cmd
}

func runEncode(opts *EncodeOptions, cmd *cobra.Command) error {
	arrays, err := queryenc.ParseArrayStrategy(opts.Arrays)
	if err != nil {
		return err
	}
	dates, err := queryenc.ParseDateEncoding(opts.Dates)
	if err != nil {
		return err
	}

	doc, err := LoadParams(opts.Params)
	if err != nil {
		return err
	}

	enc := queryenc.NewEncoder(
		queryenc.WithArrayStrategy(arrays),
		queryenc.WithSeparator(opts.Separator),
		queryenc.WithDateEncoding(dates),
	)
	encoded, err := enc.Encode(doc)
	if err != nil {
		return err
	}

	f := &Formatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return f.Success(encoded, map[string]any{"query_string": encoded})
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
)

// Formatter handles JSON vs text output for CLI commands.
type Formatter struct {
	Format string
	Writer io.Writer
}

// cliResponse is the standard JSON response shape for CLI output: status is
// "ok" or "error", data carries the success payload.
type cliResponse struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Success outputs a successful result. In text mode, text is printed as-is;
// in JSON mode, data is wrapped in the standard response shape.
func (f *Formatter) Success(text string, data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(cliResponse{Status: "ok", Data: data})
	}
	_, err := fmt.Fprintln(f.Writer, text)
	return err
}

// Error outputs an error in the configured format.
func (f *Formatter) Error(message string) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(cliResponse{Status: "error", Error: message})
	}
	_, err := fmt.Fprintf(f.Writer, "Error: %s\n", message)
	return err
}

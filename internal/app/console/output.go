package console

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/dalemusser/tujitume/internal/app/system/paging"
	"github.com/spf13/cobra"
)

// readPayload returns the bytes named by a --json value: inline JSON,
// "@path" for a file, or "-" for stdin.
func readPayload(cmd *cobra.Command, value string) ([]byte, error) {
	switch {
	case value == "":
		return nil, fmt.Errorf("--json is required")
	case value == "-":
		return io.ReadAll(cmd.InOrStdin())
	case strings.HasPrefix(value, "@"):
		b, err := os.ReadFile(value[1:])
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", value[1:], err)
		}
		return b, nil
	default:
		return []byte(value), nil
	}
}

// decodePayload decodes a --json value into v. Unknown fields are rejected
// so a typo never silently drops an edit.
func decodePayload(cmd *cobra.Command, value string, v any) error {
	b, err := readPayload(cmd, value)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(strings.NewReader(string(b)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode --json: %w", err)
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printTable writes rows under header as aligned columns.
func printTable(w io.Writer, header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	return tw.Flush()
}

// printRange notes which rows a paged table shows when there is more than
// one page.
func printRange(w io.Writer, r paging.Range) {
	if r.Total == 0 || (r.Start == 1 && !r.HasNext()) {
		return
	}
	if r.Start == 0 {
		fmt.Fprintf(w, "No rows at this position (%d total)\n", r.Total)
		return
	}
	fmt.Fprintf(w, "Showing %d-%d of %d", r.Start, r.End, r.Total)
	if r.HasNext() {
		fmt.Fprintf(w, "; next page: --start %d", r.NextStart)
	}
	fmt.Fprintln(w)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

package cli

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/okian/benchboard/internal/domain/ranking"
	"github.com/okian/benchboard/internal/domain/score"
)

// Format selects how results are printed.
type Format string

// Output formats.
const (
	FormatTable    Format = "table"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

var (
	printer = message.NewPrinter(language.English)
	faint   = color.New(color.Faint).SprintFunc()
)

// ParseFormat accepts a format name in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(cases.Fold().String(strings.TrimSpace(s))); f {
	case FormatTable, FormatMarkdown, FormatJSON:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// table is a rendered grid; muted rows are printed faint in table output.
type table struct {
	header []string
	rows   [][]string
	muted  []bool
}

func (t *table) add(muted bool, cells ...string) {
	t.rows = append(t.rows, cells)
	t.muted = append(t.muted, muted)
}

// render writes data as JSON, or t as a table or markdown grid.
func render(w io.Writer, format Format, data any, t *table) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case FormatMarkdown:
		return writeMarkdown(w, t)
	default:
		return writeTable(w, t)
	}
}

func writeTable(w io.Writer, t *table) error {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.ToUpper(strings.Join(t.header, "\t")))
	for _, row := range t.rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	// Style whole lines after alignment so escape codes do not skew widths.
	sc := bufio.NewScanner(&buf)
	for i := 0; sc.Scan(); i++ {
		line := sc.Text()
		if i > 0 && t.muted[i-1] {
			line = faint(line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return sc.Err()
}

func writeMarkdown(w io.Writer, t *table) error {
	fmt.Fprintln(w, "| "+strings.Join(t.header, " | ")+" |")
	fmt.Fprintln(w, "|"+strings.Repeat("---|", len(t.header)))
	for _, row := range t.rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = strings.ReplaceAll(c, "|", `\|`)
		}
		if _, err := fmt.Fprintln(w, "| "+strings.Join(cells, " | ")+" |"); err != nil {
			return err
		}
	}
	return nil
}

func rankCell(s ranking.Standing) string {
	if s.Rank == nil {
		return "-"
	}
	return strconv.Itoa(*s.Rank)
}

func scoreCell(v float64) string {
	if v == score.Missing {
		return "n/a"
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func optionalCell(o score.Optional) string {
	return scoreCell(o.OrMissing())
}

func countCell(n int) string {
	return printer.Sprintf("%d", n)
}

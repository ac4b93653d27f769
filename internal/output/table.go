package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathanvale/cortex/internal/models"
)

// TitleWidth caps the TITLE column.
const TitleWidth = 40

// EmptyTable is printed instead of a table with no rows.
const EmptyTable = "No documents found."

const missing = "-"

var columns = []string{"TYPE", "STATUS", "PROJECT", "TITLE", "CREATED"}

const titleCol = 3

func row(d models.Document) []string {
	fm := d.Frontmatter
	title := d.Stem
	if fm.Title != nil {
		title = *fm.Title
	}
	return []string{orMissing(fm.Type), orMissing(fm.Status), orMissing(fm.Project), title, orMissing(fm.Created)}
}

func orMissing(p *string) string {
	if p == nil {
		return missing
	}
	return *p
}

// Table renders docs as an aligned table. The header is bold when w is a
// terminal that supports it.
func Table(w io.Writer, docs []models.Document) string {
	if len(docs) == 0 {
		return EmptyTable
	}

	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, strings.Join(columns, "\t"))
	_, _ = fmt.Fprintln(tw, "----\t------\t-------\t-----\t-------")
	for _, d := range docs {
		cells := row(d)
		cells[titleCol] = truncate(cells[titleCol], TitleWidth)
		_, _ = fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	_ = tw.Flush()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	// Styled after alignment so escape codes do not count toward widths.
	lines[0] = lipgloss.NewRenderer(w).NewStyle().Bold(true).Render(lines[0])
	return strings.Join(lines, "\n")
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "~"
}

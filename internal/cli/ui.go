package cli

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/MatthieuRouland/effectsize/pkg/params"
	"github.com/MatthieuRouland/effectsize/pkg/standardize"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleHeader      = lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	styleCell        = lipgloss.NewStyle().Padding(0, 1)
	styleNumberCell  = styleCell.Align(lipgloss.Right)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconArrow   = "→"
)

// missing is printed for values that are NaN or infinite.
const missing = "NA"

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

func printWarning(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(msg))
}

// printFile prints a file output line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(w io.Writer, key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Fprintln(w, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// =============================================================================
// Tables
// =============================================================================

// formatNumber renders v with the given number of decimals, or [missing].
func formatNumber(v float64, digits int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return missing
	}
	return strconv.FormatFloat(v, 'f', digits, 64)
}

// renderGrid draws a bordered table whose first column is a label and
// whose other columns are numbers.
func renderGrid(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader
			case col == 0:
				return styleCell
			}
			return styleNumberCell
		}).
		Render()
}

// renderTable draws a standardized parameter table. The CI column holds a
// single level and is folded into the interval header.
func renderTable(tbl *params.Table, digits int) string {
	var cols []string
	ci := math.NaN()
	for _, c := range tbl.Columns() {
		if c == params.ColCI {
			if tbl.Len() > 0 {
				ci = tbl.Value(0, c)
			}
			continue
		}
		cols = append(cols, c)
	}

	headers := append([]string{"Parameter"}, cols...)
	for i, h := range headers {
		switch h {
		case params.ColCILow, params.ColCIHigh:
			if !math.IsNaN(ci) {
				headers[i] = fmt.Sprintf("%s (%g%%)", h, math.Round(ci*1e4)/1e2)
			}
		}
	}

	rows := make([][]string, 0, tbl.Len())
	for _, r := range tbl.Rows() {
		line := []string{r.Parameter}
		for _, c := range cols {
			line = append(line, formatNumber(r.Value(c), digits))
		}
		rows = append(rows, line)
	}
	return renderGrid(headers, rows)
}

// renderScaleFactors draws the deviations of every parameter.
func renderScaleFactors(sf *params.ScaleFactors, digits int) string {
	headers := []string{"Parameter", "Type"}
	for _, c := range params.ScaleColumns() {
		headers = append(headers, strings.TrimPrefix(string(c), "Deviation_"))
	}

	rows := make([][]string, 0, sf.Len())
	for _, f := range sf.Rows() {
		line := []string{f.Parameter, f.Type}
		for _, c := range params.ScaleColumns() {
			line = append(line, formatNumber(f.Get(c), digits))
		}
		rows = append(rows, line)
	}
	return renderGrid(headers, rows)
}

// printMetadata prints how a result was produced. Fallback warnings are
// already logged by the checker.
func printMetadata(w io.Writer, md standardize.Metadata) {
	method := string(md.Method)
	if md.Requested != "" && md.Requested != md.Method {
		method = fmt.Sprintf("%s (requested %s)", md.Method, md.Requested)
	}
	printKeyValue(w, "Method", method)
	if md.Robust {
		printKeyValue(w, "Deviations", "median / MAD")
	}
	if md.TwoSD {
		printKeyValue(w, "Scale", "2 SD")
	}
	if md.ExcludeResponse {
		printKeyValue(w, "Response", "unstandardized")
	}
}

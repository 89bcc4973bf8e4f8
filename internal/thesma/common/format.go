package common

import (
	"fmt"
	"strings"
)

// Magnitude thresholds for unit suffixes. Values at or above a threshold are
// divided down and suffixed: 1e12 -> "T", 1e9 -> "B", 1e6 -> "M", 1e3 -> "K".
const (
	unitTrillion = 1e12
	unitBillion  = 1e9
	unitMillion  = 1e6
	unitThousand = 1e3
)

// FormatCurrency formats a number as a dollar amount with unit suffix.
// Returns "N/A" for nil.
func FormatCurrency(v *float64, decimals int) string {
	if v == nil {
		return "N/A"
	}
	return "$" + formatWithUnit(*v, decimals)
}

// FormatNumber formats a number with unit suffix (no dollar sign).
// Returns "N/A" for nil.
func FormatNumber(v *float64, decimals int) string {
	if v == nil {
		return "N/A"
	}
	return formatWithUnit(*v, decimals)
}

// FormatPercent formats an already-percent-scaled value (42.5 means 42.5%).
// Returns "N/A" for nil. Negative values carry a "-" prefix, never parentheses.
func FormatPercent(v *float64, decimals int) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.*f%%", decimals, *v)
}

// FormatFractionPercent formats a fraction (0.425 means 42.5%) as a percent.
// Returns "N/A" for nil.
func FormatFractionPercent(v *float64, decimals int) string {
	if v == nil {
		return "N/A"
	}
	scaled := *v * 100
	return FormatPercent(&scaled, decimals)
}

// FormatShares formats a number as comma-separated whole shares.
// Returns "N/A" for nil.
func FormatShares(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return FormatInt(int64(*v)) + " shares"
}

// FormatInt formats an integer with comma thousands separators.
func FormatInt(v int64) string {
	negative := v < 0
	if negative {
		v = -v
	}
	s := fmt.Sprintf("%d", v)
	if len(s) > 3 {
		var parts []string
		for len(s) > 3 {
			parts = append([]string{s[len(s)-3:]}, parts...)
			s = s[:len(s)-3]
		}
		parts = append([]string{s}, parts...)
		s = strings.Join(parts, ",")
	}
	if negative {
		return "-" + s
	}
	return s
}

// formatWithUnit formats a number with a T/B/M/K unit suffix.
func formatWithUnit(value float64, decimals int) string {
	abs := value
	sign := ""
	if abs < 0 {
		abs = -abs
		sign = "-"
	}

	switch {
	case abs >= unitTrillion:
		return fmt.Sprintf("%s%.*fT", sign, decimals, abs/unitTrillion)
	case abs >= unitBillion:
		return fmt.Sprintf("%s%.*fB", sign, decimals, abs/unitBillion)
	case abs >= unitMillion:
		return fmt.Sprintf("%s%.*fM", sign, decimals, abs/unitMillion)
	case abs >= unitThousand:
		return fmt.Sprintf("%s%.*fK", sign, decimals, abs/unitThousand)
	default:
		if abs != float64(int64(abs)) || decimals > 0 {
			return fmt.Sprintf("%s%.*f", sign, decimals, abs)
		}
		return fmt.Sprintf("%s%d", sign, int64(abs))
	}
}

// FormatTable formats data as an aligned plain-text table with a dashed
// separator under the header. Alignments are per-column, "l" or "r";
// nil defaults to left for all columns. Rows shorter than the header are
// padded with empty cells.
func FormatTable(headers []string, rows [][]string, alignments []string) string {
	if len(rows) == 0 {
		return ""
	}

	if alignments == nil {
		alignments = make([]string, len(headers))
		for i := range alignments {
			alignments[i] = "l"
		}
	}

	cell := func(row []string, i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i := range headers {
			if l := len(cell(row, i)); l > widths[i] {
				widths[i] = l
			}
		}
	}

	formatRow := func(row []string) string {
		cells := make([]string, len(headers))
		for i := range headers {
			c := cell(row, i)
			if i < len(alignments) && alignments[i] == "r" {
				cells[i] = fmt.Sprintf("%*s", widths[i], c)
			} else {
				cells[i] = fmt.Sprintf("%-*s", widths[i], c)
			}
		}
		return strings.Join(cells, "  ")
	}

	lines := []string{formatRow(headers)}
	dashes := make([]string, len(widths))
	for i, w := range widths {
		dashes[i] = strings.Repeat("-", w)
	}
	lines = append(lines, strings.Join(dashes, "  "))
	for _, row := range rows {
		lines = append(lines, formatRow(row))
	}

	return strings.Join(lines, "\n")
}

// FormatSource produces a source attribution line for a filing type,
// optional accession number, and optional data source label.
func FormatSource(filingType, accession, dataSource string) string {
	sourceLabel := dataSource
	switch dataSource {
	case "ixbrl":
		sourceLabel = "iXBRL"
	case "companyfacts":
		sourceLabel = "CompanyFacts"
	}

	if accession != "" {
		suffix := ""
		if sourceLabel != "" {
			suffix = fmt.Sprintf(" (%s)", sourceLabel)
		}
		return fmt.Sprintf("Source: SEC EDGAR, %s filing %s%s", filingType, accession, suffix)
	}
	return fmt.Sprintf("Source: SEC EDGAR, %s filings.", filingType)
}

// FormatPagination produces a one-line count summary. The sort description,
// when present, is appended as "sorted by ...".
func FormatPagination(shown, total int, sortDescription string) string {
	var base string
	switch {
	case shown == total:
		plural := "s"
		if total == 1 {
			plural = ""
		}
		base = fmt.Sprintf("%d result%s found.", total, plural)
	case shown < total:
		base = fmt.Sprintf("Showing 1-%d of %d.", shown, total)
	default:
		base = fmt.Sprintf("%d results shown.", shown)
	}

	if sortDescription != "" {
		base = strings.TrimSuffix(base, ".") + fmt.Sprintf(" sorted by %s.", sortDescription)
	}
	return base
}

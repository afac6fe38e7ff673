// Package export renders the results log for download.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/mind-engage/docexam/internal/exam"
)

// DisplayLayout mirrors "%b %d, %Y, %H:%M:%S %p": a 24-hour clock followed
// by an AM/PM marker.
const DisplayLayout = "Jan 02, 2006, 15:04:05 PM"

var Header = []string{"Student Name", "Score", "Total", "Percentage", "Started", "Submitted", "Duration"}

// accepted timestamp shapes, tried in order
var inputLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// JSON writes the results verbatim with two-space indentation.
func JSON(w io.Writer, results []exam.Result) error {
	b, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// CSV writes one header row and one row per result.
func CSV(w io.Writer, results []exam.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range results {
		if err := cw.Write(Row(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Row flattens a result into the CSV columns.
func Row(r exam.Result) []string {
	name := r.StudentName
	if name == "" {
		name = "Unknown"
	}
	submitted := r.Timestamp
	if r.SubmittedAt != nil {
		submitted = *r.SubmittedAt
	}
	return []string{
		name,
		strconv.Itoa(r.Score),
		strconv.Itoa(r.Total),
		formatPercentage(r) + "%",
		FormatTimestamp(deref(r.StartedAt)),
		FormatTimestamp(submitted),
		Duration(r.StartedAt, r.SubmittedAt),
	}
}

// FormatTimestamp renders s with DisplayLayout, or "" when it does not parse.
func FormatTimestamp(s string) string {
	t, ok := parseTimestamp(s)
	if !ok {
		return ""
	}
	return t.Format(DisplayLayout)
}

// Duration is submitted minus started as "{m}m {s}s" with floored minutes,
// or "N/A" when either side is missing or unparseable.
func Duration(started, submitted *string) string {
	if started == nil || submitted == nil {
		return "N/A"
	}
	a, okA := parseTimestamp(*started)
	b, okB := parseTimestamp(*submitted)
	if !okA || !okB {
		return "N/A"
	}
	secs := b.Sub(a).Seconds()
	minutes := math.Floor(secs / 60)
	rem := int(secs - minutes*60)
	return fmt.Sprintf("%dm %ds", int(minutes), rem)
}

// Filename is the attachment name for an export produced at now.
func Filename(now time.Time, ext string) string {
	return "exam_results_" + now.Format("2006-01-02") + "." + ext
}

func parseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// whole percentages keep one decimal ("100.0"); an empty exam is plain "0"
func formatPercentage(r exam.Result) string {
	if r.Total == 0 {
		return "0"
	}
	if r.Percentage == math.Trunc(r.Percentage) {
		return strconv.FormatFloat(r.Percentage, 'f', 1, 64)
	}
	return strconv.FormatFloat(r.Percentage, 'f', -1, 64)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

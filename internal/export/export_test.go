package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/mind-engage/docexam/internal/exam"
)

func ptr(s string) *string { return &s }

func TestRow(t *testing.T) {
	cases := []struct {
		name string
		in   exam.Result
		want []string
	}{
		{
			name: "full",
			in: exam.Result{StudentName: "Ada", Score: 2, Total: 3, Percentage: 66.67,
				StartedAt: ptr("2025-01-02T09:58:30Z"), SubmittedAt: ptr("2025-01-02T10:03:05Z"),
				Timestamp: "2025-01-02T10:03:06"},
			want: []string{"Ada", "2", "3", "66.67%", "Jan 02, 2025, 09:58:30 AM", "Jan 02, 2025, 10:03:05 AM", "4m 35s"},
		},
		{
			name: "afternoon keeps 24h hour",
			in: exam.Result{StudentName: "Bo", Score: 1, Total: 1, Percentage: 100,
				StartedAt: ptr("2025-03-04T14:00:00"), SubmittedAt: ptr("2025-03-04T14:00:59.900"),
				Timestamp: "2025-03-04T14:01:00"},
			want: []string{"Bo", "1", "1", "100.0%", "Mar 04, 2025, 14:00:00 PM", "Mar 04, 2025, 14:00:59 PM", "0m 59s"},
		},
		{
			name: "missing timestamps",
			in:   exam.Result{Score: 0, Total: 0, Percentage: 0, Timestamp: "2025-05-06T07:08:09.123456"},
			want: []string{"Unknown", "0", "0", "0%", "", "May 06, 2025, 07:08:09 AM", "N/A"},
		},
		{
			name: "garbage timestamp",
			in: exam.Result{StudentName: "Cy", Total: 2, Percentage: 0,
				StartedAt: ptr("yesterday"), SubmittedAt: ptr("2025-01-01T00:00:00Z")},
			want: []string{"Cy", "0", "2", "0.0%", "", "Jan 01, 2025, 00:00:00 AM", "N/A"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Row(tc.in)
			if len(got) != len(tc.want) {
				t.Fatalf("len: got %v", got)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("%s: want %q, got %q", Header[i], tc.want[i], got[i])
				}
			}
		})
	}
}

func TestDurationNegative(t *testing.T) {
	// floored minutes, non-negative remainder
	if got := Duration(ptr("2025-01-01T00:01:00"), ptr("2025-01-01T00:00:30")); got != "-1m 30s" {
		t.Fatalf("got %q", got)
	}
}

func TestCSV(t *testing.T) {
	var buf bytes.Buffer
	rs := []exam.Result{
		{StudentName: "Doe, Jane", Score: 1, Total: 2, Percentage: 50, Timestamp: "2025-01-02T10:00:00"},
	}
	if err := CSV(&buf, rs); err != nil {
		t.Fatalf("csv: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(rows) != 2 || rows[0][0] != "Student Name" || rows[1][0] != "Doe, Jane" || rows[1][3] != "50.0%" {
		t.Fatalf("unexpected rows: %q", rows)
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	rs := []exam.Result{{ID: "r1", Score: 1, Total: 1, Percentage: 100, Answers: exam.AnswerSet{"q1": "4"}}}
	if err := JSON(&buf, rs); err != nil {
		t.Fatalf("json: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("\n  {\n    \"id\": \"r1\"")) {
		t.Fatalf("expected two-space indentation, got %s", buf.String())
	}
	var back []exam.Result
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil || back[0].Answers["q1"] != "4" {
		t.Fatalf("dump not verbatim: %v %+v", err, back)
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2025, 7, 9, 23, 0, 0, 0, time.UTC)
	if got := Filename(now, "csv"); got != "exam_results_2025-07-09.csv" {
		t.Fatalf("got %q", got)
	}
}

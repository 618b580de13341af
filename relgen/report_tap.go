package relgen

import (
	"fmt"
	"io"

	tap "github.com/mndrix/tap-go"
)

// WriteTAP streams report as TAP-13 for CI consumption: one assertion per
// table (passing when the table is valid) plus one failing assertion per
// violation, with t.Diagnostic attaching the violation detail.
func WriteTAP(w io.Writer, report Report) {
	t := tap.New()
	t.Writer = w

	total := 0
	for _, tr := range report.Tables {
		total += 1 + len(tr.Errors)
	}
	if total == 0 {
		total = 1
	}
	t.Header(total)

	for tableName, tr := range report.Tables {
		t.Ok(tr.Valid, fmt.Sprintf("%s: all constraints satisfied", tableName))
		for _, e := range tr.Errors {
			t.Ok(false, fmt.Sprintf("%s: %s", tableName, e.Type))
			t.Diagnostic(fmt.Sprintf("row=%d column=%s message=%s", e.RowIndex, e.Column, e.Message))
		}
	}
}

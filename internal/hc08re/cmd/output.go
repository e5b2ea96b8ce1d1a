package cmd

import (
	"fmt"
	"io"

	"hc08re/internal/report"
)

// runJSON prints the report as indented JSON.
func runJSON(w io.Writer, rep *report.Report) error {
	jsonData, err := rep.JSON()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(jsonData))
	return nil
}

// runNoTUI prints the plain markdown summary.
func runNoTUI(w io.Writer, rep *report.Report, showFull bool) error {
	_, err := fmt.Fprint(w, rep.Markdown(showFull))
	return err
}

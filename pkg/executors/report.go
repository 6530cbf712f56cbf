package executors

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/yurifrl/termsheet/pkg/service"
)

// Report collects the results of a batch conversion.
type Report struct {
	Results []service.Result
}

var (
	convertedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	summaryStyle   = lipgloss.NewStyle().Bold(true)
)

// Converted returns how many documents were written.
func (r *Report) Converted() int {
	n := 0
	for _, res := range r.Results {
		if res.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns how many documents could not be converted.
func (r *Report) Failed() int {
	return len(r.Results) - r.Converted()
}

// Fields returns the total number of fields written.
func (r *Report) Fields() int {
	n := 0
	for _, res := range r.Results {
		n += res.Fields
	}
	return n
}

func (r *Report) Print(w io.Writer) {
	for _, res := range r.Results {
		if res.Err != nil {
			fmt.Fprintln(w, failedStyle.Render(fmt.Sprintf("x %s : %v", res.Input, res.Err)))
			continue
		}
		fmt.Fprintln(w, convertedStyle.Render(fmt.Sprintf("= %s -> %s (%d fields)", res.Input, res.Output, res.Fields)))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, summaryStyle.Render(fmt.Sprintf("Apply: %d converted, %d failed, %d fields written", r.Converted(), r.Failed(), r.Fields())))
}

package executors

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/yurifrl/termsheet/pkg/parser"
	"github.com/yurifrl/termsheet/pkg/plan"
)

// Change is the planned outcome for one document of a plan.
type Change struct {
	File   string
	Output string
	Ready  bool
	Reason string
}

var (
	readyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	blockedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
)

// Plan checks every document of p without converting anything and prints a
// preview line per document.
func (e *Executor) Plan(p *plan.Plan) []Change {
	e.logger.Debug("planning documents", "count", len(p.Documents))

	changes := make([]Change, 0, len(p.Documents))
	for _, d := range p.Documents {
		c := Change{File: d.File, Output: e.processor.Destination(d.File, d.Output)}

		switch info, err := os.Stat(d.File); {
		case err != nil:
			c.Reason = "file not found"
		case info.IsDir():
			c.Reason = "is a directory"
		case !parser.Supported(d.File):
			c.Reason = "unsupported file type"
		default:
			c.Ready = true
		}
		changes = append(changes, c)

		if c.Ready {
			fmt.Fprintln(e.out, readyStyle.Render(fmt.Sprintf("+ %s -> %s", c.File, c.Output)))
		} else {
			fmt.Fprintln(e.out, blockedStyle.Render(fmt.Sprintf("! %s : %s", c.File, c.Reason)))
		}
	}

	ready := 0
	for _, c := range changes {
		if c.Ready {
			ready++
		}
	}
	fmt.Fprintf(e.out, "\nPlan: %d document(s) will be converted, %d skipped\n", ready, len(changes)-ready)
	return changes
}

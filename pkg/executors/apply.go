package executors

import (
	"github.com/yurifrl/termsheet/pkg/plan"
)

// Apply converts every document of p and prints the batch report. A failing
// document does not stop the batch.
func (e *Executor) Apply(p *plan.Plan) *Report {
	e.logger.Debug("applying plan", "documents", len(p.Documents))

	report := &Report{}
	for _, d := range p.Documents {
		opts := e.processor.Options()
		if d.ProcessingDate != "" {
			opts.ProcessingDate = d.ProcessingDate
		}
		if d.Debug != nil {
			opts.Debug = *d.Debug
		}

		res := e.processor.ProcessFileTo(d.File, d.Output, opts)
		if res.Err != nil {
			e.logger.Warn("failed to convert document", "file", d.File, "error", res.Err)
		} else {
			e.logger.Info("converted document", "file", d.File, "output", res.Output, "fields", res.Fields)
		}
		report.Results = append(report.Results, res)
	}

	report.Print(e.out)
	return report
}

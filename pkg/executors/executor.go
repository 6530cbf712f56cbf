package executors

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/yurifrl/termsheet/pkg/service"
)

type Executor struct {
	logger    *log.Logger
	processor *service.Processor
	out       io.Writer
}

// New returns an Executor printing its preview and report to out.
func New(logger *log.Logger, processor *service.Processor, out io.Writer) *Executor {
	return &Executor{
		logger:    logger,
		processor: processor,
		out:       out,
	}
}

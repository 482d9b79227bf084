package engine

import (
	"log/slog"

	"github.com/origadmin/recgen/internal/model"
)

// LogReporter appends diagnostics to the process log and counts errors so
// the command can choose its exit status after the round completes.
type LogReporter struct {
	errors int
}

// NewLogReporter creates a LogReporter.
func NewLogReporter() *LogReporter {
	return &LogReporter{}
}

// Report logs one diagnostic at the offending node.
func (r *LogReporter) Report(d model.Diagnostic) {
	node := ""
	if d.Node != nil {
		node = d.Node.QualifiedName()
	}
	switch d.Severity {
	case model.Error:
		r.errors++
		slog.Error(d.Message, "node", node)
	default:
		slog.Info(d.Message, "node", node)
	}
}

// Errors returns the number of ERROR diagnostics reported so far.
func (r *LogReporter) Errors() int {
	return r.errors
}

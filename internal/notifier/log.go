package notifier

import (
	"log/slog"

	"github.com/amishk599/jobboard/internal/model"
)

// Ensure LogNotifier implements model.Notifier.
var _ model.Notifier = (*LogNotifier)(nil)

// LogNotifier writes new job matches to the given logger as structured messages.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a notifier that logs each job via slog.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs one line per job. Optional fields are only logged when present.
// Returns nil (stdout logging does not fail).
func (n *LogNotifier) Notify(jobs []model.Job) error {
	for _, j := range jobs {
		args := []any{"id", j.ID, "company", j.Company, "title", j.Title}
		for _, opt := range [...]struct{ key, val string }{
			{"location", j.Location},
			{"type", j.Type},
			{"salary", j.Salary},
			{"posted", j.Posted},
			{"url", j.URL},
		} {
			if opt.val != "" {
				args = append(args, opt.key, opt.val)
			}
		}
		n.logger.Info("new job", args...)
	}
	return nil
}

package observe

import (
	"log/slog"
	"time"
)

// Logging writes engine events to a structured logger. Builds and
// propagation runs are logged at debug level, failures at warn.
type Logging struct {
	logger *slog.Logger
	slow   time.Duration
}

// NewLogging creates a slog reporter. A nil logger uses slog.Default().
func NewLogging(logger *slog.Logger) *Logging {
	if logger == nil {
		logger = slog.Default()
	}
	return &Logging{logger: logger.With("component", "reactive")}
}

// WithSlowThreshold makes propagation runs slower than d log at warn
// level. Zero disables it.
func (l *Logging) WithSlowThreshold(d time.Duration) *Logging {
	l.slow = d
	return l
}

func (l *Logging) FieldBuilt(name string, d time.Duration) {
	l.logger.Debug("field built", "field", name, "duration", d)
}

func (l *Logging) Propagated(op string, d time.Duration) {
	if l.slow > 0 && d >= l.slow {
		l.logger.Warn("slow propagation", "op", op, "duration", d)
		return
	}
	l.logger.Debug("propagated", "op", op, "duration", d)
}

func (l *Logging) SignalFailed(err error) {
	l.logger.Warn("signal failed", "code", failureCode(err), "error", err)
}

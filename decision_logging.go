package authoring

import "time"

// DecisionOp identifies the operation a log event describes.
type DecisionOp string

const (
	// DecisionOpState is an IsStateActive verdict.
	DecisionOpState DecisionOp = "state"
	// DecisionOpMode is a single mode predicate verdict.
	DecisionOpMode DecisionOp = "mode"
	// DecisionOpRule is a custom rule evaluation.
	DecisionOpRule DecisionOp = "rule"
)

// DecisionLogEvent describes a detection decision for logging.
type DecisionLogEvent struct {
	Op       DecisionOp
	Page     string
	Mode     Mode
	State    State
	Engine   string
	Expr     string
	Active   bool
	Duration time.Duration
	Err      error
}

// DecisionLogger records detection decisions.
type DecisionLogger interface {
	LogDecision(DecisionLogEvent)
}

// DecisionLoggerFunc adapts a function to DecisionLogger.
type DecisionLoggerFunc func(DecisionLogEvent)

// LogDecision implements DecisionLogger.
func (f DecisionLoggerFunc) LogDecision(event DecisionLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopDecisionLogger struct{}

func (noopDecisionLogger) LogDecision(DecisionLogEvent) {}

// WithDecisionLogger attaches a decision logger to the Utils instance.
func WithDecisionLogger(logger DecisionLogger) Option {
	return func(cfg *utilsConfig) {
		if logger == nil {
			cfg.logger = noopDecisionLogger{}
			return
		}
		cfg.logger = logger
	}
}

package widget

import "github.com/bitrise-io/go-utils/v2/log"

// Level is the severity of a user notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Notifier shows a short message to the user.
type Notifier interface {
	Notify(level Level, message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(level Level, message string)

// Notify ...
func (f NotifierFunc) Notify(level Level, message string) {
	f(level, message)
}

type logNotifier struct {
	logger log.Logger
}

// NewLogNotifier returns a Notifier that prints notifications with logger.
func NewLogNotifier(logger log.Logger) Notifier {
	return logNotifier{logger: logger}
}

func (n logNotifier) Notify(level Level, message string) {
	switch level {
	case LevelSuccess:
		n.logger.Donef(message)
	case LevelError:
		n.logger.Errorf(message)
	default:
		n.logger.Infof(message)
	}
}

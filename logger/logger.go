// Package logger defines the logging surface the ecs module writes to.
// Fields are alternating key/value pairs in the zap sugared style.
package logger

type Logger interface {
	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
}

// Noop discards everything. It is the default for library consumers who do
// not opt into logging.
type Noop struct{}

func (Noop) Debugw(string, ...interface{}) {}
func (Noop) Infow(string, ...interface{})  {}
func (Noop) Warnw(string, ...interface{})  {}
func (Noop) Errorw(string, ...interface{}) {}

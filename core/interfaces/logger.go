package interfaces

// Logger is the structured logger the core and infrastructure write to.
// Fields may be nil. Severity-aware logging of RuntimeErrors goes through
// pkg/errlog, which picks the method from the error's severity.
//
//	logger.Info("Feed cleaned", map[string]interface{}{
//		"url":  "https://example.com/feed.xml",
//		"kept": 42,
//	})
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

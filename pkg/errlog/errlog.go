// ABOUTME: Logs RuntimeErrors at the level implied by their severity
// ABOUTME: Flattens the causal chain into structured fields for the Logger interface

package errlog

import (
	"podclean-api/core/errors"
	"podclean-api/core/interfaces"
	"podclean-api/core/severity"
)

// Level names the Logger method used for a severity. Unclassified errors are
// logged as errors.
func Level(s severity.Severity) string {
	switch s {
	case severity.Debug:
		return "debug"
	case severity.Info:
		return "info"
	case severity.Warning:
		return "warn"
	default:
		return "error"
	}
}

// Fields renders e and its chain as log fields.
func Fields(e *errors.RuntimeError) map[string]interface{} {
	if e == nil {
		return map[string]interface{}{}
	}
	fields := map[string]interface{}{
		"type":     e.Type,
		"message":  e.Message,
		"severity": e.Severity.String(),
	}
	if len(e.Payload) > 0 {
		fields["payload"] = e.Payload
	} else if len(e.PayloadList) > 0 {
		fields["payload"] = e.PayloadList
	}

	chain := e.Chain()
	if len(chain) > 1 {
		fields["cause_types"] = e.Types()[1:]
	}
	if len(chain) > 0 {
		// foreign failure at the bottom of the chain
		if last := chain[len(chain)-1]; last.Cause != nil && last.Cause.Err == nil {
			fields["root_cause"] = last.Cause.String()
		}
	}
	return fields
}

// Log writes e to logger under msg. A nil error is ignored.
func Log(logger interfaces.Logger, msg string, e *errors.RuntimeError) {
	if logger == nil || e == nil {
		return
	}
	fields := Fields(e)
	switch Level(e.Severity) {
	case "debug":
		logger.Debug(msg, fields)
	case "info":
		logger.Info(msg, fields)
	case "warn":
		logger.Warn(msg, fields)
	default:
		logger.Error(msg, fields)
	}
}

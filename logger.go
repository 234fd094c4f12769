package lcrf

import "k8s.io/klog/v2"

// LogFunc is the logging/cancellation callback threaded through feature
// generation, the encoder's set_data/save_model, and every trainer's
// epoch loop. A LogFunc returns 0 to continue normally; any non-zero
// return is a cancellation request. The inference context and encoder
// never originate a cancel themselves (they don't call LogFunc mid
// instance) — only a training loop's own per-epoch call site checks the
// return value and stops early.
type LogFunc func(format string, args ...interface{}) int

// NopLogger discards every message and never cancels.
func NopLogger(string, ...interface{}) int { return 0 }

// KlogLogger returns a LogFunc that forwards to klog at the given
// verbosity level and never cancels, the default sink cmd/crfsuite wires
// when the caller supplies no LogFunc of its own.
func KlogLogger(level klog.Level) LogFunc {
	return func(format string, args ...interface{}) int {
		klog.V(level).Infof(format, args...)
		return 0
	}
}

// OrDefault returns logger if non-nil, otherwise KlogLogger(level).
func OrDefault(logger LogFunc, level klog.Level) LogFunc {
	if logger != nil {
		return logger
	}
	return KlogLogger(level)
}

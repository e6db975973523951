package impls

// Logger is the leveled printf-style logger shared by all components.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

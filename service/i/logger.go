package i

// Logger is the leveled logger used across the services.
type Logger interface {
	Debug(string)
	Info(string)
	Warn(string)
	Error(string)
}

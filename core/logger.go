package core

// Logger is any service that can log messages with increasing severity.
// Trailing args are implementation-defined; the Rollbar implementation picks a
// student.Student out of them to attach the acting user to the report.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

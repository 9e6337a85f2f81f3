package logger

import (
	"fmt"
	"os"
)

// Init prepares the default logger before config is loaded.
// InitStructured should be called once the environment is known.
func Init() {
	if os.Getenv("APP_ENV") == "" {
		InitStructured("local")
		return
	}
	InitStructured(os.Getenv("APP_ENV"))
}

// Info logs a formatted message at info level
func Info(format string, args ...interface{}) {
	zlog.Info().Msg(fmt.Sprintf(format, args...))
}

// Warn logs a formatted message at warn level
func Warn(format string, args ...interface{}) {
	zlog.Warn().Msg(fmt.Sprintf(format, args...))
}

// Error logs a formatted message at error level
func Error(format string, args ...interface{}) {
	zlog.Error().Msg(fmt.Sprintf(format, args...))
}

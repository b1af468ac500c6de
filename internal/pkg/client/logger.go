package client

import (
	"fmt"
	"regexp"

	"go.uber.org/zap"
)

const loggerPrefix = "HTTP%s\t"

// Logger for HTTP client, all messages are logged to the debug level and
// tokens are masked.
type Logger struct {
	logger *zap.SugaredLogger
}

func (l *Logger) Debugf(format string, v ...interface{}) {
	l.logWithoutSecrets("", format, v...)
}

func (l *Logger) Warnf(format string, v ...interface{}) {
	l.logWithoutSecrets("-WARN", format, v...)
}

func (l *Logger) Errorf(format string, v ...interface{}) {
	l.logWithoutSecrets("-ERROR", format, v...)
}

func (l *Logger) logWithoutSecrets(level string, format string, v ...interface{}) {
	v = append([]interface{}{level}, v...)
	msg := fmt.Sprintf(loggerPrefix+format, v...)
	msg = maskSecrets(msg)
	l.logger.Debug(msg)
}

func maskSecrets(str string) string {
	return regexp.MustCompile(`(?i)(token:?\s*|bearer\s+)[^\s]+`).ReplaceAllString(str, "$1*****")
}

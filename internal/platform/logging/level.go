package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"
)

type Level = zapcore.Level

const (
	LevelDebug = zapcore.DebugLevel
	LevelInfo  = zapcore.InfoLevel
	LevelWarn  = zapcore.WarnLevel
	LevelError = zapcore.ErrorLevel
)

// ParseLevel accepts debug, info, warn (or warning) and error in any case.
// An empty value is info.
func ParseLevel(v string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "":
		return LevelInfo, nil
	case "warning":
		return LevelWarn, nil
	}
	var level Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(v))); err != nil {
		return LevelInfo, err
	}
	if level > LevelError {
		return LevelInfo, fmt.Errorf("log level %q is not supported", v)
	}
	return level, nil
}

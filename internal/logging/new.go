package logging

import (
	"fmt"
	"io"
	"log/slog"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Supported values for the log_format setting.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatZap  = "zap"
)

// New builds a Logger writing to w. format is one of FormatText, FormatJSON
// (both slog) or FormatZap; level is debug, info, warn or error.
func New(format, level string, w io.Writer) (Logger, error) {
	switch format {
	case FormatText, FormatJSON, "":
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("log level %q: %w", level, err)
		}
		opts := &slog.HandlerOptions{Level: lvl}
		if format == FormatJSON {
			return NewSlogLogger(slog.New(slog.NewJSONHandler(w, opts))), nil
		}
		return NewSlogLogger(slog.New(slog.NewTextHandler(w, opts))), nil

	case FormatZap:
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("log level %q: %w", level, err)
		}
		core := zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(w),
			lvl,
		)
		return NewZapLogger(zap.New(core)), nil

	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

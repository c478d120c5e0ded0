package main

import (
	"context"
	"fmt"
	"io"

	"github.com/zoobzio/pizzeria"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Output formats for notifications.
const (
	formatText = "text"
	formatLog  = "log"
)

// newSink returns a Notifier writing to out in the given format and a flush
// function to call when the command is done.
func newSink(format string, out io.Writer) (pizzeria.Notifier, func() error, error) {
	switch format {
	case formatText:
		return textSink(out), func() error { return nil }, nil
	case formatLog:
		logger := newLogger(out)
		return logSink(logger), logger.Sync, nil
	default:
		return nil, nil, fmt.Errorf("unknown format %q (want %s or %s)", format, formatText, formatLog)
	}
}

func textSink(out io.Writer) pizzeria.Notifier {
	return pizzeria.NotifierFunc(func(_ context.Context, n pizzeria.Notification) {
		fmt.Fprintln(out, n.Message)
	})
}

func newLogger(out io.Writer) *zap.Logger {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(cfg), zapcore.AddSync(out), zapcore.InfoLevel)
	return zap.New(core)
}

func logSink(logger *zap.Logger) pizzeria.Notifier {
	return pizzeria.NotifierFunc(func(_ context.Context, n pizzeria.Notification) {
		fields := []zap.Field{
			zap.String("kind", string(n.Kind)),
			zap.String("source", n.Source),
			zap.Time("at", n.Timestamp),
		}
		if n.TicketID != "" {
			fields = append(fields, zap.String("ticket", n.TicketID))
		}
		logger.Info(n.Message, fields...)
	})
}

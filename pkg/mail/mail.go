// Package mail delivers verification emails through SMTP, a Kafka mail queue, or the log.
package mail

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taskmanager/pkg/config"
	"github.com/taskmanager/pkg/metrics"
)

// Sender delivers a single plain-text message. Send returns only after the message has been
// accepted by the transport.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
	Close() error
}

// New builds the sender selected by cfg.Driver.
func New(cfg config.Mail) (Sender, error) {
	var (
		sender Sender
		err    error
	)
	switch cfg.Driver {
	case "smtp":
		sender, err = NewSMTPSender(cfg.From, cfg.SMTP)
	case "kafka":
		sender, err = NewKafkaSender(cfg.From, cfg.Kafka)
	case "", "log":
		sender = NewLogSender(slog.Default())
	default:
		err = fmt.Errorf("unknown mail driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	return Instrument(cfg.Driver, sender), nil
}

type instrumented struct {
	Sender
	driver string
}

// Instrument counts every Send outcome under driver.
func Instrument(driver string, s Sender) Sender {
	if driver == "" {
		driver = "log"
	}
	return &instrumented{Sender: s, driver: driver}
}

func (i *instrumented) Send(ctx context.Context, to, subject, body string) error {
	err := i.Sender.Send(ctx, to, subject, body)
	metrics.RecordMail(i.driver, err)
	return err
}

// LogSender writes messages to the logger instead of delivering them. Used for local development.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (l *LogSender) Send(ctx context.Context, to, subject, body string) error {
	l.logger.InfoContext(ctx, "mail delivered to log", "to", to, "subject", subject, "body", body)
	return nil
}

func (l *LogSender) Close() error { return nil }

// internal/app/system/mailer/mailer.go
package mailer

import (
	"context"
	"errors"
	"net/mail"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Email is a message ready to hand to a Sender.
type Email struct {
	From     string // empty means the sender's default
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// ErrNoRecipient is returned for an Email without a To address.
var ErrNoRecipient = errors.New("mailer: no recipient")

// Sender delivers email.
type Sender interface {
	Send(ctx context.Context, msg Email) error
}

// DefaultMockDelay stands in for network latency.
const DefaultMockDelay = 500 * time.Millisecond

// MockSender pretends to deliver mail: it waits Delay, logs the message and
// keeps it in an outbox. Nothing leaves the process.
type MockSender struct {
	Delay time.Duration
	from  string
	log   *zap.Logger

	mu     sync.Mutex
	outbox []Email
}

// MockOption configures a MockSender.
type MockOption func(*MockSender)

// WithFrom sets the From header used for messages that carry none.
// An empty name gives a bare address.
func WithFrom(address, name string) MockOption {
	return func(m *MockSender) { m.from = FormatAddress(address, name) }
}

// FormatAddress renders an address with an optional display name, e.g.
// "Tujitume" <noreply@tujitume.org>.
func FormatAddress(address, name string) string {
	if address == "" {
		return ""
	}
	return (&mail.Address{Name: name, Address: address}).String()
}

// NewMockSender returns a MockSender. A negative delay means DefaultMockDelay.
func NewMockSender(delay time.Duration, logger *zap.Logger, opts ...MockOption) *MockSender {
	if delay < 0 {
		delay = DefaultMockDelay
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &MockSender{Delay: delay, log: logger}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Send waits for the configured delay or ctx, whichever ends first.
func (m *MockSender) Send(ctx context.Context, msg Email) error {
	if msg.To == "" {
		return ErrNoRecipient
	}
	if m.Delay > 0 {
		t := time.NewTimer(m.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}

	if msg.From == "" {
		msg.From = m.from
	}
	m.mu.Lock()
	m.outbox = append(m.outbox, msg)
	m.mu.Unlock()

	m.log.Info("mock email sent",
		zap.String("from", msg.From),
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Int("text_bytes", len(msg.TextBody)),
		zap.Int("html_bytes", len(msg.HTMLBody)),
	)
	return nil
}

// Outbox returns a copy of everything sent so far.
func (m *MockSender) Outbox() []Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Email, len(m.outbox))
	copy(out, m.outbox)
	return out
}

// Reset empties the outbox.
func (m *MockSender) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outbox = nil
}

var _ Sender = (*MockSender)(nil)

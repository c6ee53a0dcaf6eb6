package resilience

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aaravmahajanofficial/inventory-service/internal/config"
	"github.com/aaravmahajanofficial/inventory-service/internal/metrics"
	"github.com/sony/gobreaker"
)

// Sender matches service.Mailer without importing the service package.
type Sender interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// BreakerSender stops calling a failing transport until it has had time to recover.
type BreakerSender struct {
	cb   *gobreaker.CircuitBreaker
	next Sender
	name string
}

func NewBreakerSender(name string, next Sender, cfg config.Notifier) *BreakerSender {

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.BreakerMaxRequests,
		Interval:    cfg.BreakerInterval,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(cbName string, from gobreaker.State, to gobreaker.State) {
			metrics.SetBreakerState(cbName, stateValue(to))

			slog.Info("Circuit breaker state changed",
				slog.String("circuit", cbName),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	})

	metrics.SetBreakerState(name, stateValue(gobreaker.StateClosed))

	return &BreakerSender{cb: cb, next: next, name: name}
}

func (b *BreakerSender) Send(ctx context.Context, recipient, subject, body string) error {

	_, err := b.cb.Execute(func() (interface{}, error) {
		return nil, b.next.Send(ctx, recipient, subject, body)
	})

	return formatError(b.name, err)
}

func (b *BreakerSender) State() gobreaker.State {
	return b.cb.State()
}

// 0 closed, 1 open, 2 half-open
func stateValue(state gobreaker.State) int {
	switch state {
	case gobreaker.StateOpen:
		return 1
	case gobreaker.StateHalfOpen:
		return 2
	default:
		return 0
	}
}

func formatError(circuitName string, err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) {
		return fmt.Errorf("circuit breaker %s is open: %w", circuitName, err)
	}
	if errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("circuit breaker %s: too many requests in half-open state: %w", circuitName, err)
	}
	return err
}

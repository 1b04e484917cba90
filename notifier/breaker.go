package notifier

import (
	"context"
	"time"

	"github.com/Itish41/asset-audit/models"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

type Dispatcher interface {
	Dispatch(ctx context.Context, r models.Reminder) error
}

// BreakerDispatcher stops calling a failing transport for a while instead of
// timing out on every assignee of a reminder run.
type BreakerDispatcher struct {
	next Dispatcher
	cb   *gobreaker.CircuitBreaker
}

func NewBreakerDispatcher(name string, next Dispatcher, logger *zap.Logger) *BreakerDispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("notifier breaker state changed",
				zap.String("breaker", name), zap.String("from", from.String()), zap.String("to", to.String()))
		},
	})
	return &BreakerDispatcher{next: next, cb: cb}
}

func (b *BreakerDispatcher) Dispatch(ctx context.Context, r models.Reminder) error {
	_, err := b.cb.Execute(func() (interface{}, error) {
		return nil, b.next.Dispatch(ctx, r)
	})
	return err
}

func (b *BreakerDispatcher) State() gobreaker.State {
	return b.cb.State()
}

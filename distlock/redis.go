package distlock

import (
	"context"
	"errors"
	"time"

	"github.com/bsm/redislock"
)

// ErrNotObtained means another holder owns the key.
var ErrNotObtained = redislock.ErrNotObtained

type obtainer interface {
	Obtain(ctx context.Context, key string, ttl time.Duration, opt *redislock.Options) (*redislock.Lock, error)
}

// Locker adapts redislock to a release-func style API.
type Locker struct {
	client obtainer
}

func New(client *redislock.Client) *Locker {
	if client == nil {
		return &Locker{}
	}
	return &Locker{client: client}
}

func (l *Locker) Obtain(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	if l == nil || l.client == nil {
		return nil, errors.New("redis lock not initialized")
	}
	lock, err := l.client.Obtain(ctx, key, ttl, nil)
	if err != nil {
		return nil, err
	}
	return lock.Release, nil
}

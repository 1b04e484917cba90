package distlock

import (
	"context"
	"testing"
	"time"

	"github.com/bsm/redislock"
	"github.com/stretchr/testify/assert"
)

type busyObtainer struct{ key string }

func (b *busyObtainer) Obtain(_ context.Context, key string, _ time.Duration, _ *redislock.Options) (*redislock.Lock, error) {
	b.key = key
	return nil, redislock.ErrNotObtained
}

func TestLocker_NotObtained(t *testing.T) {
	busy := &busyObtainer{}
	l := &Locker{client: busy}

	release, err := l.Obtain(context.Background(), "lock:audit-plan:plan-1", time.Second)
	assert.ErrorIs(t, err, ErrNotObtained)
	assert.Nil(t, release)
	assert.Equal(t, "lock:audit-plan:plan-1", busy.key)
}

func TestLocker_Uninitialized(t *testing.T) {
	var l *Locker
	_, err := l.Obtain(context.Background(), "k", time.Second)
	assert.Error(t, err)

	_, err = New(nil).Obtain(context.Background(), "k", time.Second)
	assert.Error(t, err)
}

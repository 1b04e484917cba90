package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/smtp"
	"testing"
	"time"

	"github.com/Itish41/asset-audit/models"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleReminder() models.Reminder {
	due := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	return models.Reminder{
		AuditPlanID: "plan-1",
		Assignee:    models.Candidate{ID: "emp-1", Name: "Tanaka"},
		Email:       "tanaka@example.com",
		Actions: []models.CorrectiveAction{
			{ID: "a1", Issue: "Asset PC-1 (X1) was not found <3F>", Action: "Locate missing asset and verify its condition", Priority: models.PriorityHigh, DueDate: &due},
			{ID: "a2", Issue: "Asset PC-2 (X1) was reported broken", Action: "Schedule repair or replacement assessment", Priority: models.PriorityHigh},
		},
	}
}

func TestSMTPDispatcher_Dispatch(t *testing.T) {
	d := NewSMTPDispatcher(SMTPConfig{Host: "smtp.example.com", From: "audit@example.com", Password: "secret"}, nil)

	var (
		gotAddr string
		gotTo   []string
		gotMsg  string
	)
	d.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotTo, gotMsg = addr, to, string(msg)
		assert.Equal(t, "audit@example.com", from)
		return nil
	}

	require.NoError(t, d.Dispatch(context.Background(), sampleReminder()))
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, []string{"tanaka@example.com"}, gotTo)
	assert.Contains(t, gotMsg, "Subject: Corrective actions due: 2 open item(s)")
	assert.Contains(t, gotMsg, "Dear Tanaka,")
	assert.Contains(t, gotMsg, "April 1, 2025")
	assert.Contains(t, gotMsg, "&lt;3F&gt;")
	assert.NotContains(t, gotMsg, "<3F>")
}

func TestSMTPDispatcher_RequiresEmail(t *testing.T) {
	d := NewSMTPDispatcher(SMTPConfig{Host: "smtp.example.com"}, nil)
	d.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("send must not be called")
		return nil
	}
	r := sampleReminder()
	r.Email = ""
	err := d.Dispatch(context.Background(), r)
	assert.ErrorIs(t, err, errNoRecipient)
}

type fakePublisher struct {
	channel string
	payload []byte
	err     error
}

func (f *fakePublisher) Publish(_ context.Context, channel string, message interface{}) *redis.IntCmd {
	f.channel = channel
	f.payload, _ = message.([]byte)
	return redis.NewIntResult(1, f.err)
}

func TestRedisDispatcher_Dispatch(t *testing.T) {
	pub := &fakePublisher{}
	d := NewRedisDispatcher(pub, "")

	require.NoError(t, d.Dispatch(context.Background(), sampleReminder()))
	assert.Equal(t, DefaultChannel, pub.channel)

	var decoded models.Reminder
	require.NoError(t, json.Unmarshal(pub.payload, &decoded))
	assert.Equal(t, "emp-1", decoded.Assignee.ID)
	assert.Len(t, decoded.Actions, 2)

	pub.err = errors.New("connection refused")
	err := d.Dispatch(context.Background(), sampleReminder())
	assert.ErrorContains(t, err, "emp-1")
}

type mockDispatcher struct{ mock.Mock }

func (m *mockDispatcher) Dispatch(ctx context.Context, r models.Reminder) error {
	return m.Called(ctx, r).Error(0)
}

func TestBreakerDispatcher_OpensAfterConsecutiveFailures(t *testing.T) {
	next := new(mockDispatcher)
	next.On("Dispatch", mock.Anything, mock.Anything).Return(errors.New("smtp down"))
	b := NewBreakerDispatcher("test", next, nil)

	for i := 0; i < 3; i++ {
		assert.Error(t, b.Dispatch(context.Background(), sampleReminder()))
	}
	assert.Equal(t, gobreaker.StateOpen, b.State())

	err := b.Dispatch(context.Background(), sampleReminder())
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	next.AssertNumberOfCalls(t, "Dispatch", 3)
}

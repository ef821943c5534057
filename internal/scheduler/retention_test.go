package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQueue struct {
	days []int
	err  error
}

func (q *fakeQueue) EnqueuePurge(ctx context.Context, days int) (string, error) {
	q.days = append(q.days, days)
	return "task-1", q.err
}

type fakePurger struct {
	days []int
}

func (p *fakePurger) PurgeOlderThan(ctx context.Context, days int) (int64, error) {
	p.days = append(p.days, days)
	return 0, nil
}

func TestValidateSchedule(t *testing.T) {
	assert.NoError(t, ValidateSchedule("0 3 * * *"))
	assert.NoError(t, ValidateSchedule("*/15 * * * *"))
	assert.Error(t, ValidateSchedule("every day"))
	assert.Error(t, ValidateSchedule("0 0 3 * * *"), "seconds field is not accepted")
}

func TestRetentionScheduler_RunNow_PrefersQueue(t *testing.T) {
	queue := &fakeQueue{}
	purger := &fakePurger{}
	s := NewRetentionScheduler(RetentionConfig{Schedule: "0 3 * * *", Days: 90}, queue, purger, zerolog.Nop())

	require.NoError(t, s.RunNow(context.Background()))

	assert.Equal(t, []int{90}, queue.days)
	assert.Empty(t, purger.days)
}

func TestRetentionScheduler_RunNow_InProcess(t *testing.T) {
	purger := &fakePurger{}
	s := NewRetentionScheduler(RetentionConfig{Schedule: "0 3 * * *", Days: 30}, nil, purger, zerolog.Nop())

	require.NoError(t, s.RunNow(context.Background()))

	assert.Equal(t, []int{30}, purger.days)
}

func TestRetentionScheduler_RunNow_QueueError(t *testing.T) {
	queue := &fakeQueue{err: errors.New("queue closed")}
	s := NewRetentionScheduler(RetentionConfig{Schedule: "0 3 * * *", Days: 30}, queue, nil, zerolog.Nop())

	err := s.RunNow(context.Background())

	assert.ErrorIs(t, err, queue.err)
}

func TestRetentionScheduler_StartStop(t *testing.T) {
	s := NewRetentionScheduler(RetentionConfig{Schedule: "0 3 * * *", Days: 365, Location: time.UTC}, nil, &fakePurger{}, zerolog.Nop())

	assert.False(t, s.IsRunning())
	assert.Nil(t, s.GetNextRunTime())

	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Start(context.Background()), "starting twice is a no-op")
	assert.True(t, s.IsRunning())

	next := s.GetNextRunTime()
	require.NotNil(t, next)
	assert.Equal(t, 3, next.In(time.UTC).Hour())
	assert.True(t, next.After(time.Now()))

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.GetNextRunTime())
}

func TestRetentionScheduler_StopsWithContext(t *testing.T) {
	s := NewRetentionScheduler(RetentionConfig{Schedule: "0 3 * * *", Days: 365}, nil, &fakePurger{}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))
	cancel()

	assert.Eventually(t, func() bool { return !s.IsRunning() }, 2*time.Second, 10*time.Millisecond)
}

func TestRetentionScheduler_Start_InvalidConfig(t *testing.T) {
	s := NewRetentionScheduler(RetentionConfig{Schedule: "nope", Days: 30}, nil, &fakePurger{}, zerolog.Nop())
	assert.Error(t, s.Start(context.Background()))
	assert.False(t, s.IsRunning())

	s = NewRetentionScheduler(RetentionConfig{Schedule: "0 3 * * *", Days: -1}, nil, &fakePurger{}, zerolog.Nop())
	assert.Error(t, s.Start(context.Background()))
}

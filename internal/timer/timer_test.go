package timer

import (
	"context"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{-time.Second, "0:00"},
		{999 * time.Millisecond, "0:00"},
		{9 * time.Second, "0:09"},
		{time.Minute + 5*time.Second, "1:05"},
		{59*time.Minute + 59*time.Second, "59:59"},
		{time.Hour, "1:00:00"},
		{2*time.Hour + 3*time.Minute + 4*time.Second, "2:03:04"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.d))
		})
	}
}

func TestStopwatch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mClock := quartz.NewMock(t)
	sw := New(mClock)

	assert.False(t, sw.Running())
	mClock.Advance(time.Minute).MustWait(ctx)
	assert.Zero(t, sw.Elapsed(), "a stopped stopwatch does not count")

	sw.Start()
	mClock.Advance(90 * time.Second).MustWait(ctx)
	assert.Equal(t, 90*time.Second, sw.Elapsed())
	assert.Equal(t, "1:30", sw.String())

	sw.Pause()
	mClock.Advance(time.Hour).MustWait(ctx)
	assert.Equal(t, 90*time.Second, sw.Elapsed(), "paused time is not counted")

	sw.Resume()
	mClock.Advance(30 * time.Second).MustWait(ctx)
	assert.Equal(t, 2*time.Minute, sw.Elapsed())

	sw.Start()
	assert.Zero(t, sw.Elapsed(), "start restarts from zero")
}

func TestStopwatchToggle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mClock := quartz.NewMock(t)
	sw := New(mClock)
	sw.Start()

	assert.False(t, sw.Toggle())
	mClock.Advance(10 * time.Second).MustWait(ctx)
	assert.Zero(t, sw.Elapsed())

	assert.True(t, sw.Toggle())
	mClock.Advance(10 * time.Second).MustWait(ctx)
	assert.Equal(t, 10*time.Second, sw.Elapsed())

	sw.Reset()
	assert.False(t, sw.Running())
	assert.Zero(t, sw.Elapsed())
}

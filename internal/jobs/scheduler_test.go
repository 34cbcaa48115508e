package jobs_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pharmacast/workforce-api/internal/domain"
	"github.com/pharmacast/workforce-api/internal/jobs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSchedulerAddAndRemoveJob(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())

	err := s.AddJob("noop", "@every 1h", func() {})
	require.NoError(t, err)

	// Duplicate names are rejected
	err = s.AddJob("noop", "@every 1h", func() {})
	assert.Error(t, err)

	assert.Equal(t, []string{"noop"}, s.GetJobNames())

	require.NoError(t, s.RemoveJob("noop"))
	assert.Empty(t, s.GetJobNames())
	assert.Error(t, s.RemoveJob("noop"))
}

func TestSchedulerRejectsInvalidCronExpression(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())
	err := s.AddJob("bad", "not a cron expr", func() {})
	assert.Error(t, err)
}

type stubRefresher struct {
	calls  atomic.Int32
	source domain.BaselineSource
}

func (r *stubRefresher) RefreshAll(_ context.Context, source domain.BaselineSource, _ int) error {
	r.source = source
	r.calls.Add(1)
	return nil
}

func TestRefreshJobRun(t *testing.T) {
	refresher := &stubRefresher{}
	job := jobs.NewRefreshJob(refresher, nil, domain.BaselineSourceCPWS, zap.NewNop(), time.Minute)

	job.Run()

	assert.Equal(t, int32(1), refresher.calls.Load())
	assert.Equal(t, domain.BaselineSourceCPWS, refresher.source)
}

func TestRegisterRefreshJob(t *testing.T) {
	refresher := &stubRefresher{}
	s := jobs.NewScheduler(zap.NewNop())

	err := jobs.RegisterRefreshJob(s, refresher, nil, domain.BaselineSourceCPWS, zap.NewNop(), "0 0 6 * * 1", time.Minute, false)
	require.NoError(t, err)
	assert.Equal(t, []string{jobs.RefreshJobName}, s.GetJobNames())
}

package services

import (
	"context"
	"testing"
	"time"

	"github.com/justsurfingit/automate/internal/dtos"
	"github.com/justsurfingit/automate/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApplicationService(t *testing.T, sub Submitter) (*ApplicationService, *fakeSearcher) {
	t.Helper()
	store := newTestStore(t)
	searcher := &fakeSearcher{jobs: []models.Job{
		{ID: "1", Company: "Stripe", PositionName: "Backend Intern", ExternalApplyLink: "https://stripe.example/apply"},
		{ID: "2", Company: "Ramp", PositionName: "SWE Intern", URL: "https://ramp.example/jobs/2"},
	}}
	jobs := NewJobService(store, searcher, 3*time.Hour, "intern", "")
	profiles := NewProfileService(store, 7*24*time.Hour)
	return NewApplicationService(jobs, profiles, sub), searcher
}

func TestApplicationService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	sub := &fakeSubmitter{}
	svc, _ := newTestApplicationService(t, sub)

	_, err := svc.Jobs.List(ctx)
	require.NoError(t, err)
	require.NoError(t, svc.Profiles.Save(ctx, models.Profile{FirstName: "Ada"}))

	id, seq, err := svc.Create(ctx, []string{"2", "1"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	snap := seq.Snapshot()
	require.Len(t, snap.Applications, 2)
	assert.Equal(t, "2", snap.Applications[0].ID)
	assert.Equal(t, NotStarted, snap.Cursor)

	_, err = svc.Start(id)
	require.NoError(t, err)
	waitIdle(t, seq)
	_, err = svc.Advance(id)
	require.NoError(t, err)
	waitIdle(t, seq)
	_, err = svc.Advance(id)
	require.NoError(t, err)

	assert.Equal(t, dtos.ApplicationProgress{Success: 2, Processed: 2, Total: 2}, seq.Progress())

	calls := sub.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "Ada", calls[0].User.FirstName)

	require.NoError(t, svc.Close(id))
	_, err = svc.Get(id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, svc.Close(id), ErrSessionNotFound)
}

func TestApplicationService_CreateErrors(t *testing.T) {
	ctx := context.Background()
	svc, searcher := newTestApplicationService(t, &fakeSubmitter{})

	_, _, err := svc.Create(ctx, nil)
	assert.ErrorIs(t, err, ErrNoJobsSelected)

	_, _, err = svc.Create(ctx, []string{"1"})
	assert.ErrorIs(t, err, ErrNoCachedJobs)
	assert.Equal(t, 0, searcher.CallCount(), "creating a session never fetches")
}

func TestApplicationService_UnknownSession(t *testing.T) {
	svc, _ := newTestApplicationService(t, &fakeSubmitter{})

	_, err := svc.Start("nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = svc.Advance("nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = svc.Restart("nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestApplicationService_CloseAllAbandonsInFlight(t *testing.T) {
	ctx := context.Background()
	sub := &fakeSubmitter{gate: make(chan struct{})}
	svc, _ := newTestApplicationService(t, sub)

	_, err := svc.Jobs.List(ctx)
	require.NoError(t, err)
	id, seq, err := svc.Create(ctx, []string{"1"})
	require.NoError(t, err)

	_, err = svc.Start(id)
	require.NoError(t, err)
	svc.CloseAll()
	close(sub.gate)
	waitIdle(t, seq)

	assert.Equal(t, models.StatusProcessing, seq.Snapshot().Applications[0].Status)
	_, err = svc.Get(id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

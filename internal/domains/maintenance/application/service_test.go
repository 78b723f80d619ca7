package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azaconnect/maintenance-api/internal/domains/maintenance/adapters/memory"
	"github.com/azaconnect/maintenance-api/internal/domains/maintenance/domain"
	"github.com/azaconnect/maintenance-api/internal/domains/maintenance/ports"
)

type recordingNotifier struct {
	completed []int64
	due       []int64
}

func (n *recordingNotifier) RequestCompleted(_ context.Context, request *domain.Request) error {
	n.completed = append(n.completed, request.ID)
	return nil
}

func (n *recordingNotifier) ScheduleDue(_ context.Context, schedule *domain.Schedule) error {
	n.due = append(n.due, schedule.ID)
	return nil
}

func newTestService(notifier ports.Notifier, now func() time.Time) *Service {
	opts := []Option{}
	if notifier != nil {
		opts = append(opts, WithNotifier(notifier))
	}
	if now != nil {
		opts = append(opts, WithClock(now))
	}
	return NewService(memory.NewRequestRepository(), memory.NewScheduleRepository(), opts...)
}

func TestRequestLifecycle(t *testing.T) {
	notifier := &recordingNotifier{}
	svc := newTestService(notifier, nil)
	ctx := context.Background()

	created, err := svc.CreateRequest(ctx, ports.CreateRequestInput{
		AssetID:     7,
		Title:       "Needle bed jam",
		Description: "machine stops mid-row",
		Priority:    domain.PriorityHigh,
		RequestedBy: "marcos",
		Sector:      "knitting",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RequestOpen, created.Status)

	assigned, err := svc.AssignRequest(ctx, created.ID, "paulo")
	require.NoError(t, err)
	assert.Equal(t, domain.RequestInProgress, assigned.Status)
	assert.Equal(t, "paulo", assigned.AssignedTo)

	completed, err := svc.CompleteRequest(ctx, created.ID, "replaced needle bed")
	require.NoError(t, err)
	assert.Equal(t, domain.RequestCompleted, completed.Status)
	require.NotNil(t, completed.CompletedAt)
	assert.Equal(t, []int64{created.ID}, notifier.completed)

	// A closed request rejects further transitions.
	_, err = svc.CancelRequest(ctx, created.ID)
	require.ErrorIs(t, err, domain.ErrRequestClosed)
}

func TestCompleteRequest_RequiresAssignment(t *testing.T) {
	svc := newTestService(nil, nil)
	ctx := context.Background()

	created, err := svc.CreateRequest(ctx, ports.CreateRequestInput{AssetID: 1, Title: "Belt slipping"})
	require.NoError(t, err)

	_, err = svc.CompleteRequest(ctx, created.ID, "tightened belt")
	require.ErrorIs(t, err, domain.ErrNotAssigned)
}

func TestCreateRequest_DefaultsPriority(t *testing.T) {
	svc := newTestService(nil, nil)

	created, err := svc.CreateRequest(context.Background(), ports.CreateRequestInput{AssetID: 1, Title: "Oil leak"})
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityMedium, created.Priority)
}

func TestListRequests_Filtered(t *testing.T) {
	svc := newTestService(nil, nil)
	ctx := context.Background()

	_, err := svc.CreateRequest(ctx, ports.CreateRequestInput{AssetID: 1, Title: "A", Sector: "knitting"})
	require.NoError(t, err)
	_, err = svc.CreateRequest(ctx, ports.CreateRequestInput{AssetID: 2, Title: "B", Sector: "weaving"})
	require.NoError(t, err)

	byAsset, err := svc.ListRequests(ctx, ports.RequestFilter{AssetID: 2})
	require.NoError(t, err)
	require.Len(t, byAsset, 1)
	assert.Equal(t, "B", byAsset[0].Title)

	open, err := svc.ListRequests(ctx, ports.RequestFilter{Status: domain.RequestOpen})
	require.NoError(t, err)
	assert.Len(t, open, 2)
}

func TestScheduleLifecycle(t *testing.T) {
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	now := base
	svc := newTestService(nil, func() time.Time { return now })
	ctx := context.Background()

	created, err := svc.CreateSchedule(ctx, ports.CreateScheduleInput{
		AssetID:      3,
		Title:        "Lubrication round",
		IntervalDays: 30,
		FirstDue:     base.AddDate(0, 0, 30),
	})
	require.NoError(t, err)
	assert.True(t, created.Active)

	// Not due yet.
	due, err := svc.DueSchedules(ctx, base)
	require.NoError(t, err)
	assert.Empty(t, due)

	// Past the due date it shows up.
	due, err = svc.DueSchedules(ctx, base.AddDate(0, 0, 31))
	require.NoError(t, err)
	require.Len(t, due, 1)

	// Completing anchors the next round on the completion date.
	now = base.AddDate(0, 0, 35)
	completed, err := svc.CompleteSchedule(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, now.AddDate(0, 0, 30), completed.NextDueAt)
	require.NotNil(t, completed.LastCompletedAt)
}

func TestDueSchedules_Notifies(t *testing.T) {
	notifier := &recordingNotifier{}
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	svc := newTestService(notifier, func() time.Time { return base })
	ctx := context.Background()

	created, err := svc.CreateSchedule(ctx, ports.CreateScheduleInput{
		AssetID:      3,
		Title:        "Filter change",
		IntervalDays: 7,
		FirstDue:     base.AddDate(0, 0, -1),
	})
	require.NoError(t, err)

	due, err := svc.DueSchedules(ctx, time.Time{})
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, []int64{created.ID}, notifier.due)
}

func TestScheduleChecklistRound(t *testing.T) {
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	svc := newTestService(nil, func() time.Time { return base })
	ctx := context.Background()

	created, err := svc.CreateSchedule(ctx, ports.CreateScheduleInput{
		AssetID:      3,
		Title:        "Loom inspection",
		IntervalDays: 90,
		FirstDue:     base,
		Checklist:    []string{"check needle bed", "  ", "grease rails"},
	})
	require.NoError(t, err)
	// Blank steps are dropped, the rest start unticked.
	require.Len(t, created.Checklist, 2)
	assert.Equal(t, "check needle bed", created.Checklist[0].Description)
	assert.False(t, created.Checklist[0].Done)

	ticked, err := svc.CheckScheduleItem(ctx, created.ID, 1, true)
	require.NoError(t, err)
	assert.True(t, ticked.Checklist[1].Done)

	_, err = svc.CheckScheduleItem(ctx, created.ID, 5, true)
	require.ErrorIs(t, err, domain.ErrNoChecklistItem)

	// Completing a round resets every step for the next one.
	completed, err := svc.CompleteSchedule(ctx, created.ID)
	require.NoError(t, err)
	for _, item := range completed.Checklist {
		assert.False(t, item.Done)
	}
}

func TestDeactivateSchedule_StopsDueListing(t *testing.T) {
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	svc := newTestService(nil, func() time.Time { return base })
	ctx := context.Background()

	created, err := svc.CreateSchedule(ctx, ports.CreateScheduleInput{
		AssetID:      4,
		Title:        "Calibration",
		IntervalDays: 14,
		FirstDue:     base.AddDate(0, 0, -2),
	})
	require.NoError(t, err)

	_, err = svc.DeactivateSchedule(ctx, created.ID)
	require.NoError(t, err)

	due, err := svc.DueSchedules(ctx, base)
	require.NoError(t, err)
	assert.Empty(t, due)

	_, err = svc.CompleteSchedule(ctx, created.ID)
	require.ErrorIs(t, err, domain.ErrInactive)
}

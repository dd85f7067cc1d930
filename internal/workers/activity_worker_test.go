package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"devsocial/internal/core/activity"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeEventRepo struct {
	mu      sync.Mutex
	events  []*activity.Event
	doneErr error
}

func (r *fakeEventRepo) Create(ctx context.Context, e *activity.Event) (*activity.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return e, nil
}

func (r *fakeEventRepo) GetPending(ctx context.Context, limit int) ([]*activity.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*activity.Event
	for _, e := range r.events {
		if e.Status == activity.StatusPending && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) MarkDone(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.doneErr != nil {
		return r.doneErr
	}
	for _, e := range r.events {
		if e.ID == id {
			e.Status = activity.StatusDone
		}
	}
	return nil
}

func (r *fakeEventRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*activity.Event, error) {
	return nil, nil
}

type fakeFeed struct {
	mu      sync.Mutex
	pushed  map[string][]uuid.UUID
	failFor string
}

func (f *fakeFeed) Push(ctx context.Context, ownerID string, eventID uuid.UUID, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ownerID == f.failFor {
		return errors.New("redis unavailable")
	}
	if f.pushed == nil {
		f.pushed = map[string][]uuid.UUID{}
	}
	f.pushed[ownerID] = append(f.pushed[ownerID], eventID)
	return nil
}

func (f *fakeFeed) Range(ctx context.Context, ownerID string, start, limit int64) ([]uuid.UUID, error) {
	return nil, nil
}

func pendingEvent(owner string) *activity.Event {
	return &activity.Event{
		ID:        uuid.Must(uuid.NewV4()),
		PostID:    uuid.Must(uuid.NewV4()),
		ActorID:   "actor",
		OwnerID:   owner,
		Kind:      activity.KindPostLiked,
		Status:    activity.StatusPending,
		CreatedAt: time.Now(),
	}
}

func TestActivityWorker_ProcessBatch(t *testing.T) {
	repo := &fakeEventRepo{events: []*activity.Event{pendingEvent("U1"), pendingEvent("U1"), pendingEvent("U2")}}
	feed := &fakeFeed{}
	w := NewActivityWorker(repo, feed, 2, time.Second, zap.NewNop())
	ctx := context.Background()

	n, err := w.ProcessBatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, feed.pushed["U1"], 2)

	n, err = w.ProcessBatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Len(t, feed.pushed["U2"], 1)

	n, err = w.ProcessBatch(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestActivityWorker_FailedPushStaysPending(t *testing.T) {
	failing := pendingEvent("U9")
	repo := &fakeEventRepo{events: []*activity.Event{failing, pendingEvent("U1")}}
	feed := &fakeFeed{failFor: "U9"}
	w := NewActivityWorker(repo, feed, 10, time.Second, zap.NewNop())

	n, err := w.ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, activity.StatusPending, failing.Status)
}

func TestActivityWorker_RunStopsOnCancel(t *testing.T) {
	repo := &fakeEventRepo{events: []*activity.Event{pendingEvent("U1")}}
	feed := &fakeFeed{}
	w := NewActivityWorker(repo, feed, 10, 5*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		feed.mu.Lock()
		defer feed.mu.Unlock()
		return len(feed.pushed["U1"]) == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}

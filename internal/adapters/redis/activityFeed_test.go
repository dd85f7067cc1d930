package redis

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityFeedRedis_PushAndRange(t *testing.T) {
	m, client := newTestClient(t)
	feed := NewActivityFeedRedis(client)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	ids := make([]uuid.UUID, 3)
	for i := range ids {
		ids[i] = uuid.Must(uuid.NewV4())
		require.NoError(t, feed.Push(ctx, "U1", ids[i], base.Add(time.Duration(i)*time.Minute)))
	}
	require.NoError(t, feed.Push(ctx, "U2", uuid.Must(uuid.NewV4()), base))

	score, err := m.ZScore("activity:U1", ids[0].String())
	require.NoError(t, err)
	assert.Equal(t, float64(base.Unix()), score)

	page, err := feed.Range(ctx, "U1", 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{ids[2], ids[1]}, page)

	page, err = feed.Range(ctx, "U1", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{ids[0]}, page)

	page, err = feed.Range(ctx, "U1", 3, 2)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestActivityFeedRedis_SkipsMalformedMembers(t *testing.T) {
	m, client := newTestClient(t)
	feed := NewActivityFeedRedis(client)
	ctx := context.Background()

	id := uuid.Must(uuid.NewV4())
	require.NoError(t, feed.Push(ctx, "U1", id, time.Unix(100, 0)))
	_, err := m.ZAdd("activity:U1", 200, "not-a-uuid")
	require.NoError(t, err)

	page, err := feed.Range(ctx, "U1", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{id}, page)
}

func TestActivityFeedRedis_Unavailable(t *testing.T) {
	m, client := newTestClient(t)
	feed := NewActivityFeedRedis(client)
	m.Close()

	err := feed.Push(context.Background(), "U1", uuid.Must(uuid.NewV4()), time.Now())
	assert.Error(t, err)
}

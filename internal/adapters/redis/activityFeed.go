package redis

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofrs/uuid"
)

const feedKeyPrefix = "activity:"

type ActivityFeedRedis struct {
	Client *redis.Client
}

func NewActivityFeedRedis(client *redis.Client) *ActivityFeedRedis {
	return &ActivityFeedRedis{
		Client: client,
	}
}

// Push اضافه کردن eventID به ZSET فعالیت صاحب پست
func (r *ActivityFeedRedis) Push(ctx context.Context, ownerID string, eventID uuid.UUID, at time.Time) error {
	return r.Client.ZAdd(ctx, feedKeyPrefix+ownerID, &redis.Z{
		Score:  float64(at.Unix()),
		Member: eventID.String(),
	}).Err()
}

// Range returns up to limit event ids starting at start, newest first.
func (r *ActivityFeedRedis) Range(ctx context.Context, ownerID string, start, limit int64) ([]uuid.UUID, error) {
	members, err := r.Client.ZRevRange(ctx, feedKeyPrefix+ownerID, start, start+limit-1).Result()
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		id, err := uuid.FromString(m)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

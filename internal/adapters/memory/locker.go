package memory

import (
	"context"
	"hash/fnv"
)

const defaultStripes = 256

// PostLocker is an in-process Locker. Keys are hashed onto a fixed set of
// stripes, so unrelated keys may occasionally wait on each other.
type PostLocker struct {
	stripes []chan struct{}
}

func NewPostLocker(stripes int) *PostLocker {
	if stripes <= 0 {
		stripes = defaultStripes
	}
	l := &PostLocker{stripes: make([]chan struct{}, stripes)}
	for i := range l.stripes {
		l.stripes[i] = make(chan struct{}, 1)
	}
	return l
}

// Lock blocks until key's stripe is free or ctx is done.
func (l *PostLocker) Lock(ctx context.Context, key string) (func(), error) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	stripe := l.stripes[h.Sum32()%uint32(len(l.stripes))]

	select {
	case stripe <- struct{}{}:
		return func() { <-stripe }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

package post

import (
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPost() *Post {
	return New(uuid.Must(uuid.NewV4()), "owner", "hello", "Owner", "", time.Now())
}

func TestPost_New(t *testing.T) {
	p := newTestPost()

	assert.Empty(t, p.Likes)
	assert.NotNil(t, p.Likes)
	assert.Empty(t, p.Comments)
	assert.True(t, p.OwnedBy("owner"))
	assert.False(t, p.OwnedBy("someone"))
}

func TestPost_LikePrependsAndRejectsDuplicate(t *testing.T) {
	p := newTestPost()

	require.NoError(t, p.Like("u1"))
	require.NoError(t, p.Like("u2"))
	assert.Equal(t, []Like{{User: "u2"}, {User: "u1"}}, []Like(p.Likes))

	err := p.Like("u1")
	assert.True(t, IsKind(err, KindConflict))
	assert.Len(t, p.Likes, 2)
}

func TestPost_UnlikeRestoresPreviousLikes(t *testing.T) {
	p := newTestPost()
	require.NoError(t, p.Like("a"))
	require.NoError(t, p.Like("b"))
	before := append([]Like(nil), p.Likes...)

	require.NoError(t, p.Like("c"))
	require.NoError(t, p.Unlike("c"))

	assert.Equal(t, before, []Like(p.Likes))
}

func TestPost_UnlikeRemovesFromMiddle(t *testing.T) {
	p := newTestPost()
	for _, u := range []string{"a", "b", "c"} {
		require.NoError(t, p.Like(u))
	}

	require.NoError(t, p.Unlike("b"))
	assert.Equal(t, []Like{{User: "c"}, {User: "a"}}, []Like(p.Likes))
}

func TestPost_UnlikeWithoutLike(t *testing.T) {
	p := newTestPost()
	require.NoError(t, p.Like("a"))

	err := p.Unlike("b")
	assert.True(t, IsKind(err, KindConflict))
	assert.Len(t, p.Likes, 1)
}

func TestPost_Comments(t *testing.T) {
	p := newTestPost()
	first := Comment{ID: uuid.Must(uuid.NewV4()), Text: "first", User: "u1"}
	second := Comment{ID: uuid.Must(uuid.NewV4()), Text: "second", User: "u2"}

	p.AddComment(first)
	p.AddComment(second)
	require.Len(t, p.Comments, 2)
	assert.Equal(t, "second", p.Comments[0].Text)

	err := p.RemoveComment(uuid.Must(uuid.NewV4()))
	assert.True(t, IsKind(err, KindNotFound))
	assert.Len(t, p.Comments, 2)

	require.NoError(t, p.RemoveComment(second.ID))
	assert.Equal(t, []Comment{first}, []Comment(p.Comments))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindForbidden, KindOf(Forbidden("nope")))
	assert.Equal(t, Kind(0), KindOf(assert.AnError))
	assert.Equal(t, "conflict", KindConflict.String())
	assert.ErrorIs(t, Unavailable("db down", assert.AnError), assert.AnError)
}

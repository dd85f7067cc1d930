package postapp

import (
	"context"
	"errors"
	"time"

	"devsocial/internal/core/activity"
	postEntity "devsocial/internal/core/post"
	userEntity "devsocial/internal/core/user"
	"devsocial/internal/core/validation"
	"devsocial/internal/metrics"
	postPort "devsocial/internal/ports/post"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

const (
	msgPostNotFound    = "No post found by that id"
	msgCommentNotFound = "Comment does not exist"
)

// UserFinder supplies the author's display fields when a submission omits them.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*userEntity.User, error)
}

// ActivityRecorder queues notifications for post owners.
type ActivityRecorder interface {
	Record(ctx context.Context, kind activity.Kind, postID uuid.UUID, actorID, ownerID string) error
}

type PostService struct {
	PostRepository postPort.PostRepository
	Locker         postPort.Locker
	Users          UserFinder       // optional
	Activity       ActivityRecorder // optional
	Logger         *zap.Logger
	now            func() time.Time
	newID          func() (uuid.UUID, error)
}

func NewPostService(
	postRepo postPort.PostRepository,
	locker postPort.Locker,
	users UserFinder,
	recorder ActivityRecorder,
	logger *zap.Logger,
) *PostService {
	return &PostService{
		PostRepository: postRepo,
		Locker:         locker,
		Users:          users,
		Activity:       recorder,
		Logger:         logger,
		now:            time.Now,
		newID:          uuid.NewV4,
	}
}

// ListPosts returns all posts, newest first.
func (s *PostService) ListPosts(ctx context.Context) (dtos []*postPort.PostDTO, err error) {
	defer observe("list", &err)

	posts, err := s.PostRepository.FindAll(ctx)
	if err != nil {
		return nil, postEntity.Unavailable("could not load posts", err)
	}
	dtos = make([]*postPort.PostDTO, 0, len(posts))
	for _, p := range posts {
		dtos = append(dtos, postPort.ToDTO(p))
	}
	return dtos, nil
}

// GetPost returns the post with the given id. Malformed ids are reported as NotFound.
func (s *PostService) GetPost(ctx context.Context, id string) (dto *postPort.PostDTO, err error) {
	defer observe("get", &err)

	pid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	p, err := s.PostRepository.FindByID(ctx, pid)
	if err != nil {
		return nil, classify(err)
	}
	return postPort.ToDTO(p), nil
}

// CreatePost validates input and stores a new post owned by callerID.
func (s *PostService) CreatePost(ctx context.Context, callerID string, input validation.Record) (dto *postPort.PostDTO, err error) {
	defer observe("create", &err)

	in, errs, ok := validation.ValidatePostInput(input)
	if !ok {
		return nil, postEntity.InvalidInput(errs)
	}
	in.Name, in.Avatar = s.authorDisplay(ctx, callerID, in.Name, in.Avatar)

	id, err := s.newID()
	if err != nil {
		return nil, postEntity.Unavailable("could not allocate post id", err)
	}
	created, err := s.PostRepository.Create(ctx, postEntity.New(id, callerID, in.Text, in.Name, in.Avatar, s.now()))
	if err != nil {
		return nil, postEntity.Unavailable("could not create post", err)
	}
	s.Logger.Info("post created", zap.String("postID", created.ID.String()), zap.String("userID", callerID))
	return postPort.ToDTO(created), nil
}

// DeletePost removes the post if callerID owns it.
func (s *PostService) DeletePost(ctx context.Context, callerID, id string) (err error) {
	defer observe("delete", &err)

	pid, err := parseID(id)
	if err != nil {
		return err
	}
	unlock, err := s.lock(ctx, pid)
	if err != nil {
		return err
	}
	defer unlock()

	err = s.PostRepository.Delete(ctx, pid, func(p *postEntity.Post) error {
		if !p.OwnedBy(callerID) {
			return postEntity.Forbidden("User not authorized")
		}
		return nil
	})
	if err != nil {
		return classify(err)
	}
	s.Logger.Info("post deleted", zap.String("postID", id), zap.String("userID", callerID))
	return nil
}

// LikePost adds callerID to the post's likes.
func (s *PostService) LikePost(ctx context.Context, callerID, id string) (*postPort.PostDTO, error) {
	return s.mutate(ctx, "like", id, func(p *postEntity.Post) error {
		return p.Like(callerID)
	}, func(p *postEntity.Post) {
		s.record(ctx, activity.KindPostLiked, p, callerID)
	})
}

// UnlikePost removes callerID from the post's likes.
func (s *PostService) UnlikePost(ctx context.Context, callerID, id string) (*postPort.PostDTO, error) {
	return s.mutate(ctx, "unlike", id, func(p *postEntity.Post) error {
		return p.Unlike(callerID)
	}, nil)
}

// AddComment validates input and prepends a new comment by callerID.
func (s *PostService) AddComment(ctx context.Context, callerID, id string, input validation.Record) (dto *postPort.PostDTO, err error) {
	defer observe("comment", &err)

	in, errs, ok := validation.ValidatePostInput(input)
	if !ok {
		return nil, postEntity.InvalidInput(errs)
	}
	in.Name, in.Avatar = s.authorDisplay(ctx, callerID, in.Name, in.Avatar)

	commentID, err := s.newID()
	if err != nil {
		return nil, postEntity.Unavailable("could not allocate comment id", err)
	}
	comment := postEntity.Comment{
		ID:     commentID,
		Text:   in.Text,
		Name:   in.Name,
		Avatar: in.Avatar,
		User:   callerID,
		Date:   s.now(),
	}
	return s.update(ctx, id, func(p *postEntity.Post) error {
		p.AddComment(comment)
		return nil
	}, func(p *postEntity.Post) {
		s.record(ctx, activity.KindPostCommented, p, callerID)
	})
}

// DeleteComment removes the comment with commentID from the post. Any
// authenticated caller may remove a comment. The post is looked up first, so a
// missing post wins over a malformed comment id.
func (s *PostService) DeleteComment(ctx context.Context, callerID, id, commentID string) (dto *postPort.PostDTO, err error) {
	defer observe("uncomment", &err)

	dto, err = s.update(ctx, id, func(p *postEntity.Post) error {
		cid, err := uuid.FromString(commentID)
		if err != nil {
			return postEntity.NotFound(msgCommentNotFound, err)
		}
		return p.RemoveComment(cid)
	}, nil)
	if err != nil {
		return nil, err
	}
	s.Logger.Info("comment deleted", zap.String("postID", id), zap.String("commentID", commentID), zap.String("userID", callerID))
	return dto, nil
}

func (s *PostService) mutate(ctx context.Context, op, id string, fn func(p *postEntity.Post) error, after func(p *postEntity.Post)) (dto *postPort.PostDTO, err error) {
	defer observe(op, &err)
	return s.update(ctx, id, fn, after)
}

// update runs fn against the stored post under the per-post lock and inside
// the repository's read-modify-write. after runs once the change is saved.
func (s *PostService) update(ctx context.Context, id string, fn func(p *postEntity.Post) error, after func(p *postEntity.Post)) (*postPort.PostDTO, error) {
	pid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	unlock, err := s.lock(ctx, pid)
	if err != nil {
		return nil, err
	}
	defer unlock()

	updated, err := s.PostRepository.Update(ctx, pid, fn)
	if err != nil {
		return nil, classify(err)
	}
	if after != nil {
		after(updated)
	}
	return postPort.ToDTO(updated), nil
}

func (s *PostService) lock(ctx context.Context, pid uuid.UUID) (func(), error) {
	unlock, err := s.Locker.Lock(ctx, "post:"+pid.String())
	if err != nil {
		s.Logger.Warn("could not lock post", zap.String("postID", pid.String()), zap.Error(err))
		return nil, postEntity.Unavailable("post is busy, try again", err)
	}
	return unlock, nil
}

// authorDisplay fills missing display fields from the caller's user record.
func (s *PostService) authorDisplay(ctx context.Context, callerID, name, avatar string) (string, string) {
	if s.Users == nil || (name != "" && avatar != "") {
		return name, avatar
	}
	u, err := s.Users.FindByID(ctx, callerID)
	if err != nil {
		s.Logger.Debug("author lookup failed", zap.String("userID", callerID), zap.Error(err))
		return name, avatar
	}
	if name == "" {
		name = u.DisplayName()
	}
	if avatar == "" {
		avatar = u.Avatar
	}
	return name, avatar
}

func (s *PostService) record(ctx context.Context, kind activity.Kind, p *postEntity.Post, actorID string) {
	if s.Activity == nil {
		return
	}
	if err := s.Activity.Record(ctx, kind, p.ID, actorID, p.UserID); err != nil {
		s.Logger.Warn("⚠️ could not record activity", zap.String("postID", p.ID.String()), zap.String("kind", string(kind)), zap.Error(err))
	}
}

func parseID(id string) (uuid.UUID, error) {
	pid, err := uuid.FromString(id)
	if err != nil {
		return uuid.Nil, postEntity.NotFound(msgPostNotFound, err)
	}
	return pid, nil
}

// classify keeps domain errors as they are and turns everything else coming
// out of the repository into NotFound or Unavailable.
func classify(err error) error {
	var perr *postEntity.Error
	switch {
	case errors.As(err, &perr):
		return perr
	case errors.Is(err, postPort.ErrNotFound):
		return postEntity.NotFound(msgPostNotFound, err)
	default:
		return postEntity.Unavailable("post storage unavailable", err)
	}
}

func observe(op string, err *error) {
	outcome := "ok"
	if *err != nil {
		outcome = postEntity.KindOf(*err).String()
	}
	metrics.ObservePostOperation(op, outcome)
}

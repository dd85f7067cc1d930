package httpapi

import (
	"context"

	"devsocial/internal/adapters/httpapi/middleware"
	"devsocial/internal/core/validation"
	"devsocial/internal/metrics"
	activityPort "devsocial/internal/ports/activity"
	postPort "devsocial/internal/ports/post"
	userPort "devsocial/internal/ports/user"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// UserUseCase: اینترفیسِ لازم برای کنترلر/روتر (Inbound Port)
type UserUseCase interface {
	LoginUser(ctx context.Context, username, password string) (*userPort.LoginResponse, error)
	RegisterUser(ctx context.Context, name, family, username, mobile, password, avatar string) (*userPort.UserDTO, error)
}

type PostUseCase interface {
	ListPosts(ctx context.Context) ([]*postPort.PostDTO, error)
	GetPost(ctx context.Context, id string) (*postPort.PostDTO, error)
	CreatePost(ctx context.Context, callerID string, input validation.Record) (*postPort.PostDTO, error)
	DeletePost(ctx context.Context, callerID, id string) error
	LikePost(ctx context.Context, callerID, id string) (*postPort.PostDTO, error)
	UnlikePost(ctx context.Context, callerID, id string) (*postPort.PostDTO, error)
	AddComment(ctx context.Context, callerID, id string, input validation.Record) (*postPort.PostDTO, error)
	DeleteComment(ctx context.Context, callerID, id, commentID string) (*postPort.PostDTO, error)
}

type ActivityUseCase interface {
	GetFeedByUserID(ctx context.Context, userID string, start, limit int64) ([]*activityPort.EventDTO, error)
}

// فقط روتینگ: UseCase از بیرون تزریق می‌شود
func SetupRoutes(
	userUC UserUseCase,
	postUC PostUseCase,
	activityUC ActivityUseCase,
	jwtSecret []byte,
) *gin.Engine {
	r := gin.Default()
	r.Use(metrics.GinMiddleware())

	uc := NewUserController(userUC)
	pc := NewPostController(postUC)
	ac := NewActivityController(activityUC)
	auth := middleware.JWTAuthMiddleware(jwtSecret)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// مسیرهای ثبت‌نام و ورود بدون JWT Middleware
	r.POST("/register", uc.RegisterUser)
	r.POST("/login", uc.LoginUser)

	posts := r.Group("/api/posts")
	posts.GET("/test", pc.Test)
	posts.GET("", pc.ListPosts)
	posts.GET("/:id", pc.GetPost)
	posts.POST("", auth, pc.CreatePost)
	posts.DELETE("/:id", auth, pc.DeletePost)
	posts.POST("/like/:id", auth, pc.LikePost)
	posts.POST("/unlike/:id", auth, pc.UnlikePost)
	posts.POST("/comment/:id", auth, pc.AddComment)
	posts.DELETE("/comment/:id/:comment_id", auth, pc.DeleteComment)

	r.GET("/activity", auth, ac.GetFeedByUserID)
	return r
}

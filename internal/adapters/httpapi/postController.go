package httpapi

import (
	"errors"
	"net/http"

	"devsocial/internal/adapters/httpapi/middleware"
	"devsocial/internal/core/post"
	"devsocial/internal/core/validation"
	postPort "devsocial/internal/ports/post"

	"github.com/gin-gonic/gin"
)

type PostController struct{ pc PostUseCase }

func NewPostController(pc PostUseCase) *PostController { return &PostController{pc: pc} }

func (ctl *PostController) Test(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"msg": "Posts Works"})
}

func (ctl *PostController) ListPosts(c *gin.Context) {
	posts, err := ctl.pc.ListPosts(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (ctl *PostController) GetPost(c *gin.Context) {
	p, err := ctl.pc.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (ctl *PostController) CreatePost(c *gin.Context) {
	input, ok := bindRecord(c)
	if !ok {
		return
	}
	p, err := ctl.pc.CreatePost(c.Request.Context(), callerID(c), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (ctl *PostController) DeletePost(c *gin.Context) {
	if err := ctl.pc.DeletePost(c.Request.Context(), callerID(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (ctl *PostController) LikePost(c *gin.Context) {
	ctl.respond(c, func() (*postPort.PostDTO, error) {
		return ctl.pc.LikePost(c.Request.Context(), callerID(c), c.Param("id"))
	})
}

func (ctl *PostController) UnlikePost(c *gin.Context) {
	ctl.respond(c, func() (*postPort.PostDTO, error) {
		return ctl.pc.UnlikePost(c.Request.Context(), callerID(c), c.Param("id"))
	})
}

func (ctl *PostController) AddComment(c *gin.Context) {
	input, ok := bindRecord(c)
	if !ok {
		return
	}
	ctl.respond(c, func() (*postPort.PostDTO, error) {
		return ctl.pc.AddComment(c.Request.Context(), callerID(c), c.Param("id"), input)
	})
}

func (ctl *PostController) DeleteComment(c *gin.Context) {
	ctl.respond(c, func() (*postPort.PostDTO, error) {
		return ctl.pc.DeleteComment(c.Request.Context(), callerID(c), c.Param("id"), c.Param("comment_id"))
	})
}

func (ctl *PostController) respond(c *gin.Context, call func() (*postPort.PostDTO, error)) {
	p, err := call()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// bindRecord reads the body as a loose JSON object. Field types are checked by
// the validators, not here.
func bindRecord(c *gin.Context) (validation.Record, bool) {
	var input validation.Record
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return nil, false
	}
	return input, true
}

// callerID فقط بعد از JWTAuthMiddleware معتبر است
func callerID(c *gin.Context) string {
	return c.GetString(middleware.UserIDKey)
}

func writeError(c *gin.Context, err error) {
	var e *post.Error
	if !errors.As(err, &e) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	switch e.Kind {
	case post.KindInvalidInput:
		c.JSON(http.StatusBadRequest, gin.H{"error": e.Message, "errors": e.Fields})
	case post.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": e.Message})
	case post.KindForbidden:
		c.JSON(http.StatusForbidden, gin.H{"error": e.Message})
	case post.KindConflict:
		c.JSON(http.StatusConflict, gin.H{"error": e.Message})
	case post.KindUnavailable:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": e.Message})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

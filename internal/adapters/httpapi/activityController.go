package httpapi

import (
	"net/http"
	"strconv"

	"devsocial/internal/adapters/httpapi/middleware"

	"github.com/gin-gonic/gin"
)

const maxFeedLimit = 100

type ActivityController struct{ ac ActivityUseCase }

func NewActivityController(ac ActivityUseCase) *ActivityController {
	return &ActivityController{ac: ac}
}

func (ctrl *ActivityController) GetFeedByUserID(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)

	// گرفتن start و limit از Query params و مقداردهی پیش‌فرض
	start, err := strconv.ParseInt(c.DefaultQuery("start", "0"), 10, 64)
	if err != nil || start < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start"})
		return
	}

	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}
	if limit > maxFeedLimit {
		limit = maxFeedLimit
	}

	events, err := ctrl.ac.GetFeedByUserID(c.Request.Context(), userID, start, limit)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "could not fetch activity"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"activity": events})
}

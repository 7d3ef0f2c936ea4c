package plan

import (
	"errors"
	"net/http"

	"meal-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// requestID 取出或補上 X-Request-ID
func requestID(c *gin.Context) string {
	id := c.GetHeader("X-Request-ID")
	if id == "" {
		id = uuid.New().String()
		c.Header("X-Request-ID", id)
	}
	return id
}

// respondError 統一錯誤輸出
// CustomError 帶自己的狀態碼；驗證錯誤固定 404；其餘 500
func respondError(c *gin.Context, reqID string, err error) {
	var custom *common.CustomError
	if errors.As(err, &custom) {
		c.JSON(custom.Status, gin.H{
			"error": custom.Message,
			"code":  custom.Code,
		})
		return
	}
	if common.IsValidationError(err) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
			"code":  common.ErrCodeValidationFailure,
		})
		return
	}
	common.LogError("未分類的處理錯誤",
		zap.Error(err),
		zap.String("request_id", reqID),
	)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Internal server error",
		"code":  common.ErrCodeInternalError,
	})
}

// userIDQuery 查詢參數裡的 user_id，缺了就直接 400
func userIDQuery(c *gin.Context) (string, bool) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "user_id is required",
			"code":  common.ErrCodeInvalidRequest,
		})
		return "", false
	}
	return userID, true
}

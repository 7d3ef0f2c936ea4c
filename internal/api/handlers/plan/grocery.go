package plan

import (
	"net/http"

	"meal-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CheckItemRequest 勾選／取消採購項目
type CheckItemRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	Category string `json:"category" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Checked  bool   `json:"checked"`
}

// HandleGroceryList 查詢彙總後的採購清單
func (h *Handler) HandleGroceryList(c *gin.Context) {
	reqID := requestID(c)

	userID, ok := userIDQuery(c)
	if !ok {
		return
	}

	record, err := h.service.GetPlan(c.Request.Context(), userID)
	if err != nil {
		common.LogError("採購清單查詢失敗",
			zap.Error(err),
			zap.String("request_id", reqID),
			zap.String("user_id", userID),
		)
		respondError(c, reqID, err)
		return
	}

	if record == nil {
		c.JSON(http.StatusOK, gin.H{"grocery_list": []any{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"grocery_list": record.GroceryList})
}

// HandleCheckItem 切換採購項目勾選狀態
// 使用者顯式觸發的持久化，寫入失敗要讓前端知道沒存成
func (h *Handler) HandleCheckItem(c *gin.Context) {
	reqID := requestID(c)

	var req CheckItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", reqID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	record, err := h.service.CheckGroceryItem(c.Request.Context(), req.UserID, req.Category, req.Name, req.Checked)
	if err != nil {
		common.LogError("採購項目勾選失敗",
			zap.Error(err),
			zap.String("request_id", reqID),
			zap.String("user_id", req.UserID),
			zap.String("item", req.Name),
		)
		respondError(c, reqID, err)
		return
	}

	common.LogInfo("採購項目勾選已儲存",
		zap.String("request_id", reqID),
		zap.String("user_id", req.UserID),
		zap.String("item", req.Name),
		zap.Bool("checked", req.Checked),
	)
	c.JSON(http.StatusOK, gin.H{"grocery_list": record.GroceryList})
}

// HandleShoppingList 匯出給採買協作方的扁平清單
func (h *Handler) HandleShoppingList(c *gin.Context) {
	reqID := requestID(c)

	userID, ok := userIDQuery(c)
	if !ok {
		return
	}

	items, err := h.service.ShoppingList(c.Request.Context(), userID)
	if err != nil {
		common.LogError("採買清單匯出失敗",
			zap.Error(err),
			zap.String("request_id", reqID),
			zap.String("user_id", userID),
		)
		respondError(c, reqID, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// HandleSummary 查詢週摘要
func (h *Handler) HandleSummary(c *gin.Context) {
	reqID := requestID(c)

	userID, ok := userIDQuery(c)
	if !ok {
		return
	}

	record, err := h.service.GetPlan(c.Request.Context(), userID)
	if err != nil {
		common.LogError("週摘要查詢失敗",
			zap.Error(err),
			zap.String("request_id", reqID),
			zap.String("user_id", userID),
		)
		respondError(c, reqID, err)
		return
	}

	if record == nil || record.WeekSummary == nil {
		c.JSON(http.StatusOK, gin.H{"week_summary": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"week_summary": record.WeekSummary})
}

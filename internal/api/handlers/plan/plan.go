package plan

import (
	"net/http"

	planCore "meal-planner/internal/core/plan"
	planService "meal-planner/internal/core/service"
	"meal-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GenerateRequest 生成整週計畫
type GenerateRequest struct {
	UserID string             `json:"user_id" binding:"required"`
	Goals  planCore.UserGoals `json:"goals" binding:"required"`
	Preferences struct {
		DietStyle     string   `json:"diet_style,omitempty"`
		Allergies     []string `json:"allergies,omitempty"`
		MealsPerDay   int      `json:"meals_per_day,omitempty"` // 預設 3
		FavoriteFoods []string `json:"favorite_foods,omitempty"`
		DislikedFoods []string `json:"disliked_foods,omitempty"`
	} `json:"preferences"`
}

// AIGenerateRequest AI 整週生成，失敗不做本地 fallback
type AIGenerateRequest struct {
	UserID string             `json:"user_id" binding:"required"`
	Days   int                `json:"days,omitempty"` // 預設 7
	Goals  planCore.UserGoals `json:"goals"`
	Preferences struct {
		DietStyle     string   `json:"diet_style,omitempty"`
		Allergies     []string `json:"allergies,omitempty"`
		MealsPerDay   int      `json:"meals_per_day,omitempty"`
		FavoriteFoods []string `json:"favorite_foods,omitempty"`
		DislikedFoods []string `json:"disliked_foods,omitempty"`
	} `json:"preferences"`
}

// SwapMealRequest 替換單一餐點
type SwapMealRequest struct {
	UserID          string             `json:"user_id" binding:"required"`
	DayIndex        int                `json:"day_index"` // 0..6
	MealType        string             `json:"meal_type" binding:"required"`
	CurrentMealName string             `json:"current_meal_name,omitempty"`
	Goals           planCore.UserGoals `json:"goals"`
	MealsPerDay     int                `json:"meals_per_day,omitempty"`
	Reason          string             `json:"reason,omitempty"`
}

// PlanResponse 計畫查詢／生成的統一回應
// WeeklyPlan 不加 omitempty：空狀態要明確回 null，前端才好區分
type PlanResponse struct {
	Status      string                     `json:"status"`
	Error       string                     `json:"error,omitempty"`
	WeeklyPlan  *planCore.WeeklyPlan       `json:"weekly_plan"`
	GroceryList []planCore.GroceryCategory `json:"grocery_list,omitempty"`
	WeekSummary *planCore.WeekSummary      `json:"week_summary,omitempty"`
	GeneratedAt string                     `json:"generated_at,omitempty"`
}

// Handler 計畫處理程序
type Handler struct {
	service *planService.Service
}

// NewHandler 創建新的計畫處理程序
func NewHandler(service *planService.Service) *Handler {
	return &Handler{service: service}
}

func normalizePreferences(p planCore.MealPlanPreferences) planCore.MealPlanPreferences {
	if p.MealsPerDay <= 0 {
		p.MealsPerDay = 3
	}
	return p
}

func recordResponse(status planCore.Status, record *planCore.CacheRecord) PlanResponse {
	resp := PlanResponse{Status: string(status)}
	if record != nil {
		resp.WeeklyPlan = record.WeeklyPlan
		resp.GroceryList = record.GroceryList
		resp.WeekSummary = record.WeekSummary
		if !record.LastGeneratedAt.IsZero() {
			resp.GeneratedAt = record.LastGeneratedAt.Format("2006-01-02T15:04:05Z07:00")
		}
	}
	return resp
}

// HandleGenerate 生成整週計畫
func (h *Handler) HandleGenerate(c *gin.Context) {
	reqID := requestID(c)

	common.LogInfo("開始處理週計畫生成請求",
		zap.String("request_id", reqID),
		zap.String("client_ip", c.ClientIP()),
	)

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", reqID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	prefs := normalizePreferences(planCore.MealPlanPreferences{
		DietStyle:     req.Preferences.DietStyle,
		Allergies:     req.Preferences.Allergies,
		MealsPerDay:   req.Preferences.MealsPerDay,
		FavoriteFoods: req.Preferences.FavoriteFoods,
		DislikedFoods: req.Preferences.DislikedFoods,
	})

	record, err := h.service.GeneratePlan(c.Request.Context(), req.UserID, req.Goals, prefs)
	if err != nil {
		common.LogError("週計畫生成失敗",
			zap.Error(err),
			zap.String("request_id", reqID),
			zap.String("user_id", req.UserID),
		)
		respondError(c, reqID, err)
		return
	}

	common.LogInfo("週計畫生成成功",
		zap.String("request_id", reqID),
		zap.String("user_id", req.UserID),
	)

	status, _ := h.service.States().Status(req.UserID)
	c.JSON(http.StatusOK, recordResponse(status, record))
}

// HandleAIGenerate AI 整週生成
// 和 HandleGenerate 的差別：上游失敗直接回錯誤，已提交的計畫不動
func (h *Handler) HandleAIGenerate(c *gin.Context) {
	reqID := requestID(c)

	common.LogInfo("開始處理 AI 週計畫生成請求",
		zap.String("request_id", reqID),
		zap.String("client_ip", c.ClientIP()),
	)

	var req AIGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", reqID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	days := req.Days
	if days <= 0 {
		days = 7
	}
	prefs := normalizePreferences(planCore.MealPlanPreferences{
		DietStyle:     req.Preferences.DietStyle,
		Allergies:     req.Preferences.Allergies,
		MealsPerDay:   req.Preferences.MealsPerDay,
		FavoriteFoods: req.Preferences.FavoriteFoods,
		DislikedFoods: req.Preferences.DislikedFoods,
	})

	record, err := h.service.GenerateAIPlan(c.Request.Context(), req.UserID, req.Goals, prefs, days)
	if err != nil {
		common.LogError("AI 週計畫生成失敗",
			zap.Error(err),
			zap.String("request_id", reqID),
			zap.String("user_id", req.UserID),
		)
		respondError(c, reqID, err)
		return
	}

	common.LogInfo("AI 週計畫生成成功",
		zap.String("request_id", reqID),
		zap.String("user_id", req.UserID),
	)

	status, _ := h.service.States().Status(req.UserID)
	c.JSON(http.StatusOK, recordResponse(status, record))
}

// HandleSwap 替換單一餐點
func (h *Handler) HandleSwap(c *gin.Context) {
	reqID := requestID(c)

	common.LogInfo("開始處理換餐請求",
		zap.String("request_id", reqID),
		zap.String("client_ip", c.ClientIP()),
	)

	var req SwapMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", reqID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	mealsPerDay := req.MealsPerDay
	if mealsPerDay <= 0 {
		mealsPerDay = 3
	}

	result, record, err := h.service.SwapMeal(c.Request.Context(), req.UserID, planCore.SwapRequest{
		DayIndex:        req.DayIndex,
		MealType:        planCore.MealType(req.MealType),
		CurrentMealName: req.CurrentMealName,
		Goals:           req.Goals,
		MealsPerDay:     mealsPerDay,
		Reason:          req.Reason,
	})
	if err != nil {
		common.LogError("換餐失敗",
			zap.Error(err),
			zap.String("request_id", reqID),
			zap.String("user_id", req.UserID),
		)
		respondError(c, reqID, err)
		return
	}

	if !result.Success {
		// 目標不存在：既有計畫原封不動
		common.LogWarn("換餐目標不存在",
			zap.String("request_id", reqID),
			zap.String("user_id", req.UserID),
			zap.String("detail", result.Error),
		)
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   result.Error,
			"code":    common.ErrCodeValidationFailure,
		})
		return
	}

	common.LogInfo("換餐成功",
		zap.String("request_id", reqID),
		zap.String("user_id", req.UserID),
		zap.String("new_meal", result.NewMeal.Name),
	)

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"new_meal":     result.NewMeal,
		"weekly_plan":  record.WeeklyPlan,
		"grocery_list": record.GroceryList,
		"week_summary": record.WeekSummary,
	})
}

// HandleGetPlan 查詢當前計畫
// 快取未命中且遠端也沒有時回空狀態，不視為錯誤
func (h *Handler) HandleGetPlan(c *gin.Context) {
	reqID := requestID(c)

	userID, ok := userIDQuery(c)
	if !ok {
		return
	}

	record, err := h.service.GetPlan(c.Request.Context(), userID)
	if err != nil {
		common.LogError("計畫查詢失敗",
			zap.Error(err),
			zap.String("request_id", reqID),
			zap.String("user_id", userID),
		)
		respondError(c, reqID, err)
		return
	}

	status, lastErr := h.service.States().Status(userID)
	resp := recordResponse(status, record)
	resp.Error = lastErr
	c.JSON(http.StatusOK, resp)
}

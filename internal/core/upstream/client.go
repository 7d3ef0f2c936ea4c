package upstream

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"meal-planner/internal/core/plan"
	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Client 上游協作端點的客戶端
// 三個端點：一般生成、AI 整週生成（分鐘級超時）、換餐。
// 任何連線錯誤或非 OK 狀態都歸類為 NetworkFailure，
// 由呼叫端決定是否走本地 fallback
type Client struct {
	config *config.Config
	client *resty.Client
}

// GenerateRequest 一般生成端點的請求
type GenerateRequest struct {
	UserGoals   plan.UserGoals           `json:"userGoals"`
	Preferences plan.MealPlanPreferences `json:"preferences"`
	StartDate   string                   `json:"startDate"`
}

// AIPlanRequest AI 計畫端點的請求
type AIPlanRequest struct {
	UserGoals   plan.UserGoals           `json:"userGoals"`
	Preferences plan.MealPlanPreferences `json:"preferences"`
	Days        int                      `json:"days"`
}

// SwapRequest 換餐端點的請求
type SwapRequest struct {
	DayNumber       int            `json:"dayNumber"`
	MealType        plan.MealType  `json:"mealType"`
	CurrentMealName string         `json:"currentMealName"`
	UserGoals       plan.UserGoals `json:"userGoals"`
	Reason          string         `json:"reason,omitempty"`
}

// SwapResponse 換餐端點的回應
type SwapResponse struct {
	NewMeal *plan.Meal `json:"newMeal"`
}

// NewClient 創建上游客戶端
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(cfg.Upstream.BaseURL).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.Upstream.APIKey)).
		SetHeader("Content-Type", "application/json")

	return &Client{
		config: cfg,
		client: client,
	}
}

// Enabled 上游是否啟用；未啟用時呼叫端直接走本地路徑
func (c *Client) Enabled() bool {
	return c != nil && c.config.Upstream.Enabled
}

// GeneratePlan 呼叫一般生成端點，回傳原始回應位元組
// 格式交給 normalizer 處理；失敗回傳 NetworkFailure
func (c *Client) GeneratePlan(ctx context.Context, req GenerateRequest) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Upstream.GenerateTimeout)
	defer cancel()
	return c.post(ctx, "/api/v1/plan/generate", req)
}

// GenerateAIPlan 呼叫 AI 計畫端點
// 代理一次大模型呼叫，所以是分鐘級的超時；超時即中止，
// 不採納任何部分計畫
func (c *Client) GenerateAIPlan(ctx context.Context, req AIPlanRequest) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Upstream.AIPlanTimeout)
	defer cancel()
	return c.post(ctx, "/api/v1/plan/ai-generate", req)
}

// SwapMeal 呼叫換餐端點
func (c *Client) SwapMeal(ctx context.Context, req SwapRequest) (*SwapResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Upstream.GenerateTimeout)
	defer cancel()

	body, err := c.post(ctx, "/api/v1/plan/swap", req)
	if err != nil {
		return nil, err
	}

	var result SwapResponse
	if err := common.ParseJSONBytes(body, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedUpstream, err)
	}
	if result.NewMeal == nil {
		return nil, fmt.Errorf("%w: swap response missing newMeal", common.ErrMalformedUpstream)
	}
	return &result, nil
}

// post 發送請求並統一錯誤分類
func (c *Client) post(ctx context.Context, path string, body interface{}) ([]byte, error) {
	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(body).
		Post(path)
	common.LogUpstreamCall(path, time.Since(start), err, "")

	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrNetworkFailure, err)
	}

	if resp.StatusCode() != http.StatusOK {
		common.LogWarn("上游回應非 OK",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode()),
		)
		return nil, fmt.Errorf("%w: upstream returned status %d", common.ErrNetworkFailure, resp.StatusCode())
	}

	return resp.Body(), nil
}

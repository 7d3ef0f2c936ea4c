package service

import (
	"context"
	"errors"
	"time"

	"meal-planner/internal/core/cache"
	"meal-planner/internal/core/plan"
	"meal-planner/internal/core/upstream"
	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/pkg/common"

	"go.uber.org/zap"
)

// Service 計畫服務，所有讀寫的統一入口
// 變更走單一寫者紀律：同一使用者同時最多一個
// generate / regenerate / swap 在途（states 裡的布林守衛負責擋）
type Service struct {
	config      *config.Config
	catalog     *plan.Catalog
	generator   *plan.Generator
	swapper     *plan.Swapper
	normalizer  *plan.Normalizer
	localCache  *cache.Manager
	remoteStore *cache.Service
	client      *upstream.Client
	states      *plan.StateContainer
	now         func() time.Time
}

// NewService 創建計畫服務
func NewService(cfg *config.Config, localCache *cache.Manager, remoteStore *cache.Service, client *upstream.Client) *Service {
	catalog := plan.NewCatalog()
	// generator 與 swapper 共用來源，且會被不同使用者同時呼叫
	rng := plan.NewLockedRand(time.Now().UnixNano())
	return &Service{
		config:      cfg,
		catalog:     catalog,
		generator:   plan.NewGenerator(catalog, rng),
		swapper:     plan.NewSwapper(catalog, rng),
		normalizer:  plan.NewNormalizer(),
		localCache:  localCache,
		remoteStore: remoteStore,
		client:      client,
		states:      plan.NewStateContainer(),
		now:         time.Now,
	}
}

// States 狀態容器存取（handler 查詢生命週期狀態用）
func (s *Service) States() plan.StateAccessor {
	return s.states
}

// GeneratePlan 生成整週計畫
// 先打遠端生成端點，連不上或格式不對就退回本地模板生成——
// 遠端失敗對使用者不是錯誤。成功後彙總採購清單、算週摘要、
// write-through 寫入兩層快取
func (s *Service) GeneratePlan(ctx context.Context, userID string, goals plan.UserGoals, prefs plan.MealPlanPreferences) (*plan.CacheRecord, error) {
	if err := s.states.BeginGenerate(userID); err != nil {
		return nil, err
	}

	weeklyPlan := s.remoteGenerate(ctx, userID, goals, prefs)
	if weeklyPlan == nil {
		// 本地 fallback：模板生成永遠可用
		weeklyPlan = s.generator.Generate(goals, prefs, s.now())
	}

	record := s.finalize(ctx, userID, weeklyPlan)
	s.states.Complete(userID)

	common.LogInfo("週計畫生成完成",
		zap.String("user_id", userID),
		zap.Int("days", len(weeklyPlan.Days)),
	)
	return record, nil
}

// remoteGenerate 嘗試遠端生成，任何失敗都回 nil 讓呼叫端 fallback
func (s *Service) remoteGenerate(ctx context.Context, userID string, goals plan.UserGoals, prefs plan.MealPlanPreferences) *plan.WeeklyPlan {
	if !s.client.Enabled() {
		return nil
	}

	body, err := s.client.GeneratePlan(ctx, upstream.GenerateRequest{
		UserGoals:   goals,
		Preferences: prefs,
		StartDate:   plan.FormatLocalDate(plan.MostRecentSunday(s.now())),
	})
	if err != nil {
		common.LogWarn("遠端生成失敗，改用本地生成",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil
	}

	weeklyPlan, err := s.normalizer.Normalize(body, s.now())
	if err != nil {
		common.LogWarn("遠端回應無法正規化，改用本地生成",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil
	}
	return weeklyPlan
}

// GenerateAIPlan AI 整週生成
// 沒有本地 fallback：超時、連線失敗或格式錯誤都讓整次生成失敗，
// 不合併任何部分計畫，先前已提交的狀態原封不動
func (s *Service) GenerateAIPlan(ctx context.Context, userID string, goals plan.UserGoals, prefs plan.MealPlanPreferences, days int) (*plan.CacheRecord, error) {
	if err := s.states.BeginGenerate(userID); err != nil {
		return nil, err
	}

	if !s.client.Enabled() {
		s.states.Fail(userID, "AI plan service is not configured")
		return nil, common.ErrServiceUnavailable
	}

	body, err := s.client.GenerateAIPlan(ctx, upstream.AIPlanRequest{
		UserGoals:   goals,
		Preferences: prefs,
		Days:        days,
	})
	if err != nil {
		s.states.Fail(userID, "could not reach the meal plan service")
		return nil, err
	}

	weeklyPlan, err := s.normalizer.Normalize(body, s.now())
	if err != nil {
		s.states.Fail(userID, "the generated plan could not be read")
		return nil, err
	}

	record := s.finalize(ctx, userID, weeklyPlan)
	s.states.Complete(userID)
	return record, nil
}

// SwapMeal 替換單一餐點
// 先試遠端換餐端點，失敗退回本地換餐器；換成後重算當日總計、
// 重新彙總採購清單（保留既有勾選）、write-through 重存整份計畫
func (s *Service) SwapMeal(ctx context.Context, userID string, req plan.SwapRequest) (*plan.SwapResult, *plan.CacheRecord, error) {
	if err := s.states.BeginSwap(userID); err != nil {
		return nil, nil, err
	}

	record, err := s.loadRecord(ctx, userID)
	if err != nil || record == nil || record.WeeklyPlan == nil {
		s.states.Fail(userID, "no weekly plan to swap against")
		return nil, nil, common.ErrSwapTargetNotFound
	}

	result := s.remoteSwap(ctx, record.WeeklyPlan, req)
	if result == nil {
		local := s.swapper.Swap(record.WeeklyPlan, req)
		result = &local
	}

	if !result.Success {
		// 驗證失敗：狀態不動，回報失敗即可
		s.states.Fail(userID, result.Error)
		return result, nil, nil
	}

	// 換餐成功：採購清單重算，但使用者已勾選的項目要保留
	oldList := record.GroceryList
	newRecord := s.finalize(ctx, userID, record.WeeklyPlan)
	reapplyChecked(oldList, newRecord.GroceryList)
	s.states.Complete(userID)

	common.LogInfo("換餐完成",
		zap.String("user_id", userID),
		zap.Int("day_index", req.DayIndex),
		zap.String("meal_type", string(req.MealType)),
		zap.String("reason", req.Reason),
	)
	return result, newRecord, nil
}

// remoteSwap 嘗試遠端換餐，失敗回 nil 讓呼叫端 fallback
func (s *Service) remoteSwap(ctx context.Context, weeklyPlan *plan.WeeklyPlan, req plan.SwapRequest) *plan.SwapResult {
	if !s.client.Enabled() {
		return nil
	}

	resp, err := s.client.SwapMeal(ctx, upstream.SwapRequest{
		DayNumber:       req.DayIndex + 1,
		MealType:        req.MealType,
		CurrentMealName: req.CurrentMealName,
		UserGoals:       req.Goals,
		Reason:          req.Reason,
	})
	if err != nil {
		common.LogWarn("遠端換餐失敗，改用本地換餐", zap.Error(err))
		return nil
	}

	if req.DayIndex < 0 || req.DayIndex >= len(weeklyPlan.Days) {
		return &plan.SwapResult{Success: false, Error: "day not found"}
	}
	day := &weeklyPlan.Days[req.DayIndex]
	slot := day.MealOfType(req.MealType)
	if slot < 0 {
		return &plan.SwapResult{Success: false, Error: "meal not found"}
	}

	newMeal := *resp.NewMeal
	newMeal.MealType = req.MealType
	day.Meals[slot] = newMeal
	day.RecomputeTotals()
	return &plan.SwapResult{Success: true, NewMeal: &newMeal}
}

// GetPlan 讀取路徑：本地快取 →（過期即刪）→ 遠端存儲 → 空狀態
// 遠端查到的計畫會立即帶著新的時間戳回寫本地
func (s *Service) GetPlan(ctx context.Context, userID string) (*plan.CacheRecord, error) {
	record, err := s.localCache.Get(ctx, userID)
	if err == nil {
		s.states.MarkReady(userID)
		return record, nil
	}

	record, err = s.remoteStore.Get(ctx, userID)
	if err == nil && record != nil && record.WeeklyPlan != nil {
		record.LastGeneratedAt = s.now()
		if cacheErr := s.localCache.Set(ctx, userID, *record); cacheErr != nil {
			common.LogWarn("遠端計畫回寫本地失敗", zap.Error(cacheErr))
		}
		s.states.MarkReady(userID)
		return record, nil
	}

	// 兩層都沒有：空狀態，不是錯誤
	return nil, nil
}

// CheckGroceryItem 切換採購項目勾選狀態並立即持久化
// 這是使用者顯式觸發的寫入，失敗要往上傳，讓呼叫端能區分
// 「已儲存」和「沒存成」
func (s *Service) CheckGroceryItem(ctx context.Context, userID, category, name string, checked bool) (*plan.CacheRecord, error) {
	record, err := s.loadRecord(ctx, userID)
	if err != nil || record == nil {
		return nil, common.ErrNotFound
	}

	if !plan.SetChecked(record.GroceryList, category, name, checked) {
		return nil, common.NewValidationError("grocery item not found")
	}

	if err := s.localCache.Set(ctx, userID, *record); err != nil {
		return nil, err
	}
	if err := s.remoteStore.Set(ctx, userID, *record); err != nil {
		// 遠端寫失敗也要讓使用者知道沒存成
		if !errors.Is(err, common.ErrCacheDisabled) {
			return nil, err
		}
	}
	return record, nil
}

// ShoppingList 給採買協作方的扁平清單（未勾選、數量進位）
func (s *Service) ShoppingList(ctx context.Context, userID string) ([]plan.ShoppingItem, error) {
	record, err := s.loadRecord(ctx, userID)
	if err != nil || record == nil {
		return []plan.ShoppingItem{}, nil
	}
	return plan.ShoppingExport(record.GroceryList), nil
}

// finalize 彙總 + 摘要 + write-through，生成與換餐共用的尾段
// 快取寫入失敗只記 log 不讓操作失敗（顯式持久化除外，見
// CheckGroceryItem）
func (s *Service) finalize(ctx context.Context, userID string, weeklyPlan *plan.WeeklyPlan) *plan.CacheRecord {
	record := plan.CacheRecord{
		WeeklyPlan:      weeklyPlan,
		GroceryList:     plan.AggregateGroceries(weeklyPlan),
		WeekSummary:     plan.Summarize(weeklyPlan),
		LastGeneratedAt: s.now(),
	}

	if err := s.localCache.Set(ctx, userID, record); err != nil {
		common.LogError("本地快取寫入失敗", zap.String("user_id", userID), zap.Error(err))
	}
	if err := s.remoteStore.Set(ctx, userID, record); err != nil && !errors.Is(err, common.ErrCacheDisabled) {
		common.LogWarn("遠端存儲寫入失敗", zap.String("user_id", userID), zap.Error(err))
	}
	return &record
}

// loadRecord 取目前已提交的狀態（不觸發生成）
func (s *Service) loadRecord(ctx context.Context, userID string) (*plan.CacheRecord, error) {
	record, err := s.localCache.Get(ctx, userID)
	if err == nil {
		return record, nil
	}
	record, err = s.remoteStore.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// reapplyChecked 把舊清單的勾選狀態套回重算後的清單
// 勾選是唯一獨立持久化的可變欄位，重算不能把它洗掉
func reapplyChecked(oldList, newList []plan.GroceryCategory) {
	checked := make(map[string]bool)
	for _, category := range oldList {
		for _, item := range category.Items {
			if item.Checked {
				checked[category.Category+"\x00"+item.Name] = true
			}
		}
	}
	if len(checked) == 0 {
		return
	}
	for i := range newList {
		for j := range newList[i].Items {
			if checked[newList[i].Category+"\x00"+newList[i].Items[j].Name] {
				newList[i].Items[j].Checked = true
			}
		}
	}
}

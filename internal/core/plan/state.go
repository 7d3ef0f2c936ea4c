package plan

import (
	"sync"

	"meal-planner/internal/pkg/common"
)

// Status 計畫生成生命週期狀態
type Status string

const (
	StatusIdle         Status = "idle"
	StatusGenerating   Status = "generating"
	StatusReady        Status = "ready"
	StatusFailed       Status = "failed"
	StatusSwapping     Status = "swapping"
	StatusRegenerating Status = "regenerating"
)

// StateAccessor 狀態容器的對外介面，測試可以自行構造隔離實例
type StateAccessor interface {
	Status(userID string) (Status, string)
	BeginGenerate(userID string) error
	BeginSwap(userID string) error
	Complete(userID string)
	Fail(userID string, message string)
}

// StateContainer 顯式狀態容器，所有變更走單一寫者紀律：
// 每個使用者同時最多一個 generate / regenerate / swap 在途，
// 重複啟動同類操作直接回失敗（不排隊、不取消在途操作）
type StateContainer struct {
	mu     sync.Mutex
	states map[string]*userState
}

type userState struct {
	status  Status
	lastErr string // Failed 時的人類可讀訊息
}

// NewStateContainer 創建狀態容器
func NewStateContainer() *StateContainer {
	return &StateContainer{states: make(map[string]*userState)}
}

func (c *StateContainer) state(userID string) *userState {
	st, ok := c.states[userID]
	if !ok {
		st = &userState{status: StatusIdle}
		c.states[userID] = st
	}
	return st
}

// Status 取得當前狀態與最後一次失敗訊息
func (c *StateContainer) Status(userID string) (Status, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.state(userID)
	return st.status, st.lastErr
}

// BeginGenerate 進入生成狀態
// Idle/Failed → Generating；Ready → Regenerating；
// 已在 Generating/Regenerating/Swapping 時立即拒絕
func (c *StateContainer) BeginGenerate(userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.state(userID)
	switch st.status {
	case StatusGenerating, StatusRegenerating, StatusSwapping:
		return common.ErrOperationInFlight
	case StatusReady:
		st.status = StatusRegenerating
	default:
		st.status = StatusGenerating
	}
	st.lastErr = ""
	return nil
}

// BeginSwap 進入換餐狀態，只允許從 Ready 出發
func (c *StateContainer) BeginSwap(userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.state(userID)
	switch st.status {
	case StatusSwapping, StatusGenerating, StatusRegenerating:
		return common.ErrOperationInFlight
	case StatusReady:
		st.status = StatusSwapping
		st.lastErr = ""
		return nil
	default:
		return common.NewValidationError("no plan to swap against")
	}
}

// Complete 操作成功，回到 Ready
func (c *StateContainer) Complete(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.state(userID)
	st.status = StatusReady
	st.lastErr = ""
}

// Fail 操作失敗，記下訊息；換餐失敗時既有計畫仍在，狀態回 Ready
// 永不自動重試，重試由使用者再打一次 generate
func (c *StateContainer) Fail(userID string, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.state(userID)
	if st.status == StatusSwapping {
		st.status = StatusReady
	} else {
		st.status = StatusFailed
	}
	st.lastErr = message
}

// MarkReady 讀取路徑採納了快取或遠端的計畫時直接標記 Ready
func (c *StateContainer) MarkReady(userID string) {
	c.Complete(userID)
}

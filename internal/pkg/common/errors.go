package common

import (
	"errors"
	"net/http"
)

// ErrorResponse 定義 API 錯誤響應結構
type ErrorResponse struct {
	Code    string `json:"code"`              // 錯誤代碼
	Message string `json:"message"`           // 錯誤信息
	Details string `json:"details,omitempty"` // 詳細信息（僅在開發模式顯示）
}

// CustomError 定義自定義錯誤類型
type CustomError struct {
	Code    string // 錯誤代碼
	Message string // 錯誤信息
	Err     error  // 原始錯誤
	Status  int    // HTTP 狀態碼
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap 返回原始錯誤，支援 errors.Is / errors.As
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewError 創建新的自定義錯誤
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// ValidationError 表示驗證錯誤（swap 目標不存在等）
type ValidationError struct {
	message string
}

// Error 實現 error 介面
func (e *ValidationError) Error() string {
	return e.message
}

// NewValidationError 創建新的驗證錯誤
func NewValidationError(message string) error {
	return &ValidationError{
		message: message,
	}
}

// IsValidationError 檢查是否為驗證錯誤
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// 預定義錯誤代碼
const (
	// 客戶端錯誤 (4xx)
	ErrCodeInvalidRequest  = "INVALID_REQUEST"   // 400
	ErrCodeNotFound        = "NOT_FOUND"         // 404
	ErrCodeRequestTimeout  = "REQUEST_TIMEOUT"   // 408
	ErrCodeConflict        = "CONFLICT"          // 409
	ErrCodeTooManyRequests = "TOO_MANY_REQUESTS" // 429

	// 服務器錯誤 (5xx)
	ErrCodeInternalError      = "INTERNAL_ERROR"      // 500
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE" // 503
	ErrCodeGatewayTimeout     = "GATEWAY_TIMEOUT"     // 504

	// 業務錯誤代碼
	ErrCodeNetworkFailure       = "NETWORK_FAILURE"
	ErrCodeMalformedUpstream    = "MALFORMED_UPSTREAM_PAYLOAD"
	ErrCodeMalformedCache       = "MALFORMED_CACHE_PAYLOAD"
	ErrCodeValidationFailure    = "VALIDATION_FAILURE"
	ErrCodeOperationInFlight    = "OPERATION_IN_FLIGHT"
	ErrCodeCacheDisabledFailure = "CACHE_DISABLED"
)

// 預定義錯誤
var (
	// 客戶端錯誤
	ErrInvalidRequest  = NewError(ErrCodeInvalidRequest, "無效的請求", http.StatusBadRequest, nil)
	ErrNotFound        = NewError(ErrCodeNotFound, "資源不存在", http.StatusNotFound, nil)
	ErrRequestTimeout  = NewError(ErrCodeRequestTimeout, "請求超時", http.StatusRequestTimeout, nil)
	ErrTooManyRequests = NewError(ErrCodeTooManyRequests, "請求過於頻繁", http.StatusTooManyRequests, nil)

	// 服務器錯誤
	ErrInternalError      = NewError(ErrCodeInternalError, "服務器內部錯誤", http.StatusInternalServerError, nil)
	ErrServiceUnavailable = NewError(ErrCodeServiceUnavailable, "服務暫時不可用", http.StatusServiceUnavailable, nil)
	ErrGatewayTimeout     = NewError(ErrCodeGatewayTimeout, "網關超時", http.StatusGatewayTimeout, nil)

	// 業務錯誤
	// NetworkFailure：遠端生成／換餐服務不可達或回應非 OK，不致命，觸發本地 fallback
	ErrNetworkFailure = NewError(ErrCodeNetworkFailure, "上游服務無法連線", http.StatusBadGateway, nil)
	// MalformedUpstreamPayload：AI 回應不符合任何已知格式，整次生成視為失敗
	ErrMalformedUpstream = NewError(ErrCodeMalformedUpstream, "上游回應格式無法解析", http.StatusBadGateway, nil)
	// MalformedCachePayload：本地快取損毀，靜默當作 cache miss
	ErrMalformedCache = NewError(ErrCodeMalformedCache, "快取內容無法解析", http.StatusInternalServerError, nil)
	// ValidationFailure：換餐目標（日或餐別）不存在
	ErrSwapTargetNotFound = NewError(ErrCodeValidationFailure, "找不到要替換的餐點", http.StatusNotFound, nil)
	// OperationInFlight：同類操作尚未完成，直接拒絕（re-entrancy guard）
	ErrOperationInFlight = NewError(ErrCodeOperationInFlight, "相同操作進行中", http.StatusConflict, nil)
	ErrCacheDisabled     = NewError(ErrCodeCacheDisabledFailure, "緩存已禁用", http.StatusServiceUnavailable, nil)
	ErrCacheExpired      = NewError("CACHE_EXPIRED", "快取已過期", http.StatusNotFound, nil)
	ErrCacheMiss         = NewError("CACHE_MISS", "快取未命中", http.StatusNotFound, nil)
)

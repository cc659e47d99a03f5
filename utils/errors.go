package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 错误码
const (
	ErrCodeNotFound            = "RESOURCE_NOT_FOUND"
	ErrCodeInvalidAmount       = "INVALID_AMOUNT"
	ErrCodeOverpaymentRejected = "OVERPAYMENT_REJECTED"
	ErrCodePersistenceFailure  = "PERSISTENCE_FAILURE"
	ErrCodeBadRequest          = "BAD_REQUEST"
	ErrCodeUncertainOperation  = "UNCERTAIN_OPERATION"
)

// ApiError 自定义API错误
type ApiError struct {
	StatusCode int
	Message    string
	ErrorCode  string
}

// Error 实现error接口
func (e *ApiError) Error() string {
	return e.Message
}

// NewApiError 创建API错误
func NewApiError(message string, statusCode int, errorCode string) *ApiError {
	return &ApiError{
		StatusCode: statusCode,
		Message:    message,
		ErrorCode:  errorCode,
	}
}

// CreateNotFoundError 创建资源不存在错误
func CreateNotFoundError(resource string) *ApiError {
	return NewApiError(resource+"不存在", http.StatusNotFound, ErrCodeNotFound)
}

// CreateInvalidAmountError 创建金额非法错误
func CreateInvalidAmountError(message string) *ApiError {
	return NewApiError(message, http.StatusBadRequest, ErrCodeInvalidAmount)
}

// CreateOverpaymentError 创建超额付款错误
func CreateOverpaymentError(message string) *ApiError {
	return NewApiError(message, http.StatusUnprocessableEntity, ErrCodeOverpaymentRejected)
}

// CreatePersistenceError 创建持久化失败错误
func CreatePersistenceError(message string) *ApiError {
	return NewApiError(message, http.StatusInternalServerError, ErrCodePersistenceFailure)
}

// CreateBadRequestError 创建错误请求错误
func CreateBadRequestError(message string) *ApiError {
	return NewApiError(message, http.StatusBadRequest, ErrCodeBadRequest)
}

// CreateUncertainOperationError 创建操作结果不确定错误
func CreateUncertainOperationError() *ApiError {
	return NewApiError(
		"操作状态不确定，请刷新页面查看最新状态",
		http.StatusInternalServerError,
		ErrCodeUncertainOperation,
	)
}

// HandleError 处理错误并返回适当的响应
func HandleError(c *gin.Context, err error) {
	if c == nil {
		return
	}
	// 记录错误
	errorMessage := err.Error()
	LogError(err, map[string]interface{}{
		"path":   c.Request.URL.Path,
		"method": c.Request.Method,
	}, errorMessage)

	// 处理API错误
	if apiErr, ok := err.(*ApiError); ok {
		response := gin.H{"success": false, "error": apiErr.Message}
		if apiErr.ErrorCode != "" {
			response["code"] = apiErr.ErrorCode
		}
		c.JSON(apiErr.StatusCode, response)
		return
	}

	// 其他未预期的错误
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   errorMessage,
		"success": false,
	})
}

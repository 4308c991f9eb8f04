package errprocess

import (
	"errors"
	"fmt"

	"marketplace_service/pkg/logger"
)

// 錯誤類別，handler 用 errors.Is 分流對應的 HTTP 狀態
var (
	// ErrNotFound referenced record does not exist
	ErrNotFound = errors.New("not found")
	// ErrValidation malformed input
	ErrValidation = errors.New("validation failed")
)

// Set set err info
func Set(errMsg string) error {
	logger.Log.Error(errMsg)
	return errors.New(errMsg)
}

// NotFound wrap ErrNotFound with detail
func NotFound(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrNotFound}, args...)...)
}

// Validation wrap ErrValidation with detail
func Validation(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrValidation}, args...)...)
}

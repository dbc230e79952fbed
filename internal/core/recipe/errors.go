package recipe

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrModelUnavailable = errors.New("similarity model unavailable")
	ErrUpstream         = errors.New("upstream store failure")
)

// WrapError 保留錯誤種類並加上操作名稱
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return fmt.Errorf("%s: %w", operation, kind)
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}

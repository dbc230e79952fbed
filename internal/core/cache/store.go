package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Store 推薦結果快取；未命中時回傳 ok=false 且 err=nil
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Key 由 namespace 與各組成部分產生固定長度的快取鍵
func Key(namespace string, parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "\x1f")))
	return namespace + ":" + hex.EncodeToString(hash[:])
}

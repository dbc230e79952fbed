package similarity

import (
	"sync"
	"sync/atomic"
)

// Holder 保存目前使用中的 Index。重新載入時整個快照替換，
// 進行中的請求繼續使用它們拿到的舊快照。
type Holder struct {
	current atomic.Pointer[Index]
}

func NewHolder() *Holder {
	return &Holder{}
}

// Current 目前的快照，尚未載入時為 nil
func (h *Holder) Current() *Index {
	return h.current.Load()
}

// Available 是否已有可用模型
func (h *Holder) Available() bool {
	return h.current.Load() != nil
}

// Store 替換快照並回傳舊的
func (h *Holder) Store(idx *Index) *Index {
	return h.current.Swap(idx)
}

// Reload 由檔案重新載入；失敗時保留原快照
func (h *Holder) Reload(p Paths) (*Index, error) {
	idx, err := Load(p)
	if err != nil {
		return nil, err
	}
	h.current.Store(idx)
	return idx, nil
}

// Reloader 綁定檔案位置與 Holder，SIGHUP 與管理端點共用；同一時間只允許一個重新載入
type Reloader struct {
	mu     sync.Mutex
	holder *Holder
	paths  Paths
	hooks  []func(*Index, error)
}

// NewReloader hooks 在每次重新載入後呼叫（成功時 err 為 nil）
func NewReloader(h *Holder, p Paths, hooks ...func(*Index, error)) *Reloader {
	return &Reloader{holder: h, paths: p, hooks: hooks}
}

func (r *Reloader) Reload() (*Index, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, err := r.holder.Reload(r.paths)
	for _, hook := range r.hooks {
		hook(idx, err)
	}
	return idx, err
}

func (r *Reloader) Holder() *Holder {
	return r.holder
}

package similarity

import "fmt"

// ModelLoadError 模型檔案缺失、格式錯誤或形狀不一致
type ModelLoadError struct {
	Artifact string
	Path     string
	Err      error
}

func (e *ModelLoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("load model artifact %s: %v", e.Artifact, e.Err)
	}
	return fmt.Sprintf("load model artifact %s (%s): %v", e.Artifact, e.Path, e.Err)
}

func (e *ModelLoadError) Unwrap() error {
	return e.Err
}

package similarity

import (
	"compress/gzip"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"recipe-recommender/internal/pkg/common"
)

const (
	ArtifactManifest    = "manifest"
	ArtifactVectorizer  = "vectorizer"
	ArtifactMatrix      = "matrix"
	ArtifactRecipeIDMap = "recipe_id_map"
	ArtifactIndex       = "index"
)

// Paths 模型檔案位置；檔名皆相對於 Dir，除非是絕對路徑
type Paths struct {
	Dir         string
	Manifest    string
	Vectorizer  string
	Matrix      string
	RecipeIDMap string
}

// Manifest 可選的 manifest.yaml，用來覆寫檔名並標示模型版本
type Manifest struct {
	Version     string `yaml:"version"`
	Vectorizer  string `yaml:"vectorizer"`
	Matrix      string `yaml:"matrix"`
	RecipeIDMap string `yaml:"recipe_id_map"`
}

// LoadManifest 讀取 manifest；檔案不存在時回傳 os.ErrNotExist
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}

func (p Paths) path(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(p.Dir, name)
}

// Load 讀取三個模型檔案並建立 Index，任何失敗都回傳 *ModelLoadError
func Load(p Paths) (*Index, error) {
	version := ""
	if p.Manifest != "" {
		manifestPath := p.path(p.Manifest)
		m, err := LoadManifest(manifestPath)
		switch {
		case err == nil:
			version = m.Version
			if m.Vectorizer != "" {
				p.Vectorizer = m.Vectorizer
			}
			if m.Matrix != "" {
				p.Matrix = m.Matrix
			}
			if m.RecipeIDMap != "" {
				p.RecipeIDMap = m.RecipeIDMap
			}
		case errors.Is(err, os.ErrNotExist):
			// manifest 可省略
		default:
			return nil, &ModelLoadError{Artifact: ArtifactManifest, Path: manifestPath, Err: err}
		}
	}

	sum := sha256.New()

	var vSpec VectorizerSpec
	vPath := p.path(p.Vectorizer)
	if err := readArtifact(vPath, sum, &vSpec); err != nil {
		return nil, &ModelLoadError{Artifact: ArtifactVectorizer, Path: vPath, Err: err}
	}
	vectorizer, err := NewVectorizer(vSpec)
	if err != nil {
		return nil, &ModelLoadError{Artifact: ArtifactVectorizer, Path: vPath, Err: err}
	}

	var mSpec MatrixSpec
	mPath := p.path(p.Matrix)
	if err := readArtifact(mPath, sum, &mSpec); err != nil {
		return nil, &ModelLoadError{Artifact: ArtifactMatrix, Path: mPath, Err: err}
	}
	matrix, err := NewMatrix(mSpec)
	if err != nil {
		return nil, &ModelLoadError{Artifact: ArtifactMatrix, Path: mPath, Err: err}
	}

	var ids []int64
	idPath := p.path(p.RecipeIDMap)
	if err := readArtifact(idPath, sum, &ids); err != nil {
		return nil, &ModelLoadError{Artifact: ArtifactRecipeIDMap, Path: idPath, Err: err}
	}

	meta := Metadata{
		Version:     version,
		Fingerprint: hex.EncodeToString(sum.Sum(nil)),
		LoadedAt:    time.Now(),
	}
	idx, err := NewIndex(vectorizer, matrix, ids, meta)
	if err != nil {
		return nil, &ModelLoadError{Artifact: ArtifactIndex, Path: p.Dir, Err: err}
	}
	return idx, nil
}

// readArtifact 讀取 JSON（可為 .gz）並把原始位元組寫入 fingerprint
func readArtifact(path string, sum hash.Hash, v interface{}) error {
	if path == "" {
		return errors.New("path is empty")
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("open gzip: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	sum.Write(data)

	if err := common.ParseJSONBytes(data, v); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

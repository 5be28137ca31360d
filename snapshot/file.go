package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rushteam/shoprec/core"
)

// FileStore 把最新快照存为本地文件。
//
// 原子替换：写入同目录下的临时文件，fsync 后 rename 到目标路径。
// rename 在同一文件系统内是原子的，并发读者要么看到旧快照、要么看到新快照。
type FileStore struct {
	// Path 是快照文件路径，例如 "cache/rec_model.json"
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (s *FileStore) Name() string { return "snapshot_file" }

func (s *FileStore) Put(_ context.Context, m *core.SimilarityModel) error {
	data, err := Encode(m)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("snapshot: mkdir %s: %w", dir, err)
	}

	// 临时文件必须与目标同目录，跨文件系统的 rename 不保证原子
	tmp, err := os.CreateTemp(dir, filepath.Base(s.Path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("snapshot: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // rename 成功后为 no-op

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("snapshot: write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("snapshot: sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("snapshot: close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.Path); err != nil {
		return fmt.Errorf("snapshot: swap snapshot: %w", err)
	}
	return nil
}

func (s *FileStore) Latest(_ context.Context) (*core.SimilarityModel, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, core.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("snapshot: read %s: %w", s.Path, err)
	}
	return Decode(data)
}

var _ core.SnapshotStore = (*FileStore)(nil)

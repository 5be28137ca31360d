package snapshot

import (
	"context"

	"github.com/rushteam/shoprec/core"
)

// KVStore 把最新快照存在 core.Store 的单个 key 下（Redis 等）。
// 单 key 的覆盖写本身即原子替换，多实例部署时共享同一份模型。
type KVStore struct {
	Store core.Store

	// Key 是快照的存储 key；为空时使用默认值
	Key string
}

const defaultSnapshotKey = "rec:model:latest"

func NewKVStore(store core.Store, key string) *KVStore {
	if key == "" {
		key = defaultSnapshotKey
	}
	return &KVStore{Store: store, Key: key}
}

func (s *KVStore) Name() string { return "snapshot_kv:" + s.Store.Name() }

func (s *KVStore) Put(ctx context.Context, m *core.SimilarityModel) error {
	data, err := Encode(m)
	if err != nil {
		return err
	}
	return s.Store.Set(ctx, s.Key, data)
}

func (s *KVStore) Latest(ctx context.Context) (*core.SimilarityModel, error) {
	data, err := s.Store.Get(ctx, s.Key)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, core.ErrSnapshotNotFound
		}
		return nil, err
	}
	return Decode(data)
}

var _ core.SnapshotStore = (*KVStore)(nil)

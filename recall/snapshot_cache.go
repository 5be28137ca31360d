package recall

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/rushteam/shoprec/core"
)

// SnapshotCache 在打分路径上缓存最新模型快照。
//
// 快照在两次训练之间不变，逐请求反序列化纯属浪费；
// 这里用短 TTL + singleflight 合并并发加载：缓存过期时只有一个
// 请求真正去读快照存储，其余请求共享该次结果。
type SnapshotCache struct {
	Store core.SnapshotStore

	// TTL 是缓存有效期；<=0 时取默认 30 秒。
	// 新快照最晚在一个 TTL 之后被所有打分请求看到。
	TTL time.Duration

	group singleflight.Group

	mu        sync.RWMutex
	cached    *core.SimilarityModel
	fetchedAt time.Time
}

const defaultSnapshotTTL = 30 * time.Second

// Get 返回最新快照。
// 尚未训练过模型时透传 core.ErrSnapshotNotFound（不缓存未命中，
// 首次训练完成后下一个请求即可看到模型）；存储层错误向上传递。
func (c *SnapshotCache) Get(ctx context.Context) (*core.SimilarityModel, error) {
	ttl := c.TTL
	if ttl <= 0 {
		ttl = defaultSnapshotTTL
	}

	c.mu.RLock()
	if c.cached != nil && time.Since(c.fetchedAt) < ttl {
		m := c.cached
		c.mu.RUnlock()
		return m, nil
	}
	c.mu.RUnlock()

	v, err, _ := c.group.Do("latest", func() (interface{}, error) {
		m, err := c.Store.Latest(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.cached = m
		c.fetchedAt = time.Now()
		c.mu.Unlock()
		return m, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*core.SimilarityModel), nil
}

// Invalidate 使缓存立即失效（训练完成后可调用，缩短新模型可见延迟）。
func (c *SnapshotCache) Invalidate() {
	c.mu.Lock()
	c.cached = nil
	c.mu.Unlock()
}

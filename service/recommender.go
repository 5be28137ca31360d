// Package service 把离线训练与在线打分组装为一个可部署的推荐服务：
// 管理侧的异步训练触发 + 请求侧的同步推荐查询。
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rushteam/shoprec/config"
	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/filter"
	"github.com/rushteam/shoprec/history"
	"github.com/rushteam/shoprec/model"
	"github.com/rushteam/shoprec/pipeline"
	"github.com/rushteam/shoprec/recall"
	"github.com/rushteam/shoprec/rerank"
)

// Options 是 Recommender 的显式依赖集合。
type Options struct {
	Orders    core.OrderStore
	Catalog   core.CatalogStore
	Snapshots core.SnapshotStore

	// KV 用于动态黑名单等运营数据（可选）
	KV core.Store

	Rec      config.RecConfig
	CacheTTL time.Duration

	Logger  zerolog.Logger
	Metrics *Metrics
}

// Recommender 是推荐服务门面。
//
// 在线链路（每请求同步执行）：
//
//	ItemCF 召回 → 过滤（黑名单/表达式）→ TopN 截断 → 目录解析
//
// 离线链路（后台异步执行）：
//
//	购买历史聚合 → 相似度训练 → 快照原子替换
type Recommender struct {
	trainer *model.Trainer
	cache   *recall.SnapshotCache
	pipe    *pipeline.Pipeline
	logger  zerolog.Logger
	metrics *Metrics
	defN    int
}

// New 组装推荐服务。Orders / Catalog / Snapshots 为必填依赖。
func New(opts Options) (*Recommender, error) {
	if opts.Orders == nil || opts.Catalog == nil || opts.Snapshots == nil {
		return nil, fmt.Errorf("service: orders, catalog and snapshots are required")
	}

	agg := &history.Aggregator{Orders: opts.Orders}
	cache := &recall.SnapshotCache{Store: opts.Snapshots, TTL: opts.CacheTTL}

	nodes := []pipeline.Node{
		&recall.ItemCF{Snapshots: cache, History: agg},
	}

	var filters []filter.Filter
	if len(opts.Rec.Blacklist) > 0 || (opts.KV != nil && opts.Rec.BlacklistKey != "") {
		filters = append(filters, filter.NewBlacklistFilter(opts.Rec.Blacklist, opts.KV, opts.Rec.BlacklistKey))
	}
	if len(opts.Rec.FilterExprs) > 0 {
		filters = append(filters, filter.NewExprFilter(opts.Rec.FilterExprs))
	}
	if len(filters) > 0 {
		nodes = append(nodes, &filter.FilterNode{Filters: filters})
	}

	nodes = append(nodes,
		&rerank.TopNNode{Default: opts.Rec.DefaultCount},
		&resolveNode{Catalog: opts.Catalog},
	)

	return &Recommender{
		trainer: &model.Trainer{
			Aggregator: agg,
			Snapshots:  opts.Snapshots,
			Logger:     opts.Logger,
		},
		cache:   cache,
		pipe:    &pipeline.Pipeline{Nodes: nodes},
		logger:  opts.Logger,
		metrics: opts.Metrics,
		defN:    opts.Rec.DefaultCount,
	}, nil
}

// Recommendation 是一次推荐查询的结果。
// ModelVersion / TrainedAt 是新鲜度指标：模型只在训练触发时整体重建，
// 调用方可据此判断推荐落后于最新购买行为的程度。
type Recommendation struct {
	UserID       int64           `json:"user_id"`
	Products     []*core.Product `json:"products"`
	ModelVersion string          `json:"model_version,omitempty"`
	TrainedAt    *time.Time      `json:"trained_at,omitempty"`
}

// Recommend 为用户生成最多 count 条推荐（count <= 0 时取默认值）。
// "无可推荐"（未训练/无购买/无候选）一律返回空列表而非错误；
// 存储层故障向上传递，由调用方决定重试/告警。
func (r *Recommender) Recommend(ctx context.Context, userID int64, count int) (*Recommendation, error) {
	start := time.Now()
	rec := &Recommendation{UserID: userID, Products: []*core.Product{}}

	snap, err := r.cache.Get(ctx)
	if err != nil {
		if core.IsSnapshotNotFound(err) {
			// 尚未训练过模型：正常的初始状态
			r.observeRecommend(start, 0)
			return rec, nil
		}
		return nil, err
	}
	rec.ModelVersion = snap.Version
	trainedAt := snap.TrainedAt
	rec.TrainedAt = &trainedAt

	rctx := &core.RecommendContext{UserID: userID, Count: count}
	items, err := r.pipe.Run(ctx, rctx, nil)
	if err != nil {
		return nil, err
	}

	for _, it := range items {
		if it == nil || it.Product == nil {
			continue
		}
		rec.Products = append(rec.Products, it.Product)
	}

	r.observeRecommend(start, len(rec.Products))
	return rec, nil
}

// StartTrain 异步触发一轮训练并立即返回（fire-and-forget）。
// 刻意不做并发互斥：并发训练竞争写入时最后写入者胜出（见快照存储的约定）。
// 训练继承独立的后台 context，不随触发请求的取消而中断。
func (r *Recommender) StartTrain() {
	go func() {
		err := r.TrainOnce(context.Background())
		if err != nil {
			r.logger.Error().Err(err).Msg("recommendation model training failed")
		}
	}()
}

// TrainOnce 同步执行一轮训练（调度器与测试使用）。
func (r *Recommender) TrainOnce(ctx context.Context) error {
	start := time.Now()
	err := r.trainer.Train(ctx)

	if r.metrics != nil {
		r.metrics.ObserveTrain(time.Since(start), err)
	}
	if err == nil {
		// 让新快照立即对打分请求可见，而不是等缓存 TTL 过期
		r.cache.Invalidate()
	}
	return err
}

func (r *Recommender) observeRecommend(start time.Time, resultCount int) {
	if r.metrics != nil {
		r.metrics.ObserveRecommend(time.Since(start), resultCount)
	}
}

// resolveNode 是目录解析节点：把候选 ID 解析为完整商品记录。
// 解析失败（商品已删除/下架）的候选被静默丢弃：结果长度收缩，
// 不补位、不留空洞、不中断整个请求。
type resolveNode struct {
	Catalog core.CatalogStore
}

func (n *resolveNode) Name() string        { return "postprocess.resolve" }
func (n *resolveNode) Kind() pipeline.Kind { return pipeline.KindPostProcess }

func (n *resolveNode) Process(
	ctx context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		p, err := n.Catalog.ProductByID(ctx, it.ID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			continue
		}
		it.Product = p
		out = append(out, it)
	}
	return out, nil
}

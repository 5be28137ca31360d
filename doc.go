// Package shoprec 是商城的个性化推荐服务（基于物品协同过滤）。
//
// 设计要点：
// - Pipeline-first: 在线打分通过 Node 串联（Recall → Filter → ReRank → PostProcess）
// - 离线/在线分离: 训练器全量重算并原子替换快照；打分器只读最新快照
// - 接口在 core: 订单/目录/快照存储均为领域接口，后端（postgres/redis/file）可替换
//
// 运维说明：训练是全量重算而非增量更新，推荐新鲜度受训练触发频率限制。
// 训练之后发生的购买不影响推荐结果，直到下一次训练完成。两次训练并发执行
// 时最后写入者胜出，败者的快照被静默丢弃——这是接受的（罕见）竞争。
package shoprec

import "github.com/rushteam/shoprec/pipeline"

// 轻量 facade：便于用户直接 import "shoprec" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)

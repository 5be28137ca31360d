package service

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Scheduler 按 cron 表达式周期性触发训练。
//
// 训练是全量重算，推荐新鲜度受调度频率限制——调低频率意味着新购买
// 行为更晚反映到推荐里（见包 shoprec 的运维说明）。
type Scheduler struct {
	cron   *cron.Cron
	logger zerolog.Logger
}

// NewScheduler 注册周期训练任务。cronExpr 为空时返回 (nil, nil)：不做调度，
// 只保留管理接口的手动触发。
func NewScheduler(cronExpr string, r *Recommender, logger zerolog.Logger) (*Scheduler, error) {
	if cronExpr == "" {
		return nil, nil
	}

	c := cron.New()
	_, err := c.AddFunc(cronExpr, func() {
		if err := r.TrainOnce(context.Background()); err != nil {
			logger.Error().Err(err).Msg("scheduled training failed")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("service: invalid train cron %q: %w", cronExpr, err)
	}

	return &Scheduler{cron: c, logger: logger}, nil
}

func (s *Scheduler) Start() {
	s.logger.Info().Msg("training scheduler started")
	s.cron.Start()
}

// Stop 停止调度；已在执行中的训练不被中断。
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

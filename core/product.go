package core

import (
	"context"
	"time"
)

// Product 是商品详情记录（products 表的投影）。
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	ImageURL    string    `json:"image_url"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PurchasePair 是一条 (用户, 商品) 购买记录。
// 由支付成功类订单的行项目投影而来，重复购买折叠为一条。
type PurchasePair struct {
	UserID    int64
	ProductID int64
}

// CatalogStore 是商品目录的领域接口（只读）。
type CatalogStore interface {
	// Name 返回存储后端名称（用于日志/监控）
	Name() string

	// ProductByID 按 ID 获取商品详情。
	// 商品不存在或已下架时返回 (nil, nil)，由调用方静默跳过；
	// 存储层故障返回 error。
	ProductByID(ctx context.Context, productID int64) (*Product, error)
}

package core

import (
	"context"
	"time"
)

// OrderStatus 是订单状态。支付成功类状态（paid / processing / delivered）
// 计入购买历史；pending / cancelled / payment_error 不计入。
type OrderStatus string

const (
	OrderStatusPending      OrderStatus = "pending"
	OrderStatusProcessing   OrderStatus = "processing"
	OrderStatusPaid         OrderStatus = "paid"
	OrderStatusPaymentError OrderStatus = "payment_error"
	OrderStatusDelivered    OrderStatus = "delivered"
	OrderStatusCancelled    OrderStatus = "cancelled"
)

// CompletedStatuses 是计入购买历史的订单状态集合。
var CompletedStatuses = []OrderStatus{
	OrderStatusPaid,
	OrderStatusProcessing,
	OrderStatusDelivered,
}

// IsCompleted 判断状态是否计入购买历史。
func (s OrderStatus) IsCompleted() bool {
	switch s {
	case OrderStatusPaid, OrderStatusProcessing, OrderStatusDelivered:
		return true
	}
	return false
}

// OrderItem 是订单行项目。
type OrderItem struct {
	ProductID int64
	Quantity  int
	Price     float64
}

// Order 是订单及其行项目。
type Order struct {
	ID        int64
	Code      string // 对外订单号，例如 "ORD-1A2B3C4D"
	UserID    int64
	Status    OrderStatus
	Items     []OrderItem
	CreatedAt time.Time
}

// OrderStore 是订单存储的领域接口（只读）。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（store）实现
//   - 查询的具体 SQL/索引形态由存储层自行决定
//
// 实现：
//   - store.PostgresOrderStore（gorm + postgres，生产）
//   - store.MemoryOrderStore（内存，测试/开发）
type OrderStore interface {
	// Name 返回存储后端名称（用于日志/监控）
	Name() string

	// CompletedOrders 全量获取支付成功类订单及其行项目。
	// 离线训练专用：不分页，读全量历史。无符合条件的订单时返回空切片而非错误。
	CompletedOrders(ctx context.Context) ([]Order, error)

	// CompletedOrdersByUser 获取单个用户的支付成功类订单及其行项目。
	CompletedOrdersByUser(ctx context.Context, userID int64) ([]Order, error)
}

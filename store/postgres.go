package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/rushteam/shoprec/core"
)

// orderRow / orderItemRow / productRow 是商城库表结构（orders / order_items /
// products）的 gorm 映射。表由商城主服务拥有和迁移，本服务只读。
type orderRow struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	OrderCode     string    `gorm:"column:order_code"`
	UserID        int64     `gorm:"column:user_id"`
	Status        string    `gorm:"column:status"`
	TotalAmount   float64   `gorm:"column:total_amount"`
	PaymentMethod string    `gorm:"column:payment_method"`
	CreatedAt     time.Time `gorm:"column:created_at"`

	Items []orderItemRow `gorm:"foreignKey:OrderID"`
}

func (orderRow) TableName() string { return "orders" }

type orderItemRow struct {
	ID        int64   `gorm:"column:id;primaryKey"`
	OrderID   int64   `gorm:"column:order_id"`
	ProductID int64   `gorm:"column:product_id"`
	Quantity  int     `gorm:"column:quantity"`
	Price     float64 `gorm:"column:price"`
}

func (orderItemRow) TableName() string { return "order_items" }

type productRow struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	Name        string    `gorm:"column:name"`
	Description string    `gorm:"column:description"`
	Price       float64   `gorm:"column:price"`
	Quantity    int       `gorm:"column:quantity"`
	ImageURL    string    `gorm:"column:image_url"`
	IsActive    bool      `gorm:"column:is_active"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (productRow) TableName() string { return "products" }

// PostgresStore 是商城库上的只读存储，同时实现 core.OrderStore 和
// core.CatalogStore。
type PostgresStore struct {
	db *gorm.DB
}

// NewPostgresStore 按 DSN 连接商城库。
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("store: open postgres: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// NewPostgresStoreFromDB 复用已有连接（测试或外部连接管理）。
func NewPostgresStoreFromDB(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Name() string { return "postgres" }

func completedStatusValues() []string {
	values := make([]string, 0, len(core.CompletedStatuses))
	for _, st := range core.CompletedStatuses {
		values = append(values, string(st))
	}
	return values
}

// CompletedOrders 全量读取支付成功类订单及其行项目。离线训练专用，不分页。
func (s *PostgresStore) CompletedOrders(ctx context.Context) ([]core.Order, error) {
	var rows []orderRow
	err := s.db.WithContext(ctx).
		Where("status IN ?", completedStatusValues()).
		Preload("Items").
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("store: query completed orders: %w", err)
	}
	return toOrders(rows), nil
}

// CompletedOrdersByUser 读取单个用户的支付成功类订单及其行项目。
func (s *PostgresStore) CompletedOrdersByUser(ctx context.Context, userID int64) ([]core.Order, error) {
	var rows []orderRow
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND status IN ?", userID, completedStatusValues()).
		Preload("Items").
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("store: query orders for user %d: %w", userID, err)
	}
	return toOrders(rows), nil
}

// ProductByID 按 ID 获取在售商品。下架或不存在返回 (nil, nil)。
func (s *PostgresStore) ProductByID(ctx context.Context, productID int64) (*core.Product, error) {
	var row productRow
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", productID, true).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("store: query product %d: %w", productID, err)
	}
	p := toProduct(row)
	return &p, nil
}

func toOrders(rows []orderRow) []core.Order {
	orders := make([]core.Order, 0, len(rows))
	for _, r := range rows {
		items := make([]core.OrderItem, 0, len(r.Items))
		for _, it := range r.Items {
			items = append(items, core.OrderItem{
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				Price:     it.Price,
			})
		}
		orders = append(orders, core.Order{
			ID:        r.ID,
			Code:      r.OrderCode,
			UserID:    r.UserID,
			Status:    core.OrderStatus(r.Status),
			Items:     items,
			CreatedAt: r.CreatedAt,
		})
	}
	return orders
}

func toProduct(r productRow) core.Product {
	return core.Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Quantity:    r.Quantity,
		ImageURL:    r.ImageURL,
		IsActive:    r.IsActive,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

var (
	_ core.OrderStore   = (*PostgresStore)(nil)
	_ core.CatalogStore = (*PostgresStore)(nil)
)

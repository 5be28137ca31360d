package store

import (
	"context"
	"sync"

	"github.com/rushteam/shoprec/core"
)

// MemoryOrderStore 是内存实现的 OrderStore，用于测试/开发。
// 过滤语义与 PostgresStore 保持一致：只返回支付成功类订单。
type MemoryOrderStore struct {
	mu     sync.RWMutex
	orders []core.Order
}

func NewMemoryOrderStore(orders ...core.Order) *MemoryOrderStore {
	return &MemoryOrderStore{orders: orders}
}

func (m *MemoryOrderStore) Name() string { return "memory_order" }

// Add 追加订单（测试数据准备）。
func (m *MemoryOrderStore) Add(orders ...core.Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = append(m.orders, orders...)
}

func (m *MemoryOrderStore) CompletedOrders(ctx context.Context) ([]core.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]core.Order, 0, len(m.orders))
	for _, o := range m.orders {
		if o.Status.IsCompleted() {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *MemoryOrderStore) CompletedOrdersByUser(ctx context.Context, userID int64) ([]core.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]core.Order, 0)
	for _, o := range m.orders {
		if o.UserID == userID && o.Status.IsCompleted() {
			out = append(out, o)
		}
	}
	return out, nil
}

var _ core.OrderStore = (*MemoryOrderStore)(nil)

// MemoryCatalog 是内存实现的 CatalogStore，用于测试/开发。
// 下架商品（IsActive == false）与不存在的商品一样返回 (nil, nil)。
type MemoryCatalog struct {
	mu       sync.RWMutex
	products map[int64]core.Product
}

func NewMemoryCatalog(products ...core.Product) *MemoryCatalog {
	c := &MemoryCatalog{products: make(map[int64]core.Product, len(products))}
	for _, p := range products {
		c.products[p.ID] = p
	}
	return c
}

func (c *MemoryCatalog) Name() string { return "memory_catalog" }

// Put 写入或覆盖商品（测试数据准备）。
func (c *MemoryCatalog) Put(p core.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products[p.ID] = p
}

// Remove 删除商品（模拟商品被下架/物理删除）。
func (c *MemoryCatalog) Remove(productID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.products, productID)
}

func (c *MemoryCatalog) ProductByID(ctx context.Context, productID int64) (*core.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.products[productID]
	if !ok || !p.IsActive {
		return nil, nil
	}
	out := p
	return &out, nil
}

var _ core.CatalogStore = (*MemoryCatalog)(nil)

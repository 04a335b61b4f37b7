package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/adityarajmishra/ShopEase/models"
)

// Memory is a mutex-guarded in-memory Store with the same transactional
// contract as the Postgres one: WithinTx snapshots all state up front and
// restores it when the callback fails, so a failed checkout never leaves a
// half-applied mutation behind. Used by the engine tests and local runs
// without a database.
type Memory struct {
	mu        sync.Mutex
	products  map[uint]models.Product
	discounts map[uint]models.Discount
	carts     map[uint]models.Cart
	orders    map[uint]models.Order
	payments  map[uint]models.PaymentRecord
	nextID    uint
}

func NewMemory() *Memory {
	return &Memory{
		products:  make(map[uint]models.Product),
		discounts: make(map[uint]models.Discount),
		carts:     make(map[uint]models.Cart),
		orders:    make(map[uint]models.Order),
		payments:  make(map[uint]models.PaymentRecord),
	}
}

func (m *Memory) id() uint {
	m.nextID++
	return m.nextID
}

// PutProduct stores (or replaces) a product, assigning an ID when missing.
func (m *Memory) PutProduct(p models.Product) models.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == 0 {
		p.ID = m.id()
	}
	m.products[p.ID] = p
	return p
}

// PutDiscount stores (or replaces) a discount, assigning an ID when missing.
func (m *Memory) PutDiscount(d models.Discount) models.Discount {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d.ID == 0 {
		d.ID = m.id()
	}
	m.discounts[d.ID] = d
	return d
}

// PutCart stores (or replaces) a cart, assigning IDs where missing.
func (m *Memory) PutCart(c models.Cart) models.Cart {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == 0 {
		c.ID = m.id()
	}
	for i := range c.Items {
		if c.Items[i].ID == 0 {
			c.Items[i].ID = m.id()
		}
		c.Items[i].CartID = c.ID
	}
	m.carts[c.ID] = copyCart(c)
	return c
}

// ProductByID returns a stored product, for test assertions.
func (m *Memory) ProductByID(id uint) (models.Product, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	return p, ok
}

// DiscountByID returns a stored discount, for test assertions.
func (m *Memory) DiscountByID(id uint) (models.Discount, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.discounts[id]
	return d, ok
}

// CartCount reports how many carts are stored.
func (m *Memory) CartCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.carts)
}

// OrderCount reports how many orders are stored.
func (m *Memory) OrderCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.orders)
}

func (m *Memory) WithinTx(ctx context.Context, fn func(tx Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := m.snapshot()
	if err := fn(&memTx{m: m}); err != nil {
		m.restore(snap)
		return err
	}
	return nil
}

func (m *Memory) OrderByID(ctx context.Context, id uint) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, models.ErrOrderNotFound
	}
	out := copyOrder(o)
	if rec, ok := m.paymentFor(id); ok {
		out.PaymentRecord = &rec
	}
	return &out, nil
}

func (m *Memory) OrdersForUser(ctx context.Context, userID uint) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var orders []models.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			orders = append(orders, copyOrder(o))
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].OrderDate.After(orders[j].OrderDate) })
	return orders, nil
}

func (m *Memory) PaymentByOrder(ctx context.Context, orderID uint) (*models.PaymentRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.paymentFor(orderID)
	if !ok {
		return nil, models.ErrPaymentNotFound
	}
	return &rec, nil
}

func (m *Memory) paymentFor(orderID uint) (models.PaymentRecord, bool) {
	for _, rec := range m.payments {
		if rec.OrderID == orderID {
			return rec, true
		}
	}
	return models.PaymentRecord{}, false
}

type memState struct {
	products  map[uint]models.Product
	discounts map[uint]models.Discount
	carts     map[uint]models.Cart
	orders    map[uint]models.Order
	payments  map[uint]models.PaymentRecord
	nextID    uint
}

func (m *Memory) snapshot() memState {
	s := memState{
		products:  make(map[uint]models.Product, len(m.products)),
		discounts: make(map[uint]models.Discount, len(m.discounts)),
		carts:     make(map[uint]models.Cart, len(m.carts)),
		orders:    make(map[uint]models.Order, len(m.orders)),
		payments:  make(map[uint]models.PaymentRecord, len(m.payments)),
		nextID:    m.nextID,
	}
	for id, p := range m.products {
		s.products[id] = p
	}
	for id, d := range m.discounts {
		s.discounts[id] = d
	}
	for id, c := range m.carts {
		s.carts[id] = copyCart(c)
	}
	for id, o := range m.orders {
		s.orders[id] = copyOrder(o)
	}
	for id, rec := range m.payments {
		s.payments[id] = rec
	}
	return s
}

func (m *Memory) restore(s memState) {
	m.products = s.products
	m.discounts = s.discounts
	m.carts = s.carts
	m.orders = s.orders
	m.payments = s.payments
	m.nextID = s.nextID
}

type memTx struct {
	m *Memory
}

func (t *memTx) CartForUser(ctx context.Context, userID uint) (*models.Cart, error) {
	for _, c := range t.m.carts {
		if c.UserID == userID {
			out := copyCart(c)
			return &out, nil
		}
	}
	return nil, models.ErrCartNotFound
}

func (t *memTx) DeleteCart(ctx context.Context, cartID uint) error {
	delete(t.m.carts, cartID)
	return nil
}

func (t *memTx) ExpiredCarts(ctx context.Context, cutoff time.Time) ([]models.Cart, error) {
	var carts []models.Cart
	for _, c := range t.m.carts {
		if c.LastAccessed.Before(cutoff) {
			carts = append(carts, copyCart(c))
		}
	}
	return carts, nil
}

func (t *memTx) ProductForUpdate(ctx context.Context, id uint) (*models.Product, error) {
	p, ok := t.m.products[id]
	if !ok {
		return nil, models.ErrProductNotFound
	}
	return &p, nil
}

func (t *memTx) SaveProduct(ctx context.Context, p *models.Product) error {
	t.m.products[p.ID] = *p
	return nil
}

func (t *memTx) DiscountByCodeForUpdate(ctx context.Context, code string) (*models.Discount, error) {
	for _, d := range t.m.discounts {
		if d.Code == code {
			out := d
			return &out, nil
		}
	}
	return nil, models.ErrDiscountNotFound
}

func (t *memTx) SaveDiscount(ctx context.Context, d *models.Discount) error {
	t.m.discounts[d.ID] = *d
	return nil
}

func (t *memTx) CreateOrder(ctx context.Context, o *models.Order) error {
	o.ID = t.m.id()
	for i := range o.Items {
		o.Items[i].ID = t.m.id()
		o.Items[i].OrderID = o.ID
	}
	t.m.orders[o.ID] = copyOrder(*o)
	return nil
}

func (t *memTx) OrderForUpdate(ctx context.Context, id uint) (*models.Order, error) {
	o, ok := t.m.orders[id]
	if !ok {
		return nil, models.ErrOrderNotFound
	}
	out := copyOrder(o)
	return &out, nil
}

func (t *memTx) SaveOrder(ctx context.Context, o *models.Order) error {
	t.m.orders[o.ID] = copyOrder(*o)
	return nil
}

func (t *memTx) PaymentByOrder(ctx context.Context, orderID uint) (*models.PaymentRecord, error) {
	rec, ok := t.m.paymentFor(orderID)
	if !ok {
		return nil, models.ErrPaymentNotFound
	}
	return &rec, nil
}

func (t *memTx) SavePayment(ctx context.Context, p *models.PaymentRecord) error {
	if p.ID == 0 {
		p.ID = t.m.id()
	}
	t.m.payments[p.ID] = *p
	return nil
}

func copyCart(c models.Cart) models.Cart {
	out := c
	out.Items = append([]models.CartItem(nil), c.Items...)
	return out
}

func copyOrder(o models.Order) models.Order {
	out := o
	out.Items = append([]models.OrderItem(nil), o.Items...)
	if o.DiscountID != nil {
		id := *o.DiscountID
		out.DiscountID = &id
	}
	out.PaymentRecord = nil
	return out
}

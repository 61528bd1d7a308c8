package services

import (
	"sort"
	"storefront/internal/models"
	"strings"
	"sync"
	"time"
)

// In-memory repository mocks. The order mock shares the coupon mock's store
// so CreateRedeemingCoupon can mimic the database's atomic conditional
// increment under a single lock.

type mockProductRepo struct {
	mu       sync.Mutex
	products map[uint]*models.Product
	nextID   uint
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{products: map[uint]*models.Product{}}
}

func (m *mockProductRepo) Create(p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	p.ID = m.nextID
	cp := *p
	m.products[p.ID] = &cp
	return nil
}

func (m *mockProductRepo) GetByID(id uint) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, models.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockProductRepo) GetAll() ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Product
	for _, p := range m.products {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockProductRepo) GetByCategory(category string) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Product
	for _, p := range m.products {
		if p.Category == category {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockProductRepo) Update(p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.products[p.ID] = &cp
	return nil
}

func (m *mockProductRepo) Delete(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.products, id)
	return nil
}

type mockCouponRepo struct {
	mu      sync.Mutex
	coupons map[uint]*models.Coupon
	nextID  uint
}

func newMockCouponRepo() *mockCouponRepo {
	return &mockCouponRepo{coupons: map[uint]*models.Coupon{}}
}

func (m *mockCouponRepo) Create(c *models.Coupon) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	c.ID = m.nextID
	cp := *c
	m.coupons[c.ID] = &cp
	return nil
}

func (m *mockCouponRepo) GetByID(id uint) (*models.Coupon, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.coupons[id]
	if !ok {
		return nil, models.ErrCouponNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *mockCouponRepo) GetByCode(code string) (*models.Coupon, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.coupons {
		if strings.EqualFold(c.Code, code) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, models.ErrCouponNotFound
}

func (m *mockCouponRepo) GetAll() ([]models.Coupon, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Coupon
	for _, c := range m.coupons {
		out = append(out, *c)
	}
	return out, nil
}

func (m *mockCouponRepo) Update(c *models.Coupon) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	m.coupons[c.ID] = &cp
	return nil
}

func (m *mockCouponRepo) Delete(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.coupons, id)
	return nil
}

// usedCount reads the stored counter directly, bypassing copies.
func (m *mockCouponRepo) usedCount(id uint) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.coupons[id].UsedCount
}

type mockOrderRepo struct {
	mu         sync.Mutex
	orders     map[uint]*models.Order
	nextID     uint
	coupons    *mockCouponRepo
	createErr  error // injected failure for the persistence step
	createdSeq int   // monotonic creation counter for newest-first ordering
}

func newMockOrderRepo(coupons *mockCouponRepo) *mockOrderRepo {
	return &mockOrderRepo{orders: map[uint]*models.Order{}, coupons: coupons}
}

func (m *mockOrderRepo) storeLocked(o *models.Order) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	o.ID = m.nextID
	m.createdSeq++
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Unix(int64(m.createdSeq), 0)
	}
	cp := *o
	cp.Items = append([]models.OrderItem(nil), o.Items...)
	m.orders[o.ID] = &cp
	return nil
}

func (m *mockOrderRepo) Create(o *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.storeLocked(o)
}

func (m *mockOrderRepo) CreateRedeemingCoupon(o *models.Order, couponID uint) error {
	m.coupons.mu.Lock()
	defer m.coupons.mu.Unlock()
	coupon, ok := m.coupons.coupons[couponID]
	if !ok {
		return models.ErrCouponNotFound
	}
	if coupon.UsageLimit != nil && coupon.UsedCount >= *coupon.UsageLimit {
		return models.ErrCouponUsageExceeded
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.storeLocked(o); err != nil {
		// both writes fail together
		return err
	}
	coupon.UsedCount++
	return nil
}

func (m *mockOrderRepo) GetByID(id uint) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, models.ErrOrderNotFound
	}
	cp := *o
	cp.Items = append([]models.OrderItem(nil), o.Items...)
	return &cp, nil
}

func (m *mockOrderRepo) GetByUserID(userID uint) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *mockOrderRepo) GetAll() ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Order
	for _, o := range m.orders {
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *mockOrderRepo) Update(o *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[o.ID]; !ok {
		return models.ErrOrderNotFound
	}
	cp := *o
	cp.Items = append([]models.OrderItem(nil), o.Items...)
	m.orders[o.ID] = &cp
	return nil
}

func (m *mockOrderRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.orders)
}

type mockUserRepo struct {
	mu     sync.Mutex
	users  map[uint]*models.User
	nextID uint
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: map[uint]*models.User{}}
}

func (m *mockUserRepo) Create(u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	u.ID = m.nextID
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *mockUserRepo) GetByID(id uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserRepo) GetByEmail(email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (m *mockUserRepo) GetAll() ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.User
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *mockUserRepo) Update(u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *mockUserRepo) Delete(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
	return nil
}

type mockNotifier struct {
	mu    sync.Mutex
	calls []string // order numbers notified
	err   error
}

func (m *mockNotifier) NotifyStatusChange(order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, order.OrderNumber)
	return m.err
}

func (m *mockNotifier) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

package services

import (
	"context"
	"sync"

	"github.com/avtozap/carservice/app/models"
	"github.com/avtozap/carservice/app/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// memStore backs the repository fakes. Entities are stored by value so a
// test can't accidentally mutate state through a returned pointer.
type memStore struct {
	mu        sync.Mutex
	carts     map[string]models.Cart
	items     map[string]models.CartItem
	customers map[string]models.Customer
	orders    map[string]models.Order
	parts     map[models.PartRef]models.Part
}

func newMemStore() *memStore {
	return &memStore{
		carts:     map[string]models.Cart{},
		items:     map[string]models.CartItem{},
		customers: map[string]models.Customer{},
		orders:    map[string]models.Order{},
		parts:     map[models.PartRef]models.Part{},
	}
}

func (s *memStore) addPart(kind models.PartKind, id, slug string, price string) models.Part {
	p := models.Part{Kind: kind}
	p.ID = id
	p.Slug = slug
	p.Price = decimal.RequireFromString(price)
	s.parts[models.PartRef{Kind: kind, ID: id}] = p
	return p
}

func (s *memStore) snapshot() (map[string]models.Cart, map[string]models.Order) {
	carts := make(map[string]models.Cart, len(s.carts))
	for k, v := range s.carts {
		carts[k] = v
	}
	orders := make(map[string]models.Order, len(s.orders))
	for k, v := range s.orders {
		orders[k] = v
	}
	return carts, orders
}

type fakePartResolver struct {
	s *memStore
}

func (f *fakePartResolver) Resolve(ctx context.Context, ref models.PartRef) (*models.Part, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	p, ok := f.s.parts[ref]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

type fakeCartRepo struct {
	s *memStore
}

func (f *fakeCartRepo) GetByID(ctx context.Context, id string) (*models.Cart, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	cart, ok := f.s.carts[id]
	if !ok {
		return nil, nil
	}
	return &cart, nil
}

func (f *fakeCartRepo) GetWithItems(ctx context.Context, id string) (*models.Cart, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	cart, ok := f.s.carts[id]
	if !ok {
		return nil, nil
	}
	for _, item := range f.s.items {
		if item.CartID == id {
			cart.Items = append(cart.Items, item)
		}
	}
	return &cart, nil
}

func (f *fakeCartRepo) getOrCreate(activeKey string, build func() models.Cart) (*models.Cart, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, cart := range f.s.carts {
		if cart.ActiveKey != nil && *cart.ActiveKey == activeKey && !cart.InOrder {
			return &cart, nil
		}
	}
	cart := build()
	cart.ID = uuid.New().String()
	cart.ActiveKey = &activeKey
	f.s.carts[cart.ID] = cart
	return &cart, nil
}

func (f *fakeCartRepo) GetOrCreateActiveForCustomer(ctx context.Context, customerID string) (*models.Cart, error) {
	return f.getOrCreate(models.CustomerActiveKey(customerID), func() models.Cart {
		return models.Cart{CustomerID: &customerID}
	})
}

func (f *fakeCartRepo) GetOrCreateActiveForSession(ctx context.Context, sessionKey string) (*models.Cart, error) {
	return f.getOrCreate(models.SessionActiveKey(sessionKey), func() models.Cart {
		return models.Cart{SessionKey: sessionKey, ForAnonymousUser: true}
	})
}

func (f *fakeCartRepo) UpdateTotals(ctx context.Context, cartID string, totalProducts int, totalCost decimal.Decimal) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	cart, ok := f.s.carts[cartID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	cart.TotalProducts = totalProducts
	cart.TotalCost = totalCost
	f.s.carts[cartID] = cart
	return nil
}

func (f *fakeCartRepo) GetForUpdate(ctx context.Context, tx *gorm.DB, cartID string) (*models.Cart, error) {
	return f.GetByID(ctx, cartID)
}

func (f *fakeCartRepo) MarkOrdered(ctx context.Context, tx *gorm.DB, cartID string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	cart, ok := f.s.carts[cartID]
	if !ok || cart.InOrder {
		return repositories.ErrCartAlreadyOrdered
	}
	cart.InOrder = true
	cart.ActiveKey = nil
	f.s.carts[cartID] = cart
	return nil
}

var _ repositories.CartRepository = (*fakeCartRepo)(nil)

type fakeCartItemRepo struct {
	s *memStore
}

func (f *fakeCartItemRepo) GetOrCreate(ctx context.Context, item *models.CartItem) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, existing := range f.s.items {
		if existing.CartID == item.CartID && existing.PartKind == item.PartKind && existing.PartID == item.PartID {
			*item = existing
			return false, nil
		}
	}
	item.ID = uuid.New().String()
	f.s.items[item.ID] = *item
	return true, nil
}

func (f *fakeCartItemRepo) GetByCartAndPart(ctx context.Context, cartID string, ref models.PartRef) (*models.CartItem, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, item := range f.s.items {
		if item.CartID == cartID && item.PartKind == ref.Kind && item.PartID == ref.ID {
			return &item, nil
		}
	}
	return nil, nil
}

func (f *fakeCartItemRepo) Update(ctx context.Context, item *models.CartItem) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.items[item.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.s.items[item.ID] = *item
	return nil
}

func (f *fakeCartItemRepo) Delete(ctx context.Context, item *models.CartItem) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	delete(f.s.items, item.ID)
	return nil
}

func (f *fakeCartItemRepo) ListByCart(ctx context.Context, cartID string) ([]models.CartItem, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var items []models.CartItem
	for _, item := range f.s.items {
		if item.CartID == cartID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (f *fakeCartItemRepo) Totals(ctx context.Context, cartID string) (int, decimal.Decimal, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	count := 0
	sum := decimal.Zero
	for _, item := range f.s.items {
		if item.CartID == cartID {
			count++
			sum = sum.Add(item.TotalCost)
		}
	}
	return count, sum, nil
}

var _ repositories.CartItemRepository = (*fakeCartItemRepo)(nil)

type fakeCustomerRepo struct {
	s *memStore
}

func (f *fakeCustomerRepo) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	customer, ok := f.s.customers[id]
	if !ok {
		return nil, nil
	}
	return &customer, nil
}

func (f *fakeCustomerRepo) GetByUserID(ctx context.Context, userID string) (*models.Customer, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, customer := range f.s.customers {
		if customer.UserID == userID {
			return &customer, nil
		}
	}
	return nil, nil
}

func (f *fakeCustomerRepo) Create(ctx context.Context, customer *models.Customer) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if customer.ID == "" {
		customer.ID = uuid.New().String()
	}
	f.s.customers[customer.ID] = *customer
	return nil
}

func (f *fakeCustomerRepo) GetOrCreateByUserID(ctx context.Context, userID string) (*models.Customer, error) {
	if existing, err := f.GetByUserID(ctx, userID); err != nil || existing != nil {
		return existing, err
	}
	customer := &models.Customer{UserID: userID}
	if err := f.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

var _ repositories.CustomerRepository = (*fakeCustomerRepo)(nil)

type fakeOrderRepo struct {
	s         *memStore
	createErr error
}

func (f *fakeOrderRepo) Create(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	f.s.orders[order.ID] = *order
	return nil
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	order, ok := f.s.orders[id]
	if !ok {
		return nil, nil
	}
	return &order, nil
}

func (f *fakeOrderRepo) ListByCustomer(ctx context.Context, customerID string) ([]models.Order, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var orders []models.Order
	for _, order := range f.s.orders {
		if order.CustomerID == customerID {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, orderID, status string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	order, ok := f.s.orders[orderID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	order.Status = status
	f.s.orders[orderID] = order
	return nil
}

var _ repositories.OrderRepository = (*fakeOrderRepo)(nil)

// fakeTransactor mimics rollback by restoring a snapshot of the store when
// the wrapped function fails.
type fakeTransactor struct {
	s *memStore
}

func (f *fakeTransactor) WithinTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	f.s.mu.Lock()
	carts, orders := f.s.snapshot()
	f.s.mu.Unlock()

	if err := fn(nil); err != nil {
		f.s.mu.Lock()
		f.s.carts = carts
		f.s.orders = orders
		f.s.mu.Unlock()
		return err
	}
	return nil
}

var _ repositories.Transactor = (*fakeTransactor)(nil)

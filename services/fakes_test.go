package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"food-delivery/models"
)

type fakeUsers struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*models.User
}

func newFakeUsers(users ...*models.User) *fakeUsers {
	f := &fakeUsers{byID: map[int64]*models.User{}}
	for _, u := range users {
		f.byID[u.ID] = u
		if u.ID > f.nextID {
			f.nextID = u.ID
		}
	}
	return f
}

func (f *fakeUsers) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	f.byID[user.ID] = &cp
	return nil
}

func (f *fakeUsers) FindByID(_ context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, models.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) FindByPhone(_ context.Context, phone string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.PhoneNumber == phone {
			cp := *u
			return &cp, nil
		}
	}
	return nil, models.ErrRecordNotFound
}

func (f *fakeUsers) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	_, err := f.FindByPhone(ctx, phone)
	return err == nil, nil
}

func (f *fakeUsers) Update(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[user.ID]; !ok {
		return models.ErrRecordNotFound
	}
	cp := *user
	f.byID[user.ID] = &cp
	return nil
}

func (f *fakeUsers) UpdatePassword(_ context.Context, id int64, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return models.ErrRecordNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (f *fakeUsers) TouchLastLogin(_ context.Context, id int64, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[id]; ok {
		u.LastLoginAt = &at
	}
	return nil
}

func (f *fakeUsers) List(_ context.Context, page models.Page) ([]models.User, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	users := []models.User{}
	for _, u := range f.byID {
		users = append(users, *u)
	}
	return users, len(users), nil
}

func (f *fakeUsers) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok || !u.IsActive {
		return models.ErrRecordNotFound
	}
	u.IsActive = false
	return nil
}

func (f *fakeUsers) Stats(context.Context) (*models.DashboardStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &models.DashboardStats{TotalUsers: len(f.byID)}, nil
}

type fakeRefreshTokens struct {
	mu     sync.Mutex
	nextID int64
	tokens map[string]*models.RefreshToken
}

func newFakeRefreshTokens() *fakeRefreshTokens {
	return &fakeRefreshTokens{tokens: map[string]*models.RefreshToken{}}
}

func (f *fakeRefreshTokens) Save(_ context.Context, token *models.RefreshToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	token.ID = f.nextID
	cp := *token
	f.tokens[token.Token] = &cp
	return nil
}

func (f *fakeRefreshTokens) FindByToken(_ context.Context, token string) (*models.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tokens[token]
	if !ok {
		return nil, models.ErrRecordNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeRefreshTokens) Revoke(_ context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tokens {
		if t.ID == id && !t.Revoked {
			t.Revoked = true
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRefreshTokens) RevokeAllForUser(_ context.Context, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tokens {
		if t.UserID == userID {
			t.Revoked = true
		}
	}
	return nil
}

type fakeResets struct {
	mu     sync.Mutex
	nextID int64
	codes  []*models.PasswordResetCode
}

func (f *fakeResets) DeleteByUser(_ context.Context, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.codes[:0]
	for _, c := range f.codes {
		if c.UserID != userID {
			kept = append(kept, c)
		}
	}
	f.codes = kept
	return nil
}

func (f *fakeResets) Create(_ context.Context, code *models.PasswordResetCode) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	code.ID = f.nextID
	cp := *code
	f.codes = append(f.codes, &cp)
	return nil
}

func (f *fakeResets) FindLatestByUser(_ context.Context, userID int64) (*models.PasswordResetCode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.codes) - 1; i >= 0; i-- {
		if f.codes[i].UserID == userID {
			cp := *f.codes[i]
			return &cp, nil
		}
	}
	return nil, models.ErrRecordNotFound
}

func (f *fakeResets) FindByResetToken(_ context.Context, token string) (*models.PasswordResetCode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.codes {
		if c.ResetToken != nil && *c.ResetToken == token {
			cp := *c
			return &cp, nil
		}
	}
	return nil, models.ErrRecordNotFound
}

func (f *fakeResets) Update(_ context.Context, code *models.PasswordResetCode) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, c := range f.codes {
		if c.ID == code.ID {
			cp := *code
			f.codes[i] = &cp
			return nil
		}
	}
	return models.ErrRecordNotFound
}

type fakeRestaurants struct {
	mu   sync.Mutex
	byID map[int64]*models.Restaurant
}

func newFakeRestaurants(restaurants ...*models.Restaurant) *fakeRestaurants {
	f := &fakeRestaurants{byID: map[int64]*models.Restaurant{}}
	for _, r := range restaurants {
		f.byID[r.ID] = r
	}
	return f
}

func (f *fakeRestaurants) Create(_ context.Context, r *models.Restaurant) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r.ID = int64(len(f.byID) + 1)
	cp := *r
	f.byID[r.ID] = &cp
	return nil
}

func (f *fakeRestaurants) FindByID(_ context.Context, id int64) (*models.Restaurant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[id]
	if !ok {
		return nil, models.ErrRecordNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRestaurants) List(_ context.Context, filter models.RestaurantFilter, page models.Page) ([]models.Restaurant, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Restaurant{}
	for _, r := range f.byID {
		if !r.IsActive {
			continue
		}
		if filter.City != "" && !strings.EqualFold(filter.City, r.City) {
			continue
		}
		out = append(out, *r)
	}
	return out, len(out), nil
}

func (f *fakeRestaurants) ListByOwner(_ context.Context, ownerID int64) ([]models.Restaurant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Restaurant{}
	for _, r := range f.byID {
		if r.OwnerID == ownerID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRestaurants) Update(_ context.Context, r *models.Restaurant) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[r.ID]; !ok {
		return models.ErrRecordNotFound
	}
	cp := *r
	f.byID[r.ID] = &cp
	return nil
}

func (f *fakeRestaurants) UpdateOpen(_ context.Context, id int64, isOpen bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[id]
	if !ok {
		return models.ErrRecordNotFound
	}
	r.IsOpen = isOpen
	return nil
}

func (f *fakeRestaurants) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[id]
	if !ok {
		return models.ErrRecordNotFound
	}
	r.IsActive = false
	r.IsOpen = false
	return nil
}

type fakeMenus struct {
	mu   sync.Mutex
	byID map[int64]*models.MenuItem
}

func newFakeMenus(items ...*models.MenuItem) *fakeMenus {
	f := &fakeMenus{byID: map[int64]*models.MenuItem{}}
	for _, item := range items {
		f.byID[item.ID] = item
	}
	return f
}

func (f *fakeMenus) Create(_ context.Context, item *models.MenuItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	item.ID = int64(len(f.byID) + 100)
	cp := *item
	f.byID[item.ID] = &cp
	return nil
}

func (f *fakeMenus) FindByID(_ context.Context, id int64) (*models.MenuItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.byID[id]
	if !ok {
		return nil, models.ErrRecordNotFound
	}
	cp := *item
	return &cp, nil
}

func (f *fakeMenus) ListByRestaurant(_ context.Context, restaurantID int64, availableOnly bool) ([]models.MenuItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.MenuItem{}
	for id := int64(0); id <= 1000; id++ {
		item, ok := f.byID[id]
		if !ok || item.RestaurantID != restaurantID {
			continue
		}
		if availableOnly && !item.IsAvailable {
			continue
		}
		out = append(out, *item)
	}
	return out, nil
}

func (f *fakeMenus) Update(_ context.Context, item *models.MenuItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[item.ID]; !ok {
		return models.ErrRecordNotFound
	}
	cp := *item
	f.byID[item.ID] = &cp
	return nil
}

func (f *fakeMenus) UpdateAvailability(_ context.Context, id int64, available bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.byID[id]
	if !ok {
		return models.ErrRecordNotFound
	}
	item.IsAvailable = available
	return nil
}

func (f *fakeMenus) UpdateImage(_ context.Context, id int64, imageURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.byID[id]
	if !ok {
		return models.ErrRecordNotFound
	}
	item.ImageURL = &imageURL
	return nil
}

func (f *fakeMenus) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return models.ErrRecordNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeAddresses struct {
	mu   sync.Mutex
	byID map[int64]*models.Address
}

func newFakeAddresses(addresses ...*models.Address) *fakeAddresses {
	f := &fakeAddresses{byID: map[int64]*models.Address{}}
	for _, a := range addresses {
		f.byID[a.ID] = a
	}
	return f
}

func (f *fakeAddresses) Create(_ context.Context, address *models.Address) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	address.ID = int64(len(f.byID) + 1)
	cp := *address
	f.byID[address.ID] = &cp
	return nil
}

func (f *fakeAddresses) FindByID(_ context.Context, id int64) (*models.Address, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byID[id]
	if !ok {
		return nil, models.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAddresses) ListByUser(_ context.Context, userID int64) ([]models.Address, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Address{}
	for _, a := range f.byID {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAddresses) CountByUser(ctx context.Context, userID int64) (int, error) {
	list, _ := f.ListByUser(ctx, userID)
	return len(list), nil
}

func (f *fakeAddresses) Update(_ context.Context, address *models.Address) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[address.ID]; !ok {
		return models.ErrRecordNotFound
	}
	cp := *address
	f.byID[address.ID] = &cp
	return nil
}

func (f *fakeAddresses) SetDefault(_ context.Context, userID, addressID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	target, ok := f.byID[addressID]
	if !ok || target.UserID != userID {
		return models.ErrRecordNotFound
	}
	for _, a := range f.byID {
		if a.UserID == userID {
			a.IsDefault = a.ID == addressID
		}
	}
	return nil
}

func (f *fakeAddresses) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return models.ErrRecordNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeCarts keeps one cart per user and resolves live menu data from menus
// on read, like the SQL join does.
type fakeCarts struct {
	mu         sync.Mutex
	menus      *fakeMenus
	nextCartID int64
	nextItemID int64
	byUser     map[int64]*models.Cart
}

func newFakeCarts(menus *fakeMenus) *fakeCarts {
	return &fakeCarts{menus: menus, byUser: map[int64]*models.Cart{}}
}

func (f *fakeCarts) hydrate(ctx context.Context, item models.CartItem) models.CartItem {
	if m, err := f.menus.FindByID(ctx, item.MenuItemID); err == nil {
		item.MenuItemName = m.Name
		item.UnitPrice = m.Price
		item.IsAvailable = m.IsAvailable
		item.ImageURL = m.ImageURL
	}
	return item
}

func (f *fakeCarts) FindByUser(ctx context.Context, userID int64) (*models.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cart, ok := f.byUser[userID]
	if !ok {
		return nil, models.ErrRecordNotFound
	}
	cp := *cart
	cp.Items = make([]models.CartItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		cp.Items = append(cp.Items, f.hydrate(ctx, item))
	}
	return &cp, nil
}

func (f *fakeCarts) FindItem(ctx context.Context, itemID int64) (*models.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, cart := range f.byUser {
		for _, item := range cart.Items {
			if item.ID == itemID {
				hydrated := f.hydrate(ctx, item)
				return &hydrated, nil
			}
		}
	}
	return nil, models.ErrRecordNotFound
}

func sameOptions(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (f *fakeCarts) AddItem(_ context.Context, userID, restaurantID int64, line models.CartItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cart, ok := f.byUser[userID]
	if !ok {
		f.nextCartID++
		cart = &models.Cart{ID: f.nextCartID, UserID: userID, RestaurantID: restaurantID}
		f.byUser[userID] = cart
	}
	if cart.RestaurantID != restaurantID {
		if len(cart.Items) > 0 {
			return models.ErrCartRestaurantMismatch
		}
		cart.RestaurantID = restaurantID
	}
	for i := range cart.Items {
		if cart.Items[i].MenuItemID == line.MenuItemID && sameOptions(cart.Items[i].SelectedOptions, line.SelectedOptions) {
			if cart.Items[i].Quantity+line.Quantity > models.MaxCartQuantity {
				return models.ErrCartQuantityLimit
			}
			cart.Items[i].Quantity += line.Quantity
			cart.Version++
			return nil
		}
	}
	f.nextItemID++
	line.ID = f.nextItemID
	line.CartID = cart.ID
	line.UserID = userID
	cart.Items = append(cart.Items, line)
	cart.Version++
	return nil
}

func (f *fakeCarts) locate(itemID int64) (*models.Cart, int) {
	for _, cart := range f.byUser {
		for i, item := range cart.Items {
			if item.ID == itemID {
				return cart, i
			}
		}
	}
	return nil, -1
}

func (f *fakeCarts) UpdateItemQuantity(_ context.Context, itemID int64, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cart, i := f.locate(itemID)
	if cart == nil {
		return models.ErrRecordNotFound
	}
	cart.Items[i].Quantity = quantity
	cart.Version++
	return nil
}

func (f *fakeCarts) RemoveItem(_ context.Context, itemID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cart, i := f.locate(itemID)
	if cart == nil {
		return models.ErrRecordNotFound
	}
	cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
	if len(cart.Items) == 0 {
		delete(f.byUser, cart.UserID)
		return nil
	}
	cart.Version++
	return nil
}

// dropLinesFor removes every line of menuItemID and keeps the cart rows,
// the way an ON DELETE CASCADE on cart_items alone would.
func (f *fakeCarts) dropLinesFor(menuItemID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, cart := range f.byUser {
		kept := cart.Items[:0]
		for _, item := range cart.Items {
			if item.MenuItemID != menuItemID {
				kept = append(kept, item)
			}
		}
		cart.Items = kept
	}
}

func (f *fakeCarts) DeleteByUser(_ context.Context, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byUser[userID]; !ok {
		return models.ErrRecordNotFound
	}
	delete(f.byUser, userID)
	return nil
}

// fakeOrders mirrors the transactional guarantees of the pgx store: order
// creation checks and consumes the cart, status updates are compare-and-set.
type fakeOrders struct {
	mu      sync.Mutex
	carts   *fakeCarts
	nextID  int64
	byID    map[int64]*models.Order
	history map[int64][]models.OrderStatusHistory
}

func newFakeOrders(carts *fakeCarts) *fakeOrders {
	return &fakeOrders{
		carts:   carts,
		byID:    map[int64]*models.Order{},
		history: map[int64][]models.OrderStatusHistory{},
	}
}

func (f *fakeOrders) put(order *models.Order) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *order
	f.byID[order.ID] = &cp
	if order.ID > f.nextID {
		f.nextID = order.ID
	}
}

func (f *fakeOrders) CreateFromCart(_ context.Context, order *models.Order, cartID int64, cartVersion int) error {
	f.carts.mu.Lock()
	defer f.carts.mu.Unlock()
	f.mu.Lock()
	defer f.mu.Unlock()

	cart, ok := f.carts.byUser[order.UserID]
	if !ok || cart.ID != cartID || cart.Version != cartVersion {
		return models.ErrCartChanged
	}

	f.nextID++
	order.ID = f.nextID
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	for i := range order.Items {
		order.Items[i].ID = int64(i + 1)
		order.Items[i].OrderID = order.ID
	}
	cp := *order
	f.byID[order.ID] = &cp
	f.history[order.ID] = append(f.history[order.ID], models.OrderStatusHistory{
		OrderID:   order.ID,
		ToStatus:  order.Status,
		ChangedBy: order.UserID,
		CreatedAt: order.CreatedAt,
	})
	delete(f.carts.byUser, order.UserID)
	return nil
}

func (f *fakeOrders) FindByID(_ context.Context, id int64) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.byID[id]
	if !ok {
		return nil, models.ErrRecordNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrders) UpdateStatus(_ context.Context, change models.StatusChange) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.byID[change.OrderID]
	if !ok || o.Status != change.From {
		return false, nil
	}
	o.Status = change.To
	if change.To == models.OrderCancelled && change.Reason != nil {
		o.CancellationReason = change.Reason
	}
	if o.DeliveredAt == nil && change.DeliveredAt != nil {
		o.DeliveredAt = change.DeliveredAt
	}
	from := change.From
	f.history[o.ID] = append(f.history[o.ID], models.OrderStatusHistory{
		OrderID:    o.ID,
		FromStatus: &from,
		ToStatus:   change.To,
		ChangedBy:  change.ActorID,
		Reason:     change.Reason,
		CreatedAt:  time.Now(),
	})
	return true, nil
}

func (f *fakeOrders) ListByUser(_ context.Context, userID int64, page models.Page) ([]models.Order, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Order{}
	for _, o := range f.byID {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, len(out), nil
}

func (f *fakeOrders) ListByRestaurant(_ context.Context, restaurantID int64, page models.Page) ([]models.Order, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Order{}
	for _, o := range f.byID {
		if o.RestaurantID == restaurantID {
			out = append(out, *o)
		}
	}
	return out, len(out), nil
}

func (f *fakeOrders) History(_ context.Context, orderID int64) ([]models.OrderStatusHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.OrderStatusHistory{}, f.history[orderID]...), nil
}

type notifiedChange struct {
	order     models.Order
	oldStatus models.OrderStatus
}

type recordingNotifier struct {
	mu      sync.Mutex
	created []models.Order
	emails  []*string
	changes []notifiedChange
}

func (n *recordingNotifier) OrderCreated(order *models.Order, customerEmail *string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.created = append(n.created, *order)
	n.emails = append(n.emails, customerEmail)
}

func (n *recordingNotifier) OrderStatusChanged(order *models.Order, oldStatus models.OrderStatus) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changes = append(n.changes, notifiedChange{order: *order, oldStatus: oldStatus})
}

func (n *recordingNotifier) changeCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.changes)
}

type memoryMenuCache struct {
	mu    sync.Mutex
	menus map[int64]*models.RestaurantMenu
	hits  int
}

func newMemoryMenuCache() *memoryMenuCache {
	return &memoryMenuCache{menus: map[int64]*models.RestaurantMenu{}}
}

func (c *memoryMenuCache) GetMenu(_ context.Context, restaurantID int64) (*models.RestaurantMenu, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	m, ok := c.menus[restaurantID]
	if ok {
		c.hits++
	}
	return m, ok
}

func (c *memoryMenuCache) SetMenu(_ context.Context, menu *models.RestaurantMenu) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.menus[menu.RestaurantID] = menu
}

func (c *memoryMenuCache) InvalidateMenu(_ context.Context, restaurantID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.menus, restaurantID)
}

type recordingSender struct {
	mu    sync.Mutex
	codes map[string]string
	err   error
}

func (s *recordingSender) SendResetCode(_ context.Context, to, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if s.codes == nil {
		s.codes = map[string]string{}
	}
	s.codes[to] = code
	return nil
}

func strPtr(s string) *string { return &s }

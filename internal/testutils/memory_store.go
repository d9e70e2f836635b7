package testutils

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/google/uuid"
)

// MemoryStore is an in-process stand-in for the Postgres cart, order and
// transaction repositories. It keeps the same uniqueness rules: one cart line
// per (owner, product), one transaction per gateway transaction id, and only
// pending orders move on a notification.
type MemoryStore struct {
	mu           sync.Mutex
	lines        []models.CartLine
	orders       map[uuid.UUID]*models.Order
	transactions map[string]*models.Transaction
	now          func() time.Time
}

var (
	_ repository.CartRepository        = (*MemoryStore)(nil)
	_ repository.OrderRepository       = (*MemoryStore)(nil)
	_ repository.TransactionRepository = (*MemoryStore)(nil)
)

func NewMemoryStore() *MemoryStore {
	base := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	tick := 0

	return &MemoryStore{
		orders:       make(map[uuid.UUID]*models.Order),
		transactions: make(map[string]*models.Transaction),
		// strictly increasing so creation order is stable
		now: func() time.Time {
			tick++
			return base.Add(time.Duration(tick) * time.Millisecond)
		},
	}
}

func (s *MemoryStore) AddItem(_ context.Context, owner models.Identity, product models.ProductSnapshot, quantity int) (*models.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if owner.IsZero() {
		return nil, repository.ErrNoOwner
	}

	for i := range s.lines {
		line := &s.lines[i]
		if ownerKey(*line) == owner.OwnerKey() && line.ProductID == product.ProductID {
			line.Quantity = min(line.Quantity+quantity, models.MaxLineQuantity)
			line.UpdatedAt = s.now()
			copied := *line
			return &copied, nil
		}
	}

	at := s.now()
	line := models.CartLine{
		ID:             uuid.New(),
		ProductID:      product.ProductID,
		ProductName:    product.ProductName,
		ProductDetails: product.ProductDetails,
		ProductImage:   product.ProductImage,
		Price:          product.Price,
		Quantity:       quantity,
		CreatedAt:      at,
		UpdatedAt:      at,
	}
	setOwner(&line, owner)

	s.lines = append(s.lines, line)

	return &line, nil
}

func (s *MemoryStore) UpdateQuantity(_ context.Context, owner models.Identity, lineID uuid.UUID, quantity int) (*models.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		line := &s.lines[i]
		if line.ID == lineID && ownerKey(*line) == owner.OwnerKey() {
			line.Quantity = quantity
			line.UpdatedAt = s.now()
			copied := *line
			return &copied, nil
		}
	}

	return nil, repository.ErrNotFound
}

func (s *MemoryStore) RemoveItem(_ context.Context, owner models.Identity, lineID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = filterLines(s.lines, func(line models.CartLine) bool {
		return !(line.ID == lineID && ownerKey(line) == owner.OwnerKey())
	})

	return nil
}

func (s *MemoryStore) Clear(_ context.Context, owner models.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = filterLines(s.lines, func(line models.CartLine) bool {
		return ownerKey(line) != owner.OwnerKey()
	})

	return nil
}

func (s *MemoryStore) ListItems(_ context.Context, owner models.Identity) ([]models.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := []models.CartLine{}
	for _, line := range s.lines {
		if ownerKey(line) == owner.OwnerKey() {
			lines = append(lines, line)
		}
	}

	sort.SliceStable(lines, func(i, j int) bool { return lines[i].CreatedAt.Before(lines[j].CreatedAt) })

	return lines, nil
}

func (s *MemoryStore) MergeGuestCart(ctx context.Context, sessionID string, userID uuid.UUID) (int, error) {
	guest, err := s.ListItems(ctx, models.GuestIdentity(sessionID))
	if err != nil {
		return 0, err
	}

	for _, line := range guest {
		snapshot := models.ProductSnapshot{
			ProductID:      line.ProductID,
			ProductName:    line.ProductName,
			ProductDetails: line.ProductDetails,
			ProductImage:   line.ProductImage,
			Price:          line.Price,
		}
		if _, err := s.AddItem(ctx, models.UserIdentity(userID), snapshot, line.Quantity); err != nil {
			return 0, err
		}
	}

	return len(guest), s.Clear(ctx, models.GuestIdentity(sessionID))
}

func (s *MemoryStore) CreateOrder(_ context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}

	order.CreatedAt = s.now()
	order.UpdatedAt = order.CreatedAt

	for i := range order.Items {
		if order.Items[i].ID == uuid.Nil {
			order.Items[i].ID = uuid.New()
		}
		order.Items[i].OrderID = order.ID
		order.Items[i].CreatedAt = order.CreatedAt
	}

	s.orders[order.ID] = copyOrder(order)

	return nil
}

func (s *MemoryStore) GetOrderByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	return copyOrder(order), nil
}

func (s *MemoryStore) GetOrderByGatewayReference(_ context.Context, reference string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, order := range s.orders {
		if order.GatewayOrderID != nil && *order.GatewayOrderID == reference {
			return copyOrder(order), nil
		}
	}

	return nil, repository.ErrNotFound
}

func (s *MemoryStore) ListOrdersByUser(_ context.Context, userID uuid.UUID, page, size int) ([]*models.Order, int, error) {
	return s.listOrders(func(o *models.Order) bool { return o.UserID == userID }, page, size)
}

func (s *MemoryStore) ListOrders(_ context.Context, page, size int) ([]*models.Order, int, error) {
	return s.listOrders(func(*models.Order) bool { return true }, page, size)
}

func (s *MemoryStore) UpdateOrderStatus(_ context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	order.Status = status
	order.UpdatedAt = s.now()

	return copyOrder(order), nil
}

func (s *MemoryStore) GetByGatewayTransactionID(_ context.Context, gatewayTransactionID string) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txn, ok := s.transactions[gatewayTransactionID]
	if !ok {
		return nil, repository.ErrNotFound
	}

	copied := *txn
	return &copied, nil
}

func (s *MemoryStore) ListByOrder(_ context.Context, orderID uuid.UUID) ([]*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txns := []*models.Transaction{}
	for _, txn := range s.transactions {
		if txn.OrderID == orderID {
			copied := *txn
			txns = append(txns, &copied)
		}
	}

	sort.Slice(txns, func(i, j int) bool { return txns[i].CreatedAt.Before(txns[j].CreatedAt) })

	return txns, nil
}

func (s *MemoryStore) RecordNotification(_ context.Context, txn *models.Transaction) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.transactions[txn.GatewayTransactionID]; exists {
		return false, repository.ErrDuplicateTransaction
	}

	if txn.ID == uuid.Nil {
		txn.ID = uuid.New()
	}
	txn.CreatedAt = s.now()

	copied := *txn
	s.transactions[txn.GatewayTransactionID] = &copied

	order, ok := s.orders[txn.OrderID]
	if !ok || order.Status != models.OrderStatusPending {
		return false, nil
	}

	gatewayTransactionID := txn.GatewayTransactionID
	order.Status = txn.Status.OrderStatus()
	order.GatewayTransactionID = &gatewayTransactionID
	order.UpdatedAt = s.now()

	return order.Status != models.OrderStatusPending, nil
}

// Transactions returns every recorded transaction.
func (s *MemoryStore) Transactions() []models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	txns := make([]models.Transaction, 0, len(s.transactions))
	for _, txn := range s.transactions {
		txns = append(txns, *txn)
	}

	return txns
}

func (s *MemoryStore) listOrders(keep func(*models.Order) bool, page, size int) ([]*models.Order, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := []*models.Order{}
	for _, order := range s.orders {
		if keep(order) {
			matched = append(matched, copyOrder(order))
		}
	}

	// newest first
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := len(matched)
	start := (page - 1) * size
	if start >= total {
		return []*models.Order{}, total, nil
	}

	end := min(start+size, total)

	return matched[start:end], total, nil
}

func ownerKey(line models.CartLine) string {
	switch {
	case line.UserID != nil:
		return models.UserIdentity(*line.UserID).OwnerKey()
	case line.SessionID != nil:
		return models.GuestIdentity(*line.SessionID).OwnerKey()
	default:
		return ""
	}
}

func setOwner(line *models.CartLine, owner models.Identity) {
	if owner.IsAuthenticated() {
		userID := owner.UserID
		line.UserID = &userID
		return
	}

	sessionID := owner.SessionID
	line.SessionID = &sessionID
}

func filterLines(lines []models.CartLine, keep func(models.CartLine) bool) []models.CartLine {
	kept := lines[:0]
	for _, line := range lines {
		if keep(line) {
			kept = append(kept, line)
		}
	}
	return kept
}

func copyOrder(order *models.Order) *models.Order {
	copied := *order
	copied.Items = append([]models.OrderItem(nil), order.Items...)
	return &copied
}

package repo

import (
	"context"
	"sync"

	"go-gin-mongo-shop/internal/domain"
)

// Memory keeps users, products and carts in process. It implements all
// three repositories; every method copies on the way in and out.
type Memory struct {
	mu       sync.RWMutex
	users    map[string]domain.User
	byEmail  map[string]string
	products map[string]domain.Product
	order    []string // product ids in insertion order
	carts    map[string]domain.CartRef
}

func NewMemory() *Memory {
	return &Memory{
		users:    map[string]domain.User{},
		byEmail:  map[string]string{},
		products: map[string]domain.Product{},
		carts:    map[string]domain.CartRef{},
	}
}

// Users, Products and Carts expose the store through the repository
// interfaces so callers can't mix up same-named methods.
func (m *Memory) Users() domain.UserRepository       { return memUsers{m} }
func (m *Memory) Products() domain.ProductRepository { return memProducts{m} }
func (m *Memory) Carts() domain.CartRepository       { return memCarts{m} }

type memUsers struct{ m *Memory }

func (r memUsers) Create(_ context.Context, u *domain.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.byEmail[u.Email]; ok {
		return domain.ErrDuplicateEmail
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now()
	}
	r.m.users[u.ID] = *u
	r.m.byEmail[u.Email] = u.ID
	return nil
}

func (r memUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	u, ok := r.m.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r memUsers) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.m.mu.RLock()
	id, ok := r.m.byEmail[email]
	r.m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return r.FindByID(ctx, id)
}

func (r memUsers) SetCart(_ context.Context, userID, cartID string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	u, ok := r.m.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	u.CartID = cartID
	r.m.users[userID] = u
	return nil
}

type memProducts struct{ m *Memory }

func (r memProducts) List(_ context.Context) ([]domain.Product, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	out := make([]domain.Product, 0, len(r.m.order))
	for _, id := range r.m.order {
		out = append(out, r.m.products[id])
	}
	return out, nil
}

func (r memProducts) FindByID(_ context.Context, id string) (*domain.Product, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	p, ok := r.m.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r memProducts) FindByIDs(_ context.Context, ids []string) ([]domain.Product, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	out := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.m.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r memProducts) Create(_ context.Context, p *domain.Product) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	t := now()
	p.CreatedAt, p.UpdatedAt = t, t
	if _, ok := r.m.products[p.ID]; !ok {
		r.m.order = append(r.m.order, p.ID)
	}
	r.m.products[p.ID] = *p
	return nil
}

func (r memProducts) Update(_ context.Context, id string, f domain.ProductFields) (*domain.Product, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p, ok := r.m.products[id]
	if !ok {
		return nil, nil
	}
	f.Apply(&p)
	p.UpdatedAt = now()
	r.m.products[id] = p
	return &p, nil
}

func (r memProducts) Delete(_ context.Context, id string) (*domain.Product, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p, ok := r.m.products[id]
	if !ok {
		return nil, nil
	}
	delete(r.m.products, id)
	for i, oid := range r.m.order {
		if oid == id {
			r.m.order = append(r.m.order[:i], r.m.order[i+1:]...)
			break
		}
	}
	return &p, nil
}

type memCarts struct{ m *Memory }

func (r memCarts) FindByID(_ context.Context, id string) (*domain.CartRef, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	c, ok := r.m.carts[id]
	if !ok {
		return nil, nil
	}
	c.ProductIDs = append([]string(nil), c.ProductIDs...)
	return &c, nil
}

func (r memCarts) Save(_ context.Context, c *domain.CartRef) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	cp := *c
	cp.ProductIDs = append([]string(nil), c.ProductIDs...)
	r.m.carts[c.ID] = cp
	return nil
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-gin-mongo-shop/internal/core/config"
	"go-gin-mongo-shop/internal/domain"
	"go-gin-mongo-shop/internal/repo"
)

func seeded(t *testing.T) (*repo.Store, storeOpener) {
	t.Helper()
	t.Setenv("APP_JWT_SECRET", "cli-secret")
	t.Setenv("APP_DB_DRIVER", "memory")
	t.Chdir(t.TempDir())

	ctx := context.Background()
	s := repo.NewMemoryStore()
	require.NoError(t, s.Users.Create(ctx, &domain.User{
		ID: "u1", Name: "Ann", Email: "a@x.com", PasswordHash: "$2a$10$hash", Token: "tok", Role: domain.RoleUser,
	}))
	for _, id := range []string{"p1", "p2"} {
		require.NoError(t, s.Products.Create(ctx, &domain.Product{ID: id, Name: "item " + id, Price: 1, Stock: 1}))
	}
	return s, func(context.Context, *config.Config, *zap.Logger) (*repo.Store, error) { return s, nil }
}

func run(t *testing.T, open storeOpener, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out, open)
	cmd.SetArgs(args)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	return out.String(), err
}

func TestUserShow(t *testing.T) {
	_, open := seeded(t)

	out, err := run(t, open, "user", "show", "a@x.com")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"u1","name":"Ann","email":"a@x.com","role":"user"}`, out)
	assert.NotContains(t, out, "hash")
	assert.NotContains(t, out, "tok")

	_, err = run(t, open, "user", "show", "ghost@x.com")
	assert.ErrorContains(t, err, "not found")
}

func TestCartSetAndShow(t *testing.T) {
	s, open := seeded(t)

	out, err := run(t, open, "cart", "show", "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "null\n", out)

	out, err = run(t, open, "cart", "set", "a@x.com", "p2", "p1")
	require.NoError(t, err)
	var cart domain.Cart
	require.NoError(t, json.Unmarshal([]byte(out), &cart))
	require.Len(t, cart.Products, 2)
	assert.Equal(t, "p2", cart.Products[0].ID)
	assert.Equal(t, "p1", cart.Products[1].ID)

	u, err := s.Users.FindByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, cart.ID, u.CartID)

	_, err = run(t, open, "cart", "set", "a@x.com", "nope")
	assert.ErrorContains(t, err, "product not found")

	out, err = run(t, open, "cart", "set", "a@x.com")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &cart))
	assert.Empty(t, cart.Products)
}

func TestArgs(t *testing.T) {
	_, open := seeded(t)

	_, err := run(t, open, "cart", "set")
	assert.Error(t, err)
	_, err = run(t, open, "user", "show")
	assert.Error(t, err)
}

func TestConfigRequired(t *testing.T) {
	t.Setenv("APP_JWT_SECRET", "")
	t.Chdir(t.TempDir())
	_, err := run(t, openStore, "user", "show", "a@x.com")
	assert.Error(t, err)
}

func TestStoreClosedAfterEveryCommand(t *testing.T) {
	s, _ := seeded(t)
	closed := 0
	open := func(context.Context, *config.Config, *zap.Logger) (*repo.Store, error) {
		return &repo.Store{
			Users: s.Users, Products: s.Products, Carts: s.Carts,
			Close: func() error { closed++; return nil },
		}, nil
	}

	_, err := run(t, open, "user", "show", "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, 1, closed)

	_, err = run(t, open, "user", "show", "ghost@x.com")
	assert.Error(t, err)
	assert.Equal(t, 2, closed, "closed when the command fails")

	_, err = run(t, open, "cart", "set", "a@x.com", "nope")
	assert.ErrorContains(t, err, "product not found")
	assert.Equal(t, 3, closed)
}

func TestStoreCloseErrorIsReported(t *testing.T) {
	s, _ := seeded(t)
	open := func(context.Context, *config.Config, *zap.Logger) (*repo.Store, error) {
		return &repo.Store{
			Users: s.Users, Products: s.Products, Carts: s.Carts,
			Close: func() error { return errors.New("close failed") },
		}, nil
	}
	_, err := run(t, open, "user", "show", "a@x.com")
	assert.ErrorContains(t, err, "close failed")
}

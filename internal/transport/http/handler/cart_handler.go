package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-gin-mongo-shop/internal/domain"
	"go-gin-mongo-shop/internal/service"
	"go-gin-mongo-shop/internal/transport/http/ez"
	mdw "go-gin-mongo-shop/internal/transport/http/middleware"
)

type CartHandler struct{ svc CartService }

func NewCartHandler(svc CartService) *CartHandler { return &CartHandler{svc: svc} }

func (h *CartHandler) Priority() int { return 30 }

type cartOut struct {
	Message string       `json:"message"`
	Cart    *domain.Cart `json:"cart"`
}

func (h *CartHandler) MountAPI(_, authed *gin.RouterGroup) {
	ez.RegisterAction(ez.New(authed), ez.Action[struct{}, cartOut]{
		Method: http.MethodGet,
		Path:   "/cart",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (cartOut, error) {
			u, _ := mdw.CurrentUser(c)
			cart, err := h.svc.GetForUser(c.Request.Context(), u.Email)
			if errors.Is(err, service.ErrUserNotFound) {
				return cartOut{}, ez.BadRequest("User not found")
			}
			if err != nil {
				return cartOut{}, err
			}
			return cartOut{Message: "user found", Cart: cart}, nil
		},
	})
}

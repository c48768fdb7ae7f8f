package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-gin-mongo-shop/internal/domain"
	"go-gin-mongo-shop/internal/service"
	"go-gin-mongo-shop/internal/transport/http/ez"
	mdw "go-gin-mongo-shop/internal/transport/http/middleware"
)

type ProductHandler struct{ svc ProductService }

func NewProductHandler(svc ProductService) *ProductHandler { return &ProductHandler{svc: svc} }

func (h *ProductHandler) Priority() int { return 20 }

// productIn converts to domain.ProductFields; only the bind tags differ.
type productIn struct {
	Name        *string  `json:"name"        binding:"required"`
	Description *string  `json:"description"`
	Image       *string  `json:"image"`
	Price       *float64 `json:"price"       binding:"required"`
	Stock       *int     `json:"stock"       binding:"required"`
	Brand       *string  `json:"brand"`
}

type editIn struct {
	ProductData *domain.ProductFields `json:"productData" binding:"required"`
}

type productsOut struct {
	Message  string           `json:"message"`
	Products []domain.Product `json:"products"`
}

type productOut struct {
	Message string          `json:"message"`
	Product *domain.Product `json:"product"`
}

func (h *ProductHandler) MountAPI(public, authed *gin.RouterGroup) {
	pub := ez.New(public)
	priv := ez.New(authed)

	ez.RegisterAction(pub, ez.Action[struct{}, productsOut]{
		Method: http.MethodGet,
		Path:   "/products",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (productsOut, error) {
			ps, err := h.svc.List(c.Request.Context())
			if err != nil {
				return productsOut{}, err
			}
			return productsOut{Message: "Product found successfully", Products: ps}, nil
		},
	})

	ez.RegisterAction(priv, ez.Action[productIn, productOut]{
		Method:  http.MethodPost,
		Path:    "/add-product",
		Binder:  ez.BindJSON,
		BindMsg: "Some fields are Missing",
		Status:  http.StatusCreated,
		Auth:    true,
		Handler: func(c *gin.Context, in *productIn) (productOut, error) {
			u, _ := mdw.CurrentUser(c)
			p, err := h.svc.Create(c.Request.Context(), u.ID, domain.ProductFields(*in))
			if errors.Is(err, service.ErrInvalidProduct) {
				return productOut{}, ez.BadRequest("Some fields are Missing")
			}
			if err != nil {
				return productOut{}, err
			}
			return productOut{Message: "Product created successfully", Product: p}, nil
		},
	})

	ez.RegisterAction(priv, ez.Action[struct{}, productOut]{
		Method: http.MethodGet,
		Path:   "/product/:id",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (productOut, error) {
			id := strings.TrimSpace(c.Param("id"))
			if id == "" {
				return productOut{}, ez.BadRequest("Product Id not found")
			}
			p, err := h.svc.Get(c.Request.Context(), id)
			if errors.Is(err, service.ErrProductNotFound) {
				return productOut{}, ez.BadRequest("Product not found")
			}
			if err != nil {
				return productOut{}, err
			}
			return productOut{Message: "success", Product: p}, nil
		},
	})

	ez.RegisterAction(priv, ez.Action[editIn, productOut]{
		Method:  http.MethodPatch,
		Path:    "/product/edit/:id",
		Binder:  ez.BindJSON,
		BindMsg: "productData is required",
		Auth:    true,
		Handler: func(c *gin.Context, in *editIn) (productOut, error) {
			if in.ProductData.Empty() {
				return productOut{}, ez.BadRequest("productData is required")
			}
			p, err := h.svc.Replace(c.Request.Context(), strings.TrimSpace(c.Param("id")), *in.ProductData)
			switch {
			case errors.Is(err, service.ErrProductNotFound):
				return productOut{}, ez.NotFound("Product not found")
			case errors.Is(err, service.ErrInvalidProduct):
				return productOut{}, ez.BadRequest("Invalid productData")
			case err != nil:
				return productOut{}, err
			}
			return productOut{Message: "product updated successfully", Product: p}, nil
		},
	})

	// Delete is reachable without a token.
	ez.RegisterAction(pub, ez.Action[struct{}, productOut]{
		Method: http.MethodDelete,
		Path:   "/product/delete/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (productOut, error) {
			id := strings.TrimSpace(c.Param("id"))
			if id == "" {
				return productOut{}, ez.BadRequest("Product id not found")
			}
			p, err := h.svc.Delete(c.Request.Context(), id)
			if errors.Is(err, service.ErrProductNotFound) {
				return productOut{}, ez.NotFound("Product not found")
			}
			if err != nil {
				return productOut{}, err
			}
			return productOut{Message: "Product deleted successfully", Product: p}, nil
		},
	})
}

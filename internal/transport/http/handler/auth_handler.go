package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-gin-mongo-shop/internal/domain"
	"go-gin-mongo-shop/internal/service"
	"go-gin-mongo-shop/internal/transport/http/ez"
	resp "go-gin-mongo-shop/internal/transport/http/response"
)

type AuthHandler struct{ svc AuthService }

func NewAuthHandler(svc AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

func (h *AuthHandler) Priority() int { return 10 }

type registerIn struct {
	Email    string `json:"email"    binding:"required"`
	Name     string `json:"name"     binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginIn struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginOut struct {
	Message string      `json:"message"`
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Token   string      `json:"token"`
	Email   string      `json:"email"`
	Role    domain.Role `json:"role"`
}

func (h *AuthHandler) MountAPI(public, _ *gin.RouterGroup) {
	e := ez.New(public)

	ez.RegisterAction(e, ez.Action[registerIn, resp.Message]{
		Method:  http.MethodPost,
		Path:    "/register",
		Binder:  ez.BindJSON,
		BindMsg: "Some fields are Missing",
		Status:  http.StatusCreated,
		Handler: func(c *gin.Context, in *registerIn) (resp.Message, error) {
			_, err := h.svc.Register(c.Request.Context(), service.RegisterInput{
				Email: in.Email, Name: in.Name, Password: in.Password,
			})
			switch {
			case errors.Is(err, service.ErrMissingFields):
				return resp.Message{}, ez.BadRequest("Some fields are Missing")
			case errors.Is(err, service.ErrPasswordTooLong):
				return resp.Message{}, ez.BadRequest("Password must be at most 72 bytes")
			case errors.Is(err, service.ErrEmailTaken):
				return resp.Message{}, ez.BadRequest("User already has a account")
			case err != nil:
				return resp.Message{}, err
			}
			return resp.Msg("User created Successfully"), nil
		},
	})

	// Login hands back the token stored at registration.
	ez.RegisterAction(e, ez.Action[loginIn, loginOut]{
		Method:  http.MethodPost,
		Path:    "/login",
		Binder:  ez.BindJSON,
		BindMsg: "Email and password are required",
		Handler: func(c *gin.Context, in *loginIn) (loginOut, error) {
			u, err := h.svc.Login(c.Request.Context(), in.Email, in.Password)
			switch {
			case errors.Is(err, service.ErrMissingFields):
				return loginOut{}, ez.BadRequest("Email and password are required")
			case errors.Is(err, service.ErrInvalidCredentials):
				return loginOut{}, ez.BadRequest("invalid email or password")
			case err != nil:
				return loginOut{}, err
			}
			return loginOut{
				Message: "Login successful",
				ID:      u.ID,
				Name:    u.Name,
				Token:   u.Token,
				Email:   u.Email,
				Role:    u.Role,
			}, nil
		},
	})
}

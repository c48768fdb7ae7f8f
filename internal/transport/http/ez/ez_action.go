package ez

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	resp "go-gin-mongo-shop/internal/transport/http/response"
)

// Context keys set by the auth middleware.
const (
	KeyUser   = "user"
	KeyUserID = "userId"
	KeyRole   = "role"
)

type EZ struct{ g *gin.RouterGroup }

func New(g *gin.RouterGroup) EZ { return EZ{g: g} }

type Binder string

const (
	BindJSON  Binder = "json"
	BindQuery Binder = "query"
	BindNone  Binder = "none" // handler reads c.Param itself
)

// AErr carries the status and client message of a failed action. Err, when
// set, is attached to the gin context for the access log and never sent.
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &AErr{Code: http.StatusBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: http.StatusUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &AErr{Code: http.StatusForbidden, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Code: http.StatusNotFound, Msg: msg} }
func Internal(err error) error {
	return &AErr{Code: http.StatusInternalServerError, Msg: resp.MsgInternal, Err: err}
}

// Action describes one endpoint: I is the bound input, O the response body.
type Action[I any, O any] struct {
	Method  string
	Path    string
	Binder  Binder
	BindMsg string // 400 message when binding fails
	Status  int    // success status, 200 when zero
	Auth    bool   // require an identified caller
	Handler func(c *gin.Context, in *I) (O, error)
}

func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	status := a.Status
	if status == 0 {
		status = http.StatusOK
	}
	bindMsg := a.BindMsg
	if bindMsg == "" {
		bindMsg = "invalid request"
	}

	h := func(c *gin.Context) {
		if a.Auth && c.GetString(KeyUserID) == "" {
			resp.Abort(c, http.StatusUnauthorized, "Token is required")
			return
		}

		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		default:
		}
		if bindErr != nil {
			_ = c.Error(bindErr).SetType(gin.ErrorTypeBind)
			resp.Abort(c, http.StatusBadRequest, bindMsg)
			return
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			Fail(c, err)
			return
		}
		c.JSON(status, out)
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodPatch:
		e.g.PATCH(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default:
		e.g.POST(a.Path, h)
	}
}

// Fail writes err as a {message} response. Anything that is not an AErr is
// a 500 with a generic message; the cause only reaches the log.
func Fail(c *gin.Context, err error) {
	var ae *AErr
	if !errors.As(err, &ae) {
		ae = &AErr{Code: http.StatusInternalServerError, Msg: resp.MsgInternal, Err: err}
	}
	if ae.Err != nil {
		_ = c.Error(ae.Err)
	}
	resp.Abort(c, ae.Code, ae.Error())
}

package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"go-gin-mongo-shop/internal/core/server"
	mdw "go-gin-mongo-shop/internal/transport/http/middleware"
	resp "go-gin-mongo-shop/internal/transport/http/response"
)

// Options zero values disable the matching middleware, except TokenHeader.
type Options struct {
	RequestTimeout time.Duration
	MaxBodyBytes   int64
	TokenHeader    string
}

func NewAPIEngine(l *zap.Logger, opt Options, v mdw.TokenVerifier, ident mdw.Identifier, mods ...APIModule) *gin.Engine {
	r := server.NewRouter(l,
		mdw.RequestID(),
		mdw.AccessLog(l),
		mdw.Metrics(),
	)
	if opt.MaxBodyBytes > 0 {
		r.Use(mdw.MaxBodyBytes(opt.MaxBodyBytes))
	}
	if opt.RequestTimeout > 0 {
		r.Use(mdw.Timeout(opt.RequestTimeout))
	}

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, resp.Msg("ok")) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.NoRoute(func(c *gin.Context) { resp.Abort(c, http.StatusNotFound, "Not found") })

	public := r.Group("")
	authed := r.Group("")
	authed.Use(mdw.AuthToken(v, opt.TokenHeader, ident))

	var reg Registry
	reg.Register(mods...)
	reg.MountAll(public, authed)

	return r
}

package app

import (
	"fmt"
	"net"
	"net/http"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/rawen554/qrcodegen/internal/middleware/auth"
	"github.com/rawen554/qrcodegen/internal/middleware/compress"
	ginLogger "github.com/rawen554/qrcodegen/internal/middleware/logger"
	"github.com/rawen554/qrcodegen/internal/middleware/requestid"
)

const (
	pingPath     = "/ping"
	qrCodePath   = "/qrcode"
	downloadPath = "/download"
	typesPath    = "/types"
)

func (a *App) SetupRouter() (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestid.RequestID())
	r.Use(compress.Compress(a.logger.Named("compress_middleware")))
	r.Use(limitBody(a.config.MaxBodyBytes))
	r.Use(ginLogger.Logger(a.logger.Named("middleware")))

	if a.config.ProfileMode {
		if _, _, err := net.ParseCIDR(a.config.TrustedSubnet); err != nil {
			return nil, fmt.Errorf("profile mode requires a valid trusted subnet: %w", err)
		}
		debug := r.Group("/debug", auth.NewSubnetChecker(a.config.TrustedSubnet, a.logger.Named("subnet_checker")))
		pprof.RouteRegister(debug, "pprof")
	}

	r.GET(pingPath, a.Ping)

	api := r.Group("/api")
	{
		qrCodeAPI := api.Group(qrCodePath)
		{
			qrCodeAPI.POST("", a.GenerateQRCode)
			qrCodeAPI.POST(downloadPath, a.DownloadQRCode)
			qrCodeAPI.GET(typesPath, a.ListTypes)
		}
	}

	return r, nil
}

func limitBody(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}

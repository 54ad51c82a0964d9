package auth

import (
	"errors"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rawen554/qrcodegen/internal/middleware/requestid"
	"go.uber.org/zap"
)

const realIPHeader = "X-Real-IP"

var (
	errNoSubnet  = errors.New("trusted subnet is not defined")
	errNoRealIP  = errors.New("empty " + realIPHeader)
	errBadRealIP = errors.New("cannot parse " + realIPHeader)
	errOutside   = errors.New("address outside trusted subnet")
)

// NewSubnetChecker lets through only requests whose X-Real-IP belongs to trustedSubnet.
// An empty or invalid subnet denies every request.
func NewSubnetChecker(trustedSubnet string, logger *zap.SugaredLogger) gin.HandlerFunc {
	var trusted *net.IPNet
	if trustedSubnet != "" {
		var err error
		_, trusted, err = net.ParseCIDR(trustedSubnet)
		if err != nil {
			logger.Warnf("cannot parse trusted subnet, debug routes unavailable: %v", err)
		}
	}

	return func(c *gin.Context) {
		if err := checkRealIP(trusted, c.GetHeader(realIPHeader)); err != nil {
			logger.Warnw("debug request denied",
				"RequestID", requestid.Get(c),
				"URI", c.Request.RequestURI,
				"RealIP", c.GetHeader(realIPHeader),
				"Reason", err.Error(),
			)
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		c.Next()
	}
}

func checkRealIP(trusted *net.IPNet, realIP string) error {
	if trusted == nil {
		return errNoSubnet
	}
	if realIP == "" {
		return errNoRealIP
	}

	ip := net.ParseIP(realIP)
	if ip == nil {
		return errBadRealIP
	}
	if !trusted.Contains(ip) {
		return errOutside
	}
	return nil
}

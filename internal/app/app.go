package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rawen554/qrcodegen/internal/config"
	"github.com/rawen554/qrcodegen/internal/logic"
	"github.com/rawen554/qrcodegen/internal/models"
	"github.com/rawen554/qrcodegen/internal/qr"
	"go.uber.org/zap"
)

const (
	contentType        = "Content-Type"
	contentDisposition = "Content-Disposition"
	applicationJSON    = "application/json"

	MsgInvalidBody  = "Invalid request body"
	MsgBodyTooLarge = "Request body too large"
)

type App struct {
	config *config.ServerConfig
	logic  *logic.CoreLogic
	logger *zap.SugaredLogger
}

func NewApp(config *config.ServerConfig, coreLogic *logic.CoreLogic, logger *zap.SugaredLogger) *App {
	return &App{
		config: config,
		logic:  coreLogic,
		logger: logger,
	}
}

// GenerateQRCode answers with the image embedded in JSON:
// a data URL for png and jpeg, raw markup for svg.
func (a *App) GenerateQRCode(c *gin.Context) {
	img, ok := a.generate(c)
	if !ok {
		return
	}

	res := models.QRCodeRes{Format: string(img.Format)}
	if img.Format == qr.SVG {
		res.QRCodeData = string(img.Data)
	} else {
		dataURL := qr.DataURL(img.Format, img.Data)
		res.QRCodeData = dataURL
		res.QRCodeDataURL = dataURL
	}

	c.JSON(http.StatusOK, res)
}

// DownloadQRCode answers with the raw image as a file attachment.
func (a *App) DownloadQRCode(c *gin.Context) {
	img, ok := a.generate(c)
	if !ok {
		return
	}

	c.Header(contentDisposition, fmt.Sprintf(`attachment; filename="qrcode.%s"`, img.Format.Extension()))
	c.Data(http.StatusOK, img.Format.ContentType(), img.Data)
}

func (a *App) ListTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"types": a.logic.SupportedTypes()})
}

func (a *App) Ping(c *gin.Context) {
	c.Status(http.StatusOK)
}

func (a *App) generate(c *gin.Context) (*logic.Image, bool) {
	var req models.QRCodeReq
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			c.JSON(http.StatusRequestEntityTooLarge, models.ErrorRes{Error: MsgBodyTooLarge})
			return nil, false
		}
		a.logger.Debugf("cannot decode request body: %v", err)
		c.JSON(http.StatusBadRequest, models.ErrorRes{Error: MsgInvalidBody})
		return nil, false
	}

	img, err := a.logic.GenerateQRCode(c.Request.Context(), req)
	if err != nil {
		a.writeError(c, err)
		return nil, false
	}

	return img, true
}

func (a *App) writeError(c *gin.Context, err error) {
	var reqErr *logic.RequestError
	if errors.As(err, &reqErr) {
		c.JSON(http.StatusBadRequest, models.ErrorRes{Error: reqErr.Message})
		return
	}

	if !errors.Is(err, logic.ErrEncodingFailed) {
		a.logger.Errorf("error generating qr code: %v", err)
	}
	c.JSON(http.StatusInternalServerError, models.ErrorRes{Error: logic.MsgEncodingFailed})
}

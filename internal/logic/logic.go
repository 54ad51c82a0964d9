package logic

import (
	"context"
	"errors"
	"fmt"

	"github.com/rawen554/qrcodegen/internal/config"
	"github.com/rawen554/qrcodegen/internal/content"
	"github.com/rawen554/qrcodegen/internal/models"
	"github.com/rawen554/qrcodegen/internal/qr"
	"go.uber.org/zap"
)

const (
	MsgTypeRequired      = "Type is required"
	MsgDataRequired      = "Data is required and must be an object"
	MsgUnsupportedType   = "Unsupported type"
	MsgUnsupportedFormat = "Unsupported format"
	MsgEncodingFailed    = "Failed to generate QR code"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnsupportedType = errors.New("unsupported type")
	ErrMissingField    = errors.New("missing field")
	ErrEncodingFailed  = errors.New("encoding failed")
)

// RequestError is a failure caused by the request; Message is safe to show to the client.
type RequestError struct {
	Kind    error
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *RequestError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func requestError(kind error, msg string, cause error) error {
	return &RequestError{Kind: kind, Message: msg, Err: cause}
}

//go:generate mockgen -destination=mocks/encoder.go -package=mocks github.com/rawen554/qrcodegen/internal/logic Encoder
type Encoder interface {
	Encode(ctx context.Context, content string, opts qr.Options) ([]byte, error)
}

type CoreLogic struct {
	config  *config.ServerConfig
	encoder Encoder
	logger  *zap.SugaredLogger
}

func NewCoreLogic(config *config.ServerConfig, encoder Encoder, logger *zap.SugaredLogger) *CoreLogic {
	return &CoreLogic{
		config:  config,
		encoder: encoder,
		logger:  logger,
	}
}

// Image is an encoded QR symbol together with the content it carries.
type Image struct {
	Format  qr.Format
	Content string
	Data    []byte
}

func (cl *CoreLogic) GenerateQRCode(ctx context.Context, req models.QRCodeReq) (*Image, error) {
	if req.Type == "" {
		return nil, requestError(ErrInvalidInput, MsgTypeRequired, nil)
	}
	recordType, err := content.ParseType(string(req.Type))
	if err != nil {
		return nil, requestError(ErrUnsupportedType, MsgUnsupportedType, err)
	}

	qrContent, err := content.Format(recordType, req.Data)
	if err != nil {
		return nil, formatError(err)
	}

	format, err := qr.ParseFormat(req.Format)
	if err != nil {
		return nil, requestError(ErrInvalidInput, MsgUnsupportedFormat, err)
	}

	opts, err := cl.encodeOptions(format)
	if err != nil {
		return nil, err
	}

	data, err := cl.encoder.Encode(ctx, qrContent, opts)
	if err != nil {
		cl.logger.Errorf("error encoding %s record as %s: %v", recordType, format, err)
		return nil, fmt.Errorf("%w: %w", ErrEncodingFailed, err)
	}

	return &Image{
		Format:  format,
		Content: qrContent,
		Data:    data,
	}, nil
}

func formatError(err error) error {
	var missing *content.MissingFieldError
	var invalid *content.InvalidFieldError
	switch {
	case errors.As(err, &missing):
		return requestError(ErrMissingField, missing.Error(), nil)
	case errors.As(err, &invalid):
		return requestError(ErrInvalidInput, invalid.Error(), nil)
	case errors.Is(err, content.ErrNotObject):
		return requestError(ErrInvalidInput, MsgDataRequired, err)
	case errors.Is(err, content.ErrUnsupportedType):
		return requestError(ErrUnsupportedType, MsgUnsupportedType, err)
	default:
		return fmt.Errorf("error formatting content: %w", err)
	}
}

func (cl *CoreLogic) encodeOptions(format qr.Format) (qr.Options, error) {
	level, err := qr.ParseLevel(cl.config.QRLevel)
	if err != nil {
		return qr.Options{}, fmt.Errorf("error reading configured level: %w", err)
	}

	return qr.Options{
		Format: format,
		Width:  cl.config.QRWidth,
		Margin: cl.config.QRMargin,
		Level:  level,
	}, nil
}

func (cl *CoreLogic) SupportedTypes() []content.TypeInfo {
	return content.SupportedTypes()
}

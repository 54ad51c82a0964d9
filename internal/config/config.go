package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/rawen554/qrcodegen/internal/qr"
)

const (
	defaultRunAddr      = ":8080"
	defaultTLSCertPath  = "./certs/cert.pem"
	defaultTLSKeyPath   = "./certs/private.pem"
	defaultQRWidth      = 400
	defaultQRMargin     = 2
	defaultQRLevel      = "H"
	defaultMaxBodyBytes = 1 << 20
)

type ServerConfig struct {
	Config        string `env:"CONFIG" json:"-"`
	RunAddr       string `env:"SERVER_ADDRESS" json:"server_address"`
	TLSCertPath   string `env:"TLS_CERT_PATH" json:"tls_cert_path"`
	TLSKeyPath    string `env:"TLS_KEY_PATH" json:"tls_key_path"`
	TrustedSubnet string `env:"TRUSTED_SUBNET" json:"trusted_subnet"`
	LogLevel      string `env:"LOG_LEVEL" json:"log_level"`
	QRLevel       string `env:"QR_LEVEL" json:"qr_level"`
	QRWidth       int    `env:"QR_WIDTH" json:"qr_width"`
	QRMargin      int    `env:"QR_MARGIN" json:"qr_margin"`
	MaxBodyBytes  int64  `env:"MAX_BODY_BYTES" json:"max_body_bytes"`
	EnableHTTPS   bool   `env:"ENABLE_HTTPS" json:"enable_https"`
	ProfileMode   bool   `env:"PROFILE_MODE" json:"profile_mode"`
}

// ParseFlags builds the configuration from os.Args and the environment.
// Precedence, lowest first: defaults, config file, flags, environment.
func ParseFlags() (*ServerConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	return Parse(os.Args[0], os.Args[1:])
}

func Parse(name string, args []string) (*ServerConfig, error) {
	config := defaults()

	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.StringVar(&config.Config, "c", "", "path to JSON config file")
	flags.StringVar(&config.RunAddr, "a", config.RunAddr, "address and port to run server")
	flags.BoolVar(&config.EnableHTTPS, "s", config.EnableHTTPS, "enable HTTPS")
	flags.StringVar(&config.TLSCertPath, "tls-cert", config.TLSCertPath, "path to TLS certificate")
	flags.StringVar(&config.TLSKeyPath, "tls-key", config.TLSKeyPath, "path to TLS private key")
	flags.StringVar(&config.TrustedSubnet, "t", config.TrustedSubnet, "trusted subnet (CIDR) for debug routes")
	flags.StringVar(&config.LogLevel, "l", config.LogLevel, "log level, empty for development logging")
	flags.StringVar(&config.QRLevel, "qr-level", config.QRLevel, "error correction level (L, M, Q, H)")
	flags.IntVar(&config.QRWidth, "qr-width", config.QRWidth, "QR image width in pixels")
	flags.IntVar(&config.QRMargin, "qr-margin", config.QRMargin, "QR quiet zone in modules")
	flags.Int64Var(&config.MaxBodyBytes, "max-body", config.MaxBodyBytes, "max request body size in bytes")
	flags.BoolVar(&config.ProfileMode, "p", config.ProfileMode, "register pprof handlers")
	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	configPath := config.Config
	if v, ok := os.LookupEnv("CONFIG"); ok && v != "" {
		configPath = v
	}
	if configPath != "" {
		if err := config.mergeFile(configPath, flags); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("error parsing env variables: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func defaults() *ServerConfig {
	return &ServerConfig{
		RunAddr:      defaultRunAddr,
		TLSCertPath:  defaultTLSCertPath,
		TLSKeyPath:   defaultTLSKeyPath,
		QRLevel:      defaultQRLevel,
		QRWidth:      defaultQRWidth,
		QRMargin:     defaultQRMargin,
		MaxBodyBytes: defaultMaxBodyBytes,
	}
}

// mergeFile fills every option that was not set by an explicit flag from the JSON file.
func (c *ServerConfig) mergeFile(path string, set *flag.FlagSet) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	fromFile := defaults()
	if err := json.Unmarshal(data, fromFile); err != nil {
		return fmt.Errorf("error decoding config file: %w", err)
	}

	explicit := make(map[string]bool)
	set.Visit(func(f *flag.Flag) {
		explicit[f.Name] = true
	})

	pick := func(flagName string, apply func()) {
		if !explicit[flagName] {
			apply()
		}
	}
	pick("a", func() { c.RunAddr = fromFile.RunAddr })
	pick("s", func() { c.EnableHTTPS = fromFile.EnableHTTPS })
	pick("tls-cert", func() { c.TLSCertPath = fromFile.TLSCertPath })
	pick("tls-key", func() { c.TLSKeyPath = fromFile.TLSKeyPath })
	pick("t", func() { c.TrustedSubnet = fromFile.TrustedSubnet })
	pick("l", func() { c.LogLevel = fromFile.LogLevel })
	pick("qr-level", func() { c.QRLevel = fromFile.QRLevel })
	pick("qr-width", func() { c.QRWidth = fromFile.QRWidth })
	pick("qr-margin", func() { c.QRMargin = fromFile.QRMargin })
	pick("max-body", func() { c.MaxBodyBytes = fromFile.MaxBodyBytes })
	pick("p", func() { c.ProfileMode = fromFile.ProfileMode })
	c.Config = path

	return nil
}

func (c *ServerConfig) validate() error {
	if _, err := qr.ParseLevel(c.QRLevel); err != nil {
		return fmt.Errorf("error parsing qr level: %w", err)
	}
	if c.QRWidth <= 0 {
		return fmt.Errorf("qr width must be positive, got %d", c.QRWidth)
	}
	if c.QRMargin < 0 {
		return fmt.Errorf("qr margin must not be negative, got %d", c.QRMargin)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body bytes must be positive, got %d", c.MaxBodyBytes)
	}
	return nil
}

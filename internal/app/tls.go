package app

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"fmt"
	"io/fs"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"time"
)

const (
	serialNumber = 1
	ip4GrayZone  = 127
	yearsGrant   = 1
	RSALen       = 2048
	CertsPerm    = 0600
	certsDirPerm = 0700
)

// EnsureCertificates creates a self-signed pair at certPath and keyPath
// unless both files already exist.
func EnsureCertificates(certPath, keyPath string) error {
	certExists, err := fileExists(certPath)
	if err != nil {
		return err
	}
	keyExists, err := fileExists(keyPath)
	if err != nil {
		return err
	}
	if certExists && keyExists {
		return nil
	}

	return CreateCertificates(certPath, keyPath)
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("error checking %s: %w", path, err)
}

func CreateCertificates(certPath, keyPath string) error {
	// создаём шаблон сертификата
	cert := &x509.Certificate{
		SerialNumber: big.NewInt(serialNumber),
		Subject: pkix.Name{
			Organization: []string{"QR Code Generator"},
		},
		// разрешаем использование сертификата для 127.0.0.1 и ::1
		IPAddresses:  []net.IP{net.IPv4(ip4GrayZone, 0, 0, 1), net.IPv6loopback},
		DNSNames:     []string{"localhost"},
		NotBefore:    time.Now(),
		NotAfter:     time.Now().AddDate(yearsGrant, 0, 0),
		SubjectKeyId: []byte{1, 2, 3, 4, 6},
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth, x509.ExtKeyUsageServerAuth},
		KeyUsage:     x509.KeyUsageDigitalSignature,
	}

	privateKey, err := rsa.GenerateKey(rand.Reader, RSALen)
	if err != nil {
		return fmt.Errorf("error generating RSA key: %w", err)
	}

	certBytes, err := x509.CreateCertificate(rand.Reader, cert, cert, &privateKey.PublicKey, privateKey)
	if err != nil {
		return fmt.Errorf("error creating certificate: %w", err)
	}

	if err := writePEM(certPath, &pem.Block{
		Type:  "CERTIFICATE",
		Bytes: certBytes,
	}); err != nil {
		return fmt.Errorf("error creating cert file: %w", err)
	}

	if err := writePEM(keyPath, &pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	}); err != nil {
		return fmt.Errorf("error creating RSA private key: %w", err)
	}

	return nil
}

func writePEM(path string, block *pem.Block) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), certsDirPerm); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, CertsPerm)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return pem.Encode(f, block)
}

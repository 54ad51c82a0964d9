package content

import (
	"fmt"
	"strings"
)

type URLRecord struct {
	URL Text `json:"url" validate:"required"`
}

func (URLRecord) Type() RecordType { return TypeURL }

// Content prefixes https:// unless the link already names http or https.
func (r URLRecord) Content() string {
	u := r.URL.String()
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	return "https://" + u
}

type PDFRecord struct {
	PDFURL Text `json:"pdfUrl" validate:"required"`
}

func (PDFRecord) Type() RecordType { return TypePDF }

func (r PDFRecord) Content() string { return r.PDFURL.String() }

type EmailRecord struct {
	Email   Text `json:"email" validate:"required"`
	Subject Text `json:"subject"`
	Body    Text `json:"body"`
}

func (EmailRecord) Type() RecordType { return TypeEmail }

func (r EmailRecord) Content() string {
	return fmt.Sprintf("mailto:%s?subject=%s&body=%s",
		r.Email, escapeComponent(r.Subject.String()), escapeComponent(r.Body.String()))
}

type TextRecord struct {
	Text Text `json:"text" validate:"required"`
}

func (TextRecord) Type() RecordType { return TypeText }

func (r TextRecord) Content() string { return r.Text.String() }

type PhoneRecord struct {
	PhoneNumber Text `json:"phoneNumber" validate:"required"`
}

func (PhoneRecord) Type() RecordType { return TypePhone }

func (r PhoneRecord) Content() string { return "tel:" + r.PhoneNumber.String() }

const defaultWiFiEncryption = "WPA"

type WiFiRecord struct {
	SSID       Text `json:"ssid" validate:"required"`
	Password   Text `json:"password"`
	Encryption Text `json:"encryption"`
}

func (WiFiRecord) Type() RecordType { return TypeWiFi }

func (r WiFiRecord) Content() string {
	return fmt.Sprintf("WIFI:S:%s;T:%s;P:%s;;",
		r.SSID, textOr(r.Encryption, defaultWiFiEncryption), r.Password)
}

type SMSRecord struct {
	PhoneNumber Text `json:"phoneNumber" validate:"required"`
	Message     Text `json:"message"`
}

func (SMSRecord) Type() RecordType { return TypeSMS }

func (r SMSRecord) Content() string {
	return fmt.Sprintf("sms:%s?body=%s", r.PhoneNumber, escapeComponent(r.Message.String()))
}

type CryptoRecord struct {
	WalletAddress Text   `json:"walletAddress" validate:"required"`
	Amount        Amount `json:"amount"`
}

func (CryptoRecord) Type() RecordType { return TypeCrypto }

func (r CryptoRecord) Content() string {
	return fmt.Sprintf("bitcoin:%s?amount=%s", r.WalletAddress, r.Amount)
}

type VCardRecord struct {
	Name         Text `json:"name" validate:"required"`
	Organization Text `json:"organization"`
	Phone        Text `json:"phone"`
	Email        Text `json:"email"`
}

func (VCardRecord) Type() RecordType { return TypeVCard }

func (r VCardRecord) Content() string {
	return fmt.Sprintf("BEGIN:VCARD\nVERSION:3.0\nFN:%s\nORG:%s\nTEL:%s\nEMAIL:%s\nEND:VCARD",
		r.Name, r.Organization, r.Phone, r.Email)
}

// LocationRecord coordinates are pointers: a present zero is valid,
// only an absent (or null) coordinate is missing.
type LocationRecord struct {
	Latitude  *Text `json:"latitude" validate:"required,coordinate"`
	Longitude *Text `json:"longitude" validate:"required,coordinate"`
}

func (LocationRecord) Type() RecordType { return TypeLocation }

func (r LocationRecord) Content() string {
	return fmt.Sprintf("geo:%s,%s", *r.Latitude, *r.Longitude)
}

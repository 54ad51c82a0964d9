// Package content turns QR record form data into scannable content strings.
//
// Every record type is a struct whose json tags name the accepted fields and
// whose validate tags mark the required ones. Field values may be JSON
// strings or numbers; strings are trimmed before use.
package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

type RecordType string

const (
	TypeURL      RecordType = "url"
	TypePDF      RecordType = "pdf"
	TypeEmail    RecordType = "email"
	TypeText     RecordType = "text"
	TypePhone    RecordType = "phone"
	TypeWiFi     RecordType = "wifi"
	TypeSMS      RecordType = "sms"
	TypeCrypto   RecordType = "crypto"
	TypeVCard    RecordType = "vcard"
	TypeLocation RecordType = "location"
)

var (
	ErrUnsupportedType = errors.New("unsupported type")
	ErrNotObject       = errors.New("data is not an object")
)

// Record is a validated QR record able to render its content string.
type Record interface {
	Type() RecordType
	Content() string
}

var registry = map[RecordType]func() Record{
	TypeURL:      func() Record { return &URLRecord{} },
	TypePDF:      func() Record { return &PDFRecord{} },
	TypeEmail:    func() Record { return &EmailRecord{} },
	TypeText:     func() Record { return &TextRecord{} },
	TypePhone:    func() Record { return &PhoneRecord{} },
	TypeWiFi:     func() Record { return &WiFiRecord{} },
	TypeSMS:      func() Record { return &SMSRecord{} },
	TypeCrypto:   func() Record { return &CryptoRecord{} },
	TypeVCard:    func() Record { return &VCardRecord{} },
	TypeLocation: func() Record { return &LocationRecord{} },
}

// ParseType returns the record type named by s. Matching is exact.
func ParseType(s string) (RecordType, error) {
	t := RecordType(s)
	if _, ok := registry[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, s)
	}
	return t, nil
}

// Parse decodes the JSON object data into the record of type t and validates it.
func Parse(t RecordType, data []byte) (Record, error) {
	newRecord, ok := registry[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, t)
	}

	fields, err := decodeObject(data)
	if err != nil {
		return nil, err
	}

	record := newRecord()
	if err := decodeFields(fields, record); err != nil {
		return nil, err
	}
	if err := validateRecord(t, record); err != nil {
		return nil, err
	}

	return record, nil
}

// Format is Parse followed by Content.
func Format(t RecordType, data []byte) (string, error) {
	record, err := Parse(t, data)
	if err != nil {
		return "", err
	}
	return record.Content(), nil
}

func decodeObject(data []byte) (map[string]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, ErrNotObject
	}

	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotObject, err)
	}
	return fields, nil
}

func decodeFields(fields map[string]json.RawMessage, record Record) error {
	v := reflect.ValueOf(record).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		name := fieldName(t.Field(i))
		raw, ok := fields[name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, v.Field(i).Addr().Interface()); err != nil {
			return &InvalidFieldError{Field: name, Err: err}
		}
	}
	return nil
}

func fieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	return name
}

// TypeInfo describes the fields accepted by a record type.
type TypeInfo struct {
	Type     RecordType `json:"type"`
	Required []string   `json:"required"`
	Optional []string   `json:"optional"`
}

// SupportedTypes lists every record type sorted by name.
func SupportedTypes() []TypeInfo {
	infos := make([]TypeInfo, 0, len(registry))
	for rt, newRecord := range registry {
		info := TypeInfo{Type: rt, Required: []string{}, Optional: []string{}}
		t := reflect.TypeOf(newRecord()).Elem()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if strings.Contains(f.Tag.Get("validate"), "required") {
				info.Required = append(info.Required, fieldName(f))
			} else {
				info.Optional = append(info.Optional, fieldName(f))
			}
		}
		infos = append(infos, info)
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Type < infos[j].Type })
	return infos
}

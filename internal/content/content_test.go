package content

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	type args struct {
		recordType RecordType
		data       string
	}
	tests := []struct {
		name string
		args args
		want string
	}{
		{
			name: "url without scheme",
			args: args{recordType: TypeURL, data: `{"url":"example.com"}`},
			want: "https://example.com",
		},
		{
			name: "url with http scheme",
			args: args{recordType: TypeURL, data: `{"url":"http://example.com"}`},
			want: "http://example.com",
		},
		{
			name: "url with https scheme and spaces",
			args: args{recordType: TypeURL, data: `{"url":"  https://example.com/a?b=c  "}`},
			want: "https://example.com/a?b=c",
		},
		{
			name: "pdf link kept as is",
			args: args{recordType: TypePDF, data: `{"pdfUrl":"files.example.com/doc.pdf"}`},
			want: "files.example.com/doc.pdf",
		},
		{
			name: "email with subject",
			args: args{recordType: TypeEmail, data: `{"email":"a@b.com","subject":"Hi there","body":""}`},
			want: "mailto:a@b.com?subject=Hi%20there&body=",
		},
		{
			name: "email without optional fields",
			args: args{recordType: TypeEmail, data: `{"email":"a@b.com"}`},
			want: "mailto:a@b.com?subject=&body=",
		},
		{
			name: "email body escaping",
			args: args{recordType: TypeEmail, data: `{"email":"a@b.com","subject":"a&b=c","body":"line1\nline2 (ok)!"}`},
			want: "mailto:a@b.com?subject=a%26b%3Dc&body=line1%0Aline2%20(ok)!",
		},
		{
			name: "plain text",
			args: args{recordType: TypeText, data: `{"text":" hello world "}`},
			want: "hello world",
		},
		{
			name: "phone",
			args: args{recordType: TypePhone, data: `{"phoneNumber":"+1 555 0100"}`},
			want: "tel:+1 555 0100",
		},
		{
			name: "phone sent as number",
			args: args{recordType: TypePhone, data: `{"phoneNumber":5550100}`},
			want: "tel:5550100",
		},
		{
			name: "wifi",
			args: args{recordType: TypeWiFi, data: `{"ssid":"Home","password":"secret","encryption":"WPA2"}`},
			want: "WIFI:S:Home;T:WPA2;P:secret;;",
		},
		{
			name: "wifi default encryption",
			args: args{recordType: TypeWiFi, data: `{"ssid":"Home"}`},
			want: "WIFI:S:Home;T:WPA;P:;;",
		},
		{
			name: "sms",
			args: args{recordType: TypeSMS, data: `{"phoneNumber":"5550100","message":"call me"}`},
			want: "sms:5550100?body=call%20me",
		},
		{
			name: "crypto with numeric amount",
			args: args{recordType: TypeCrypto, data: `{"walletAddress":"1BoatSLRHtKNngkdXEeobR76b53LETtpyT","amount":0.5}`},
			want: "bitcoin:1BoatSLRHtKNngkdXEeobR76b53LETtpyT?amount=0.5",
		},
		{
			name: "crypto without amount",
			args: args{recordType: TypeCrypto, data: `{"walletAddress":"abc"}`},
			want: "bitcoin:abc?amount=",
		},
		{
			name: "crypto amount with trailing zero",
			args: args{recordType: TypeCrypto, data: `{"walletAddress":"abc","amount":0.50}`},
			want: "bitcoin:abc?amount=0.5",
		},
		{
			name: "crypto with numeric zero amount",
			args: args{recordType: TypeCrypto, data: `{"walletAddress":"abc","amount":0}`},
			want: "bitcoin:abc?amount=",
		},
		{
			name: "crypto with string zero amount",
			args: args{recordType: TypeCrypto, data: `{"walletAddress":"abc","amount":"0"}`},
			want: "bitcoin:abc?amount=0",
		},
		{
			name: "vcard",
			args: args{recordType: TypeVCard, data: `{"name":"Jane Doe","organization":"Acme","phone":"555","email":"jane@acme.io"}`},
			want: "BEGIN:VCARD\nVERSION:3.0\nFN:Jane Doe\nORG:Acme\nTEL:555\nEMAIL:jane@acme.io\nEND:VCARD",
		},
		{
			name: "vcard name only",
			args: args{recordType: TypeVCard, data: `{"name":"Jane"}`},
			want: "BEGIN:VCARD\nVERSION:3.0\nFN:Jane\nORG:\nTEL:\nEMAIL:\nEND:VCARD",
		},
		{
			name: "location at zero",
			args: args{recordType: TypeLocation, data: `{"latitude":0,"longitude":0}`},
			want: "geo:0,0",
		},
		{
			name: "location with trailing zeros",
			args: args{recordType: TypeLocation, data: `{"latitude":52.5200,"longitude":-13.405}`},
			want: "geo:52.52,-13.405",
		},
		{
			name: "location with exponent",
			args: args{recordType: TypeLocation, data: `{"latitude":1e2,"longitude":-2.5E-1}`},
			want: "geo:100,-0.25",
		},
		{
			name: "location at negative zero",
			args: args{recordType: TypeLocation, data: `{"latitude":-0,"longitude":0.0}`},
			want: "geo:0,0",
		},
		{
			name: "location sent as strings",
			args: args{recordType: TypeLocation, data: `{"latitude":" 40.7128 ","longitude":"-74.0060"}`},
			want: "geo:40.7128,-74.0060",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := Format(tt.args.recordType, []byte(tt.args.data))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_MissingField(t *testing.T) {
	tests := []struct {
		name       string
		recordType RecordType
		data       string
		wantField  string
		wantMsg    string
	}{
		{name: "url", recordType: TypeURL, data: `{}`, wantField: "url", wantMsg: "URL is required"},
		{name: "url blank", recordType: TypeURL, data: `{"url":"   "}`, wantField: "url", wantMsg: "URL is required"},
		{name: "pdf", recordType: TypePDF, data: `{"pdfUrl":""}`, wantField: "pdfUrl", wantMsg: "PDF URL is required"},
		{name: "email", recordType: TypeEmail, data: `{"subject":"x"}`, wantField: "email", wantMsg: "Email is required"},
		{name: "text null", recordType: TypeText, data: `{"text":null}`, wantField: "text", wantMsg: "Text is required"},
		{name: "phone", recordType: TypePhone, data: `{}`, wantField: "phoneNumber", wantMsg: "Phone number is required"},
		{name: "wifi", recordType: TypeWiFi, data: `{"password":"x"}`, wantField: "ssid", wantMsg: "SSID is required"},
		{name: "sms", recordType: TypeSMS, data: `{"message":"x"}`, wantField: "phoneNumber", wantMsg: "Phone number is required"},
		{name: "crypto", recordType: TypeCrypto, data: `{"amount":1}`, wantField: "walletAddress", wantMsg: "Wallet address is required"},
		{name: "vcard", recordType: TypeVCard, data: `{"organization":"Acme"}`, wantField: "name", wantMsg: "Name is required"},
		{
			name: "location latitude", recordType: TypeLocation, data: `{"longitude":1}`,
			wantField: "latitude", wantMsg: "Latitude and longitude are required",
		},
		{
			name: "location longitude null", recordType: TypeLocation, data: `{"latitude":1,"longitude":null}`,
			wantField: "longitude", wantMsg: "Latitude and longitude are required",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := Format(tt.recordType, []byte(tt.data))
			require.Error(t, err)

			var missing *MissingFieldError
			require.True(t, errors.As(err, &missing), "got %v", err)
			assert.Equal(t, tt.wantField, missing.Field)
			assert.Equal(t, tt.recordType, missing.Type)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestFormat_InvalidInput(t *testing.T) {
	tests := []struct {
		name       string
		recordType RecordType
		data       string
		wantErr    error
		wantField  string
	}{
		{name: "array data", recordType: TypeText, data: `["a"]`, wantErr: ErrNotObject},
		{name: "scalar data", recordType: TypeText, data: `"text"`, wantErr: ErrNotObject},
		{name: "null data", recordType: TypeText, data: `null`, wantErr: ErrNotObject},
		{name: "empty data", recordType: TypeText, data: ``, wantErr: ErrNotObject},
		{name: "broken object", recordType: TypeText, data: `{"text":`, wantErr: ErrNotObject},
		{name: "unknown type", recordType: RecordType("fax"), data: `{}`, wantErr: ErrUnsupportedType},
		{name: "bool field", recordType: TypeText, data: `{"text":true}`, wantField: "text"},
		{name: "object field", recordType: TypeWiFi, data: `{"ssid":{"a":1}}`, wantField: "ssid"},
		{name: "non numeric latitude", recordType: TypeLocation, data: `{"latitude":"north","longitude":1}`, wantField: "latitude"},
		{name: "empty longitude", recordType: TypeLocation, data: `{"latitude":1,"longitude":""}`, wantField: "longitude"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := Format(tt.recordType, []byte(tt.data))
			require.Error(t, err)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			var invalid *InvalidFieldError
			require.True(t, errors.As(err, &invalid), "got %v", err)
			assert.Equal(t, tt.wantField, invalid.Field)
		})
	}
}

func TestParseType(t *testing.T) {
	for _, info := range SupportedTypes() {
		got, err := ParseType(string(info.Type))
		require.NoError(t, err)
		assert.Equal(t, info.Type, got)
	}

	_, err := ParseType("URL")
	assert.ErrorIs(t, err, ErrUnsupportedType)
	_, err = ParseType("")
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestParse_RecordType(t *testing.T) {
	record, err := Parse(TypeWiFi, []byte(`{"ssid":"Home"}`))
	require.NoError(t, err)
	assert.Equal(t, TypeWiFi, record.Type())

	wifi, ok := record.(*WiFiRecord)
	require.True(t, ok)
	assert.Equal(t, Text("Home"), wifi.SSID)
}

func TestSupportedTypes(t *testing.T) {
	types := SupportedTypes()
	require.Len(t, types, 10)

	byType := make(map[RecordType]TypeInfo, len(types))
	for _, info := range types {
		byType[info.Type] = info
	}

	assert.Equal(t, []string{"ssid"}, byType[TypeWiFi].Required)
	assert.Equal(t, []string{"password", "encryption"}, byType[TypeWiFi].Optional)
	assert.Equal(t, []string{"latitude", "longitude"}, byType[TypeLocation].Required)
	assert.Empty(t, byType[TypeLocation].Optional)
	assert.Equal(t, TypeCrypto, types[0].Type)
}

func TestEscapeComponent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "Hi there", want: "Hi%20there"},
		{in: "a+b/c?d#e", want: "a%2Bb%2Fc%3Fd%23e"},
		{in: "-_.!~*'()", want: "-_.!~*'()"},
		{in: "héllo", want: "h%C3%A9llo"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, escapeComponent(tt.in), tt.in)
	}
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestContentCmd(t *testing.T) {
	dir := t.TempDir()
	dataFile := filepath.Join(dir, "location.yaml")
	require.NoError(t, os.WriteFile(dataFile, []byte("latitude: 0\nlongitude: 0\n"), 0o600))
	vcardFile := filepath.Join(dir, "vcard.yaml")
	require.NoError(t, os.WriteFile(vcardFile, []byte("name: Jane\norganization: 007\nphone: 0555123\nemail: ~\n"), 0o600))
	cryptoFile := filepath.Join(dir, "crypto.yaml")
	require.NoError(t, os.WriteFile(cryptoFile, []byte("walletAddress: abc\namount: 0.50\n"), 0o600))
	contactFile := filepath.Join(dir, "contact.json")
	require.NoError(t, os.WriteFile(contactFile, []byte(`{"name":"Jane","phone":"555"}`), 0o600))

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "fields from flags",
			args: []string{"content", "-t", "wifi", "-f", "ssid=Home", "-f", "password=se=cret"},
			want: "WIFI:S:Home;T:WPA;P:se=cret;;\n",
		},
		{
			name: "fields from yaml",
			args: []string{"content", "-t", "location", "-d", dataFile},
			want: "geo:0,0\n",
		},
		{
			name: "leading zeros kept from yaml",
			args: []string{"content", "-t", "vcard", "-d", vcardFile},
			want: "BEGIN:VCARD\nVERSION:3.0\nFN:Jane\nORG:007\nTEL:0555123\nEMAIL:\nEND:VCARD\n",
		},
		{
			name: "numbers from yaml",
			args: []string{"content", "-t", "crypto", "-d", cryptoFile},
			want: "bitcoin:abc?amount=0.5\n",
		},
		{
			name: "flags override json file",
			args: []string{"content", "-t", "vcard", "-d", contactFile, "-f", "phone=777"},
			want: "BEGIN:VCARD\nVERSION:3.0\nFN:Jane\nORG:\nTEL:777\nEMAIL:\nEND:VCARD\n",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContentCmd_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "missing field", args: []string{"content", "-t", "wifi"}, wantErr: "SSID is required"},
		{name: "unknown type", args: []string{"content", "-t", "fax"}, wantErr: "unsupported type"},
		{name: "broken pair", args: []string{"content", "-t", "text", "-f", "text"}, wantErr: "name=value"},
		{name: "no type", args: []string{"content"}, wantErr: "type"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEncodeCmd(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name       string
		format     string
		wantPrefix []byte
	}{
		{name: "png", format: "png", wantPrefix: []byte{0x89, 'P', 'N', 'G'}},
		{name: "jpeg", format: "jpeg", wantPrefix: []byte{0xFF, 0xD8}},
		{name: "svg", format: "svg", wantPrefix: []byte("<svg")},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			output := filepath.Join(dir, "qr."+tt.format)
			_, err := execute(t, "encode", "-t", "url", "-f", "url=example.com", "--format", tt.format, "-o", output)
			require.NoError(t, err)

			got, err := os.ReadFile(output)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(got, tt.wantPrefix))
		})
	}
}

func TestEncodeCmd_Stdout(t *testing.T) {
	got, err := execute(t, "encode", "-t", "text", "-f", "text=hello", "--format", "svg", "-o", "-")
	require.NoError(t, err)
	assert.Contains(t, got, "<svg")
}

func TestEncodeCmd_BadOptions(t *testing.T) {
	_, err := execute(t, "encode", "-t", "text", "-f", "text=hello", "--format", "gif", "-o", "-")
	assert.Error(t, err)

	_, err = execute(t, "encode", "-t", "text", "-f", "text=hello", "--level", "Z", "-o", "-")
	assert.Error(t, err)
}

func TestTypesCmd(t *testing.T) {
	got, err := execute(t, "types")
	require.NoError(t, err)
	assert.Contains(t, got, "TYPE")
	assert.Contains(t, got, "walletAddress")
	assert.Contains(t, got, "latitude,longitude")
}

package models

import "encoding/json"

// TypeName is the requested record type. A value that is not a JSON string
// decodes as empty, which reads as a missing type.
type TypeName string

func (n *TypeName) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*n = ""
		return nil
	}
	*n = TypeName(s)
	return nil
}

// QRCodeReq is the body of the generate and download endpoints.
type QRCodeReq struct {
	Type   TypeName        `json:"type"`
	Data   json.RawMessage `json:"data"`
	Format string          `json:"format,omitempty"`
}

// QRCodeRes carries a data URL for raster formats and raw markup for svg.
// QRCodeDataURL mirrors QRCodeData for raster formats.
type QRCodeRes struct {
	QRCodeData    string `json:"qrCodeData"`
	Format        string `json:"format"`
	QRCodeDataURL string `json:"qrCodeDataUrl,omitempty"`
}

type ErrorRes struct {
	Error string `json:"error"`
}

// Package qr renders scan targets as inline PNG images.
package qr

import (
	"encoding/base64"

	qrcode "github.com/skip2/go-qrcode"
)

const defaultSize = 256

// DataURL encodes url as a QR PNG and returns it as a data:image/png;base64
// URL, ready to drop into an <img> src. size is the image edge in pixels.
func DataURL(url string, size int) (string, error) {
	if size <= 0 {
		size = defaultSize
	}
	png, err := qrcode.Encode(url, qrcode.Medium, size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

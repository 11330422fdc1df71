package xlfill

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// EncodeQRCode renders content as a QR code PNG with low error correction,
// sized in pixels.
func EncodeQRCode(content string, size int) ([]byte, error) {
	if content == "" {
		return nil, NewError(KindValidation, "qr code content is empty", nil)
	}
	if size <= 0 {
		size = defaultPlacementSize
	}

	png, err := qrcode.Encode(content, qrcode.Low, size)
	if err != nil {
		return nil, NewError(KindRender, fmt.Sprintf("encode qr code (%d bytes)", len(content)), err)
	}
	return png, nil
}

package service

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(orderID int) ([]byte, error)
}

// TrackingQRGenerator renders a PNG pointing at the customer tracking page.
type TrackingQRGenerator struct {
	BaseURL string
	Size    int
}

func (g TrackingQRGenerator) TrackingURL(orderID int) string {
	return fmt.Sprintf("%s/order/%d", g.BaseURL, orderID)
}

func (g TrackingQRGenerator) Generate(orderID int) ([]byte, error) {
	size := g.Size
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(g.TrackingURL(orderID), qrcode.Medium, size)
}

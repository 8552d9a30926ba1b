package services

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"

	"bazaar/internal/models"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

// ReceiptService renders PDF receipts for delivered orders.
type ReceiptService struct {
	orders *OrderService
	secret []byte
}

// NewReceiptService creates a new ReceiptService signing QR payloads with secret.
func NewReceiptService(orders *OrderService, secret string) *ReceiptService {
	return &ReceiptService{orders: orders, secret: []byte(secret)}
}

func (s *ReceiptService) sign(data string) string {
	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte(data))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// QRPayload returns orderId|serviceProviderId|totalPrice|signature.
func (s *ReceiptService) QRPayload(o *models.Order) string {
	data := fmt.Sprintf("%s|%s|%.2f", o.ID, o.ServiceProviderID, o.TotalPrice)
	return fmt.Sprintf("%s|%s", data, s.sign(data))
}

// VerifyQRPayload reports whether payload was produced by QRPayload with the same secret.
func (s *ReceiptService) VerifyQRPayload(payload string) bool {
	i := strings.LastIndex(payload, "|")
	if i < 0 {
		return false
	}
	data, sig := payload[:i], payload[i+1:]
	return hmac.Equal([]byte(sig), []byte(s.sign(data)))
}

// Receipt renders the receipt of a delivered order the user is a party to.
func (s *ReceiptService) Receipt(user *models.User, orderID string) ([]byte, error) {
	order, err := s.orders.GetForUser(user, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.StatusDelivered {
		return nil, fmt.Errorf("order %s is %s: %w", orderID, order.Status, ErrNotDelivered)
	}
	return s.Render(order)
}

// Render draws the receipt PDF.
func (s *ReceiptService) Render(o *models.Order) ([]byte, error) {
	qrPNG, err := qrcode.Encode(s.QRPayload(o), qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Order Receipt")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	lines := []string{
		fmt.Sprintf("Order ID: %s", o.ID),
		fmt.Sprintf("Material: %s", o.MaterialName),
		fmt.Sprintf("Quantity: %d", o.Quantity),
		fmt.Sprintf("Total: Rs. %.2f", o.TotalPrice),
		fmt.Sprintf("Vendor: %s", o.VendorName),
		fmt.Sprintf("Buyer: %s", o.ServiceProviderName),
		fmt.Sprintf("Ordered: %s", o.OrderDate.Format("02 Jan 2006 15:04")),
	}
	if o.DeliveryDate != nil {
		lines = append(lines, fmt.Sprintf("Delivered: %s", o.DeliveryDate.Format("02 Jan 2006 15:04")))
	}
	if o.Notes != "" {
		lines = append(lines, fmt.Sprintf("Notes: %s", o.Notes))
	}
	for _, line := range lines {
		pdf.Cell(0, 10, line)
		pdf.Ln(8)
	}

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 30, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

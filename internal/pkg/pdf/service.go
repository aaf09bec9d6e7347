// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
)

// Service renders booking receipts as PDF through wkhtmltopdf
type Service struct {
	binPath  string
	company  CompanyInfo
	now      func() time.Time
	template *template.Template
}

// NewService creates a new PDF service. An empty binPath lets the
// wkhtmltopdf package look the binary up on PATH.
func NewService(binPath string, company CompanyInfo) *Service {
	return &Service{
		binPath:  binPath,
		company:  company,
		now:      time.Now,
		template: template.Must(template.New("receipt").Parse(receiptTemplate)),
	}
}

// CompanyInfo is printed in the receipt header
type CompanyInfo struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// ReceiptData describes one booked session
type ReceiptData struct {
	BookingID   string
	ClientName  string
	ClientEmail string
	HealerName  string
	ServiceType string
	Date        string
	Time        string
	Price       string
	Status      string
	Notes       string
	BookedAt    time.Time
}

type receiptView struct {
	ReceiptData
	ReceiptNumber string
	IssuedOn      string
	BookedOn      string
	Company       CompanyInfo
}

// ReceiptHTML renders the receipt page
func (s *Service) ReceiptHTML(data ReceiptData) (string, error) {
	view := receiptView{
		ReceiptData:   data,
		ReceiptNumber: ReceiptNumber(data.BookingID),
		IssuedOn:      s.now().Format("January 2, 2006"),
		BookedOn:      data.BookedAt.Format("January 2, 2006"),
		Company:       s.company,
	}

	var buf bytes.Buffer
	if err := s.template.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// GenerateReceipt renders the receipt and converts it to PDF
func (s *Service) GenerateReceipt(data ReceiptData) (*bytes.Buffer, error) {
	htmlContent, err := s.ReceiptHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	if s.binPath != "" {
		wkhtmltopdf.SetPath(s.binPath)
	}
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA5)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}
	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// ReceiptNumber derives a printable receipt number from a booking id
func ReceiptNumber(bookingID string) string {
	short := bookingID
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("RCPT-%s", short)
}

const receiptTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Receipt {{.ReceiptNumber}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 20px; color: #333; }
        .header { margin-bottom: 24px; border-bottom: 2px solid #eee; padding-bottom: 16px; }
        .title { font-size: 24px; font-weight: bold; color: #0f766e; }
        table { width: 100%; border-collapse: collapse; }
        td { padding: 6px 0; vertical-align: top; }
        .label { font-weight: bold; width: 140px; }
        .total { font-size: 18px; font-weight: bold; margin-top: 20px; text-align: right; }
        .footer { margin-top: 32px; font-size: 11px; color: #888; text-align: center; }
    </style>
</head>
<body>
    <div class="header">
        <div class="title">{{.Company.Name}}</div>
        <div>{{.Company.Address}}</div>
        <div>{{.Company.Email}} {{if .Company.Phone}}| {{.Company.Phone}}{{end}}</div>
    </div>
    <table>
        <tr><td class="label">Receipt</td><td>{{.ReceiptNumber}}</td></tr>
        <tr><td class="label">Issued</td><td>{{.IssuedOn}}</td></tr>
        <tr><td class="label">Booked</td><td>{{.BookedOn}}</td></tr>
        <tr><td class="label">Client</td><td>{{.ClientName}}{{if .ClientEmail}} ({{.ClientEmail}}){{end}}</td></tr>
        <tr><td class="label">Healer</td><td>{{.HealerName}}</td></tr>
        <tr><td class="label">Session</td><td>{{.ServiceType}}</td></tr>
        <tr><td class="label">When</td><td>{{.Date}} at {{.Time}}</td></tr>
        <tr><td class="label">Status</td><td>{{.Status}}</td></tr>
        {{if .Notes}}<tr><td class="label">Notes</td><td>{{.Notes}}</td></tr>{{end}}
    </table>
    <div class="total">Total: ₹{{.Price}}</div>
    <div class="footer">Thank you for booking with {{.Company.Name}}.</div>
</body>
</html>`

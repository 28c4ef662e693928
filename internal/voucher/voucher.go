// Package voucher renders batches of unlock codes as printable PDF sheets.
package voucher

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/akyairhashvil/payg-unlock/internal/models"
	"github.com/go-pdf/fpdf"
)

var ErrNoCodes = errors.New("voucher: no codes to render")

// Sheet is one printable batch of codes for a single device.
type Sheet struct {
	DeviceID      string
	Codes         []models.Code
	CreditPerCode time.Duration
	GeneratedAt   time.Time
}

// FileName is the default file name for a sheet starting at counter from.
func FileName(deviceID string, from int64) string {
	short := deviceID
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("payg_codes_%s_%d.pdf", short, from)
}

func render(s Sheet) (*fpdf.Fpdf, error) {
	if len(s.Codes) == 0 {
		return nil, ErrNoCodes
	}
	generated := s.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Unlock codes", false)
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Unlock Codes")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Device: %s", s.DeviceID))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Generated: %s", generated.Format("2006-01-02 15:04")))
	pdf.Ln(6)
	if s.CreditPerCode > 0 {
		pdf.Cell(0, 7, fmt.Sprintf("Each code adds %s of use. Codes may be redeemed in any order.", s.CreditPerCode))
		pdf.Ln(6)
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(30, 9, "#", "1", 0, "C", false, 0, "")
	pdf.CellFormat(60, 9, "Code", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 9, "Used", "1", 1, "C", false, 0, "")

	pdf.SetFont("Courier", "", 12)
	for _, c := range s.Codes {
		pdf.CellFormat(30, 8, fmt.Sprintf("%d", c.Counter), "1", 0, "C", false, 0, "")
		pdf.CellFormat(60, 8, formatCode(c.Value), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 8, "[ ]", "1", 1, "C", false, 0, "")
	}
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render voucher: %w", err)
	}
	return pdf, nil
}

// formatCode splits a code into groups of four for readability.
func formatCode(code string) string {
	if len(code) != 8 {
		return code
	}
	return code[:4] + " " + code[4:]
}

func Write(w io.Writer, s Sheet) error {
	pdf, err := render(s)
	if err != nil {
		return err
	}
	return pdf.Output(w)
}

// WriteFile renders s to path, creating parent directories as needed.
func WriteFile(path string, s Sheet) error {
	pdf, err := render(s)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create voucher dir: %w", err)
	}
	return pdf.OutputFileAndClose(path)
}

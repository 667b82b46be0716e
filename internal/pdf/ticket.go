package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"
)

type Generator interface {
	GenerateTicket(data TicketData) (string, error)
}

type TicketData struct {
	BookingID   string
	EventName   string
	Location    string
	DateTime    time.Time
	HolderName  string
	HolderEmail string
	BookedAt    time.Time
	Filename    string // relative to RootDir; derived from BookingID when empty
}

// TicketGenerator renders booking tickets under RootDir.
type TicketGenerator struct {
	RootDir string
}

func NewTicketGenerator(rootDir string) *TicketGenerator {
	return &TicketGenerator{RootDir: filepath.Clean(rootDir)}
}

func (g *TicketGenerator) GenerateTicket(data TicketData) (string, error) {
	filename := data.Filename
	if filename == "" {
		filename = fmt.Sprintf("ticket_%s.pdf", data.BookingID)
	}
	absPath, err := g.ensureTarget(filename)
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Ticket %s", data.BookingID), false)
	pdf.SetAuthor("Booking App", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "EVENT TICKET", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, fmt.Sprintf("Booking %s", data.BookingID), "", 1, "C", false, 0, "")
	g.hr(pdf)
	pdf.Ln(3)

	g.sectionTitle(pdf, "Event")
	g.kvLine(pdf, "Name", data.EventName)
	g.kvLine(pdf, "Location", data.Location)
	g.kvLine(pdf, "Date", data.DateTime.Format("02 Jan 2006 15:04"))
	pdf.Ln(2)
	g.hr(pdf)

	g.sectionTitle(pdf, "Attendee")
	g.kvLine(pdf, "Name", data.HolderName)
	g.kvLine(pdf, "Email", data.HolderEmail)
	g.kvLine(pdf, "Booked at", data.BookedAt.Format("02 Jan 2006 15:04"))

	if err := pdf.OutputFileAndClose(absPath); err != nil {
		return "", fmt.Errorf("write ticket pdf: %w", err)
	}
	return absPath, nil
}

func (g *TicketGenerator) ensureTarget(filename string) (string, error) {
	if err := os.MkdirAll(g.RootDir, 0o755); err != nil {
		return "", fmt.Errorf("create ticket dir: %w", err)
	}
	return filepath.Join(g.RootDir, filepath.Base(filename)), nil
}

func (g *TicketGenerator) sectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
}

func (g *TicketGenerator) kvLine(pdf *gofpdf.Fpdf, key, value string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(45, 7, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
}

func (g *TicketGenerator) hr(pdf *gofpdf.Fpdf) {
	x, y := pdf.GetXY()
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	pdf.Line(left, y, pageW-right, y)
	pdf.SetXY(x, y+2)
}

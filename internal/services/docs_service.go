package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"backoffice/internal/domain/models"
	"backoffice/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders printable contract PDFs from upstream records.
type DocsService struct {
	WS        *Workspace
	RequestID string
	now       func() time.Time
}

type docLine struct {
	label string
	value string
}

type contractDoc struct {
	title    string
	number   string
	parties  []docLine
	terms    []docLine
	note     string
	filename string
}

func (s DocsService) ConsignmentPDF(ctx context.Context, id int64) ([]byte, string, error) {
	c, err := ConsignmentService{WS: s.WS, RequestID: s.RequestID}.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "consignment_pdf", fmt.Sprintf("kgid=%d", id))
	return s.render(consignmentDoc(c))
}

func (s DocsService) DepositPDF(ctx context.Context, id int64) ([]byte, string, error) {
	d, err := DepositService{WS: s.WS, RequestID: s.RequestID}.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "deposit_pdf", fmt.Sprintf("dcid=%d", id))
	return s.render(depositDoc(d))
}

func (s DocsService) TransferPDF(ctx context.Context, id int64) ([]byte, string, error) {
	t, err := TransferService{WS: s.WS, RequestID: s.RequestID}.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "transfer_pdf", fmt.Sprintf("cnid=%d", id))
	return s.render(transferDoc(t))
}

func partyLines(c *models.Customer, p *models.Property) []docLine {
	lines := []docLine{{"Customer", "-"}, {"National ID", "-"}, {"Phone", "-"}, {"Property", "-"}}
	if c != nil {
		lines[0].value = utils.Fallback(c.FullName, "-")
		lines[1].value = utils.Fallback(c.NationalID, "-")
		lines[2].value = utils.Fallback(c.Phone, "-")
	}
	if p != nil {
		lines[3].value = utils.Fallback(p.Address(), "-")
		lines = append(lines,
			docLine{"Land use cert.", utils.Fallback(p.LandUseCode, "-")},
			docLine{"Area", fmt.Sprintf("%.1f m2", p.Area.Float())},
			docLine{"Property status", models.PropertyStatusText(p.Status)},
		)
	}
	return lines
}

func consignmentDoc(c models.Consignment) contractDoc {
	return contractDoc{
		title:   "CONSIGNMENT CONTRACT",
		number:  fmt.Sprintf("KG-%d", c.ID),
		parties: partyLines(c.Customer, c.Property),
		terms: []docLine{
			{"Contract value", utils.FormatVND(c.Value.Float())},
			{"Service fee", utils.FormatVND(c.ServiceFee.Float())},
			{"Start date", utils.Fallback(utils.DisplayDate(c.StartDate), "-")},
			{"End date", utils.Fallback(utils.DisplayDate(c.EndDate), "-")},
			{"Status", models.ConsignmentStatusText(c.Status)},
		},
		note:     "The owner entrusts the brokerage with selling the property above for the period stated.",
		filename: fmt.Sprintf("CONSIGNMENT_%d_%s.pdf", c.ID, utils.SafeFilename(c.CustomerName())),
	}
}

func depositDoc(d models.Deposit) contractDoc {
	return contractDoc{
		title:   "DEPOSIT CONTRACT",
		number:  fmt.Sprintf("DC-%d", d.ID),
		parties: partyLines(d.Customer, d.Property),
		terms: []docLine{
			{"Deposit amount", utils.FormatVND(d.Value.Float())},
			{"Signed on", utils.Fallback(utils.DisplayDate(d.CreatedOn), "-")},
			{"Expires on", utils.Fallback(utils.DisplayDate(d.ExpiresOn), "-")},
			{"Status", models.DepositStatusText(d.Status)},
		},
		note:     "The deposit is forfeited if the buyer does not sign the transfer contract before expiry.",
		filename: fmt.Sprintf("DEPOSIT_%d_%s.pdf", d.ID, utils.SafeFilename(d.CustomerName())),
	}
}

func transferDoc(t models.Transfer) contractDoc {
	return contractDoc{
		title:   "TRANSFER CONTRACT",
		number:  fmt.Sprintf("CN-%d", t.ID),
		parties: partyLines(t.Customer, t.Property),
		terms: []docLine{
			{"Deposit contract", fmt.Sprintf("DC-%d", t.DepositID)},
			{"Transfer value", utils.FormatVND(t.Value.Float())},
			{"Already deposited", utils.FormatVND(t.Deposited.Float())},
			{"Remaining", utils.FormatVND(t.Remaining().Float())},
			{"Signed on", utils.Fallback(utils.DisplayDate(t.CreatedOn), "-")},
			{"Status", models.TransferStatusText(t.Status)},
		},
		note:     "Ownership passes to the buyer once the remaining amount has been paid in full.",
		filename: fmt.Sprintf("TRANSFER_%d_%s.pdf", t.ID, utils.SafeFilename(t.CustomerName())),
	}
}

func (s DocsService) render(d contractDoc) ([]byte, string, error) {
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	out, err := buildContractPDF(d, now())
	if err != nil {
		return nil, "", err
	}
	return out, d.filename, nil
}

func buildContractPDF(d contractDoc, printedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(d.title, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, d.title, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, "No. "+d.number+"   Printed "+printedAt.Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	section := func(heading string, lines []docLine) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, heading)
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		for _, l := range lines {
			pdf.CellFormat(50, 7, l.label, "", 0, "L", false, 0, "")
			pdf.CellFormat(0, 7, ": "+utils.ASCIIFold(l.value), "", 1, "L", false, 0, "")
		}
		pdf.Ln(4)
	}
	section("Parties", d.parties)
	section("Terms", d.terms)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, d.note, "", "", false)
	pdf.Ln(16)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(95, 7, "Customer", "", 0, "C", false, 0, "")
	pdf.CellFormat(95, 7, "Representative", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

package services

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
)

func TestBuildContractPDF(t *testing.T) {
	owner := &models.Customer{FullName: "Nguyễn Văn Đức", NationalID: "079123456789", Phone: "0901234567"}
	estate := &models.Property{Street: "Lê Lợi", HouseNumber: "12", Ward: "Bến Nghé", District: "Quận 1", City: "Hồ Chí Minh", Area: 80}

	docs := []contractDoc{
		consignmentDoc(models.Consignment{ID: 4, Value: 3_500_000_000, ServiceFee: 35_000_000, StartDate: "2025-01-01", EndDate: "2025-07-01", Status: models.ConsignmentActive, Customer: owner, Property: estate}),
		depositDoc(models.Deposit{ID: 9, Value: 100_000_000, CreatedOn: "2025-02-01", ExpiresOn: "2025-03-01", Status: models.DepositDeposited, Customer: owner}),
		transferDoc(models.Transfer{ID: 2, DepositID: 9, Value: 3_500_000_000, Deposited: 100_000_000, CreatedOn: "2025-02-20"}),
	}
	for _, d := range docs {
		out, err := buildContractPDF(d, time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
		if err != nil {
			t.Fatalf("%s: build error: %v", d.title, err)
		}
		if !bytes.HasPrefix(out, []byte("%PDF")) {
			t.Fatalf("%s: output is not a PDF", d.title)
		}
		if !strings.HasSuffix(d.filename, ".pdf") || strings.ContainsAny(d.filename, " /") {
			t.Fatalf("%s: bad filename %q", d.title, d.filename)
		}
	}
	if docs[0].filename != "CONSIGNMENT_4_Nguyen_Van_Duc.pdf" {
		t.Fatalf("unexpected filename %q", docs[0].filename)
	}
}

func TestTransferDocShowsRemaining(t *testing.T) {
	d := transferDoc(models.Transfer{ID: 1, Value: 1_000_000, Deposited: 250_000})
	for _, l := range d.terms {
		if l.label == "Remaining" {
			if l.value != "750.000 VND" {
				t.Fatalf("unexpected remaining %q", l.value)
			}
			return
		}
	}
	t.Fatalf("remaining line missing")
}

func TestConsignmentPDFFromUpstream(t *testing.T) {
	f := newFakeUpstream()
	f.consignments = []models.Consignment{{ID: 5, Value: 10, ServiceFee: 1000, Customer: &models.Customer{FullName: "Vo Thi Mai"}}}
	ws, _, _ := newTestWorkspace(t, f)
	svc := DocsService{WS: ws, RequestID: "req-pdf"}

	pdf, name, err := svc.ConsignmentPDF(context.Background(), 5)
	if err != nil {
		t.Fatalf("ConsignmentPDF returned error: %v", err)
	}
	if len(pdf) == 0 || name != "CONSIGNMENT_5_Vo_Thi_Mai.pdf" {
		t.Fatalf("unexpected output %d bytes %q", len(pdf), name)
	}

	if _, _, err := svc.ConsignmentPDF(context.Background(), 6); !domain.IsNotFound(err) {
		t.Fatalf("missing contract should be not found, got %v", err)
	}
}

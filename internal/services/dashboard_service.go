package services

import (
	"context"

	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
	"backoffice/internal/listview"
	"backoffice/internal/querycache"
	"backoffice/internal/resources"

	"golang.org/x/sync/errgroup"
)

// Summary is the dashboard's headline numbers.
type Summary struct {
	// Customers is left out when the upstream sends no row total and the
	// customer list spans several pages.
	Customers          int               `json:"customers,omitempty"`
	Properties         int               `json:"properties"`
	PropertiesByStat   []int             `json:"propertiesByStatus"`
	Staff              int               `json:"staff"`
	ActiveContracts    int               `json:"activeContracts"`
	ContractValue      float64           `json:"contractValue"`
	Transfers          int               `json:"transfers"`
	CompletedTransfers int               `json:"completedTransfers"`
	TransferValue      float64           `json:"transferValue"`
	Revenue            float64           `json:"revenue"`
	RecentProperties   []models.Property `json:"recentProperties"`
}

type DashboardService struct {
	WS        *Workspace
	RequestID string
}

// Summary reads the whole-collection lists through the same cache keys the
// list pages use, so a dashboard visit warms them.
func (s DashboardService) Summary(ctx context.Context) (Summary, error) {
	client := scoped(s.WS, s.RequestID)
	var (
		estates      resources.Page[models.Property]
		staff        resources.Page[models.Staff]
		consignments resources.Page[models.Consignment]
		deposits     resources.Page[models.Deposit]
		transfers    resources.Page[models.Transfer]
		customers    resources.Page[models.Customer]
	)
	// the first customer page under the list page's own default query
	customerParams := listview.MustNew(CustomerListConfig()).Query().Params()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		estates, err = cached(gctx, s.WS, querycache.NewKey(resEstateList, nil), func(ctx context.Context) (resources.Page[models.Property], error) {
			return resources.Estates{Client: client}.List(ctx)
		})
		return err
	})
	g.Go(func() (err error) {
		staff, err = cached(gctx, s.WS, querycache.NewKey(resStaffList, nil), func(ctx context.Context) (resources.Page[models.Staff], error) {
			return resources.StaffMembers{Client: client}.List(ctx)
		})
		return err
	})
	g.Go(func() (err error) {
		consignments, err = cached(gctx, s.WS, querycache.NewKey(resConsignmentList, nil), func(ctx context.Context) (resources.Page[models.Consignment], error) {
			return resources.Consignments{Client: client}.List(ctx)
		})
		return err
	})
	g.Go(func() (err error) {
		deposits, err = cached(gctx, s.WS, querycache.NewKey(resDepositList, nil), func(ctx context.Context) (resources.Page[models.Deposit], error) {
			return resources.Deposits{Client: client}.List(ctx)
		})
		return err
	})
	g.Go(func() (err error) {
		transfers, err = cached(gctx, s.WS, querycache.NewKey(resTransferList, nil), func(ctx context.Context) (resources.Page[models.Transfer], error) {
			return resources.Transfers{Client: client}.List(ctx)
		})
		return err
	})
	g.Go(func() (err error) {
		customers, err = cached(gctx, s.WS, querycache.NewKey(resCustomerList, customerParams), func(ctx context.Context) (resources.Page[models.Customer], error) {
			return resources.Customers{Client: client}.List(ctx, customerParams)
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}
	out := summarize(estates.Rows, staff.Rows, consignments.Rows, deposits.Rows, transfers.Rows)
	out.Customers = customerCount(customers)
	return out, nil
}

// customerCount is the upstream total, or the row count of a single page.
func customerCount(p resources.Page[models.Customer]) int {
	if p.Total > 0 {
		return p.Total
	}
	if p.TotalPages <= 1 {
		return len(p.Rows)
	}
	return 0
}

func summarize(estates []models.Property, staff []models.Staff, consignments []models.Consignment, deposits []models.Deposit, transfers []models.Transfer) Summary {
	out := Summary{
		Properties:       len(estates),
		PropertiesByStat: make([]int, models.PropertySold+1),
		Staff:            len(staff),
		Transfers:        len(transfers),
	}
	for _, p := range estates {
		if p.Status >= 0 && p.Status < len(out.PropertiesByStat) {
			out.PropertiesByStat[p.Status]++
		}
	}
	for _, st := range staff {
		out.Revenue += st.Revenue.Float()
	}
	for _, c := range consignments {
		if c.Status == models.ConsignmentActive {
			out.ActiveContracts++
			out.ContractValue += c.Value.Float()
		}
	}
	for _, d := range deposits {
		if d.Status == models.DepositDeposited {
			out.ActiveContracts++
			out.ContractValue += d.Value.Float()
		}
	}
	for _, t := range transfers {
		if t.Status == models.TransferCompleted {
			out.CompletedTransfers++
			out.TransferValue += t.Value.Float()
		}
	}
	out.RecentProperties = listview.Paginate(
		listview.Sort(estates, PropertyListConfig().SortFields["bdsid"], domain.Descending), 1, 5)
	return out
}

package services

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"backoffice/internal/apiclient"
	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
	"backoffice/internal/listview"
	"backoffice/internal/querycache"
	"backoffice/internal/resources"
)

// Cache resource names. Lists and details are invalidated separately.
const (
	resCustomerList    = "customerList"
	resCustomer        = "customer"
	resStaffList       = "staffList"
	resStaff           = "staff"
	resEstateList      = "estateList"
	resEstate          = "estate"
	resEstateTypes     = "estateTypes"
	resConsignmentList = "consignmentList"
	resConsignment     = "consignment"
	resDepositList     = "depositList"
	resDeposit         = "deposit"
	resTransferList    = "transferList"
	resTransfer        = "transfer"
	resProfile         = "profile"
)

func idText(id int64) string { return strconv.FormatInt(id, 10) }

// CustomerListConfig pages on the upstream; search and sort are forwarded.
func CustomerListConfig() listview.Config[models.Customer] {
	return listview.Config[models.Customer]{
		SearchFields: []func(models.Customer) string{
			func(c models.Customer) string { return c.FullName },
			func(c models.Customer) string { return c.Phone },
			func(c models.Customer) string { return c.Email },
			func(c models.Customer) string { return idText(c.ID) },
		},
		SortFields: map[string]func(a, b models.Customer) int{
			"khid":  listview.By(func(c models.Customer) int64 { return c.ID }),
			"hoten": listview.ByFold(func(c models.Customer) string { return c.FullName }),
		},
		DefaultSort:      "khid",
		DefaultDirection: domain.Descending,
		PageSize:         10,
		ServerPaged:      true,
	}
}

func StaffListConfig() listview.Config[models.Staff] {
	return listview.Config[models.Staff]{
		SearchFields: []func(models.Staff) string{
			func(s models.Staff) string { return s.Name },
		},
		SortFields: map[string]func(a, b models.Staff) int{
			"nvid":     listview.By(func(s models.Staff) int64 { return s.ID }),
			"tennv":    listview.ByFold(func(s models.Staff) string { return s.Name }),
			"doanhthu": listview.By(func(s models.Staff) float64 { return s.Revenue.Float() }),
		},
		DefaultSort:      "doanhthu",
		DefaultDirection: domain.Descending,
		PageSize:         10,
	}
}

func PropertyListConfig() listview.Config[models.Property] {
	return listview.Config[models.Property]{
		SearchFields: []func(models.Property) string{
			func(p models.Property) string { return p.Address() },
			func(p models.Property) string { return p.OwnerName() },
			func(p models.Property) string { return p.TypeName() },
		},
		SortFields: map[string]func(a, b models.Property) int{
			"bdsid":     listview.By(func(p models.Property) int64 { return p.ID }),
			"dongia":    listview.By(func(p models.Property) float64 { return p.UnitPrice.Float() }),
			"dientich":  listview.By(func(p models.Property) float64 { return p.Area.Float() }),
			"tinhtrang": listview.By(func(p models.Property) int { return p.Status }),
			"diachi":    listview.ByFold(func(p models.Property) string { return p.Address() }),
		},
		DefaultSort:      "bdsid",
		DefaultDirection: domain.Descending,
		PageSize:         10,
	}
}

// optionalName orders records by a relation's name, missing relations first.
func optionalName[T any](name func(T) string) func(a, b T) int {
	return listview.ByOptional(func(v T) (string, bool) {
		n := strings.ToLower(name(v))
		return n, n != ""
	})
}

func ConsignmentListConfig() listview.Config[models.Consignment] {
	return listview.Config[models.Consignment]{
		SearchFields: []func(models.Consignment) string{
			models.Consignment.CustomerName,
		},
		SortFields: map[string]func(a, b models.Consignment) int{
			"kgid":        listview.By(func(c models.Consignment) int64 { return c.ID }),
			"giatri":      listview.By(func(c models.Consignment) float64 { return c.Value.Float() }),
			"ngaybatdau":  listview.By(func(c models.Consignment) string { return c.StartDate }),
			"ngayketthuc": listview.By(func(c models.Consignment) string { return c.EndDate }),
		},
		DefaultSort:      "kgid",
		DefaultDirection: domain.Descending,
		PageSize:         8,
	}
}

func DepositListConfig() listview.Config[models.Deposit] {
	return listview.Config[models.Deposit]{
		SearchFields: []func(models.Deposit) string{
			models.Deposit.CustomerName,
		},
		SortFields: map[string]func(a, b models.Deposit) int{
			"dcid":              listview.By(func(d models.Deposit) int64 { return d.ID }),
			"khachhang.hoten":   optionalName(models.Deposit.CustomerName),
			"batdongsan.diachi": optionalName(models.Deposit.PropertyAddress),
			"giatri":            listview.By(func(d models.Deposit) float64 { return d.Value.Float() }),
			"ngaylaphd":         listview.By(func(d models.Deposit) string { return d.CreatedOn }),
			"ngayhethan":        listview.By(func(d models.Deposit) string { return d.ExpiresOn }),
			"tinhtrang":         listview.By(func(d models.Deposit) int { return d.Status }),
		},
		DefaultSort:      "dcid",
		DefaultDirection: domain.Descending,
		PageSize:         10,
	}
}

func TransferListConfig() listview.Config[models.Transfer] {
	return listview.Config[models.Transfer]{
		SearchFields: []func(models.Transfer) string{
			models.Transfer.CustomerName,
		},
		SortFields: map[string]func(a, b models.Transfer) int{
			"cnid":    listview.By(func(t models.Transfer) int64 { return t.ID }),
			"giatri":  listview.By(func(t models.Transfer) float64 { return t.Value.Float() }),
			"ngaylap": listview.By(func(t models.Transfer) string { return t.CreatedOn }),
		},
		DefaultSort:      "cnid",
		DefaultDirection: domain.Descending,
		PageSize:         10,
	}
}

// ListInput is one list-page request. Zero fields leave the stored view
// state untouched.
type ListInput struct {
	Page   int
	Search *string
	Toggle string
}

// ListResult is a rendered page. Stale is set when the refresh failed and
// the previous rows are shown instead.
type ListResult[T any] struct {
	listview.View[T]
	Stale bool   `json:"stale,omitempty"`
	Error string `json:"error,omitempty"`
}

type fetchPage[T any] func(ctx context.Context, params map[string]string) (resources.Page[T], error)

// listPage applies in to ctrl, refreshes the source through the cache and
// derives the page. The workspace lock is not held during the fetch.
func listPage[T any](ctx context.Context, ws *Workspace, ctrl *listview.Controller[T], resource string, in ListInput, fetch fetchPage[T]) (ListResult[T], error) {
	ws.mu.Lock()
	searchChanged, err := applyViewInput(ctrl, in)
	if err != nil {
		ws.mu.Unlock()
		return ListResult[T]{}, err
	}
	if ctrl.ServerPaged() && in.Page > 0 && !searchChanged {
		ctrl.SetPageIndex(in.Page)
	}
	var params map[string]string
	if ctrl.ServerPaged() {
		params = ctrl.Query().Params()
	}
	ws.mu.Unlock()

	page, seq, fetchErr := querycache.Typed(ctx, ws.Cache, querycache.NewKey(resource, params), func(ctx context.Context) (resources.Page[T], error) {
		return withRetry(ctx, func(ctx context.Context) (resources.Page[T], error) {
			return fetch(ctx, params)
		})
	})

	ws.mu.Lock()
	defer ws.mu.Unlock()
	if fetchErr != nil {
		if !ctrl.Loaded() {
			return ListResult[T]{}, fetchErr
		}
		// the last rows stay usable; client paging needs no fetch
		applyLocalPage(ctrl, in, searchChanged)
		return ListResult[T]{View: ctrl.Derive(), Stale: true, Error: fetchErr.Error()}, nil
	}
	if ctrl.SetSourceAt(seq, page.Rows, page.TotalPages) && ctrl.ServerPaged() {
		ctrl.SetServerTotal(page.Total)
	}
	applyLocalPage(ctrl, in, searchChanged)
	return ListResult[T]{View: ctrl.Derive()}, nil
}

func applyLocalPage[T any](ctrl *listview.Controller[T], in ListInput, searchChanged bool) {
	if !ctrl.ServerPaged() && in.Page > 0 && !searchChanged {
		ctrl.SetPageIndex(in.Page)
	}
}

// applyViewInput applies search and sort changes. A changed search term
// resets the page, so a page number sent with it is ignored.
func applyViewInput[T any](ctrl *listview.Controller[T], in ListInput) (bool, error) {
	changed := false
	if in.Search != nil && strings.TrimSpace(*in.Search) != strings.TrimSpace(ctrl.SearchTerm()) {
		ctrl.SetSearchTerm(*in.Search)
		changed = true
	}
	if in.Toggle != "" {
		if err := ctrl.ToggleSort(in.Toggle); err != nil {
			if errors.Is(err, listview.ErrUnknownSortField) {
				return changed, domain.ValidationError{Field: "toggle", Msg: "unknown sort field " + in.Toggle, Err: err}
			}
			return changed, err
		}
	}
	return changed, nil
}

// withRetry runs fn once more when the first failure is transient.
func withRetry[T any](ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	v, err := fn(ctx)
	if err == nil || !apiclient.IsRetryable(err) || ctx.Err() != nil {
		return v, err
	}
	return fn(ctx)
}

// cached reads one record or small collection through the workspace cache.
func cached[T any](ctx context.Context, ws *Workspace, key querycache.Key, fn func(context.Context) (T, error)) (T, error) {
	v, _, err := querycache.Typed(ctx, ws.Cache, key, func(ctx context.Context) (T, error) {
		return withRetry(ctx, fn)
	})
	return v, err
}

func detailKey(resource string, id int64) querycache.Key {
	return querycache.NewKey(resource, map[string]string{"id": idText(id)})
}

// invalidate drops every listed resource from the workspace cache.
func invalidate(ws *Workspace, names ...string) {
	for _, n := range names {
		ws.Cache.Invalidate(n)
	}
}

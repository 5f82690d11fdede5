package services

import (
	"sync"
	"time"

	"backoffice/internal/apiclient"
	"backoffice/internal/domain/models"
	"backoffice/internal/listview"
	"backoffice/internal/querycache"
	"backoffice/internal/session"
)

// Workspace is everything one signed-in browser owns on the server: the
// upstream client bound to its credentials, its query cache and one list
// controller per page.
type Workspace struct {
	SessionID string
	Client    *apiclient.Client
	Cache     *querycache.Cache

	// mu serialises access to the controllers below.
	mu           sync.Mutex
	Customers    *listview.Controller[models.Customer]
	Staff        *listview.Controller[models.Staff]
	Properties   *listview.Controller[models.Property]
	Consignments *listview.Controller[models.Consignment]
	Deposits     *listview.Controller[models.Deposit]
	Transfers    *listview.Controller[models.Transfer]

	lastUsed time.Time
}

func newWorkspace(sess *session.Session, base *apiclient.Client, cacheTTL time.Duration, now time.Time) *Workspace {
	cache := querycache.New(cacheTTL)
	if t := base.Timeout(); t > 0 {
		// a shared read may be retried once
		cache.SetFlightTimeout(2*t + time.Second)
	}
	return &Workspace{
		SessionID:    sess.ID,
		Client:       base.WithCredentials(sess.Credentials),
		Cache:        cache,
		Customers:    listview.MustNew(CustomerListConfig()),
		Staff:        listview.MustNew(StaffListConfig()),
		Properties:   listview.MustNew(PropertyListConfig()),
		Consignments: listview.MustNew(ConsignmentListConfig()),
		Deposits:     listview.MustNew(DepositListConfig()),
		Transfers:    listview.MustNew(TransferListConfig()),
		lastUsed:     now,
	}
}

// Registry hands out workspaces by session id and forgets idle ones.
type Registry struct {
	base     *apiclient.Client
	cacheTTL time.Duration
	idle     time.Duration
	now      func() time.Time

	mu   sync.Mutex
	byID map[string]*Workspace
}

func NewRegistry(base *apiclient.Client, cacheTTL, idle time.Duration) *Registry {
	if idle <= 0 {
		idle = 30 * time.Minute
	}
	return &Registry{
		base:     base,
		cacheTTL: cacheTTL,
		idle:     idle,
		now:      time.Now,
		byID:     map[string]*Workspace{},
	}
}

// For returns the workspace of sess, creating it on first use.
func (r *Registry) For(sess *session.Session) *Workspace {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	ws, ok := r.byID[sess.ID]
	if !ok || ws.Client.Credentials() != sess.Credentials {
		ws = newWorkspace(sess, r.base, r.cacheTTL, now)
		r.byID[sess.ID] = ws
	}
	ws.lastUsed = now
	return ws
}

// Drop forgets the workspace of a logged-out session.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, sessionID)
}

// Sweep drops workspaces idle for longer than the configured window and
// returns how many were dropped.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().Add(-r.idle)
	n := 0
	for id, ws := range r.byID {
		if ws.lastUsed.Before(cutoff) {
			delete(r.byID, id)
			n++
		}
	}
	return n
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

package feed

import (
	"sync"
	"time"

	"github.com/papagsgrill/pos-app/models"
)

// Change is one feed notification as consumed by a staff session.
type Change struct {
	Action  string // models.EventActionInsert / Update / Delete
	Order   models.Order
	OrderID uint // set for deletes
}

// Stats is the dashboard summary. It is always recomputed from the full
// order list, never kept as separately-updated counters, so it cannot drift.
type Stats struct {
	Pending      int     `json:"pending"`
	Preparing    int     `json:"preparing"`
	Ready        int     `json:"ready"`
	TodayTotal   int     `json:"today_total"`
	TodayRevenue float64 `json:"today_revenue"`
}

// Dashboard filter tabs.
const (
	FilterActive    = "active"
	FilterCompleted = "completed"
	FilterAll       = "all"
)

// Dashboard is a staff session's local view of the order store: a snapshot
// fetched at start merged with the live change feed. Incoming state is
// authoritative and overwrites whatever the session held locally.
type Dashboard struct {
	mu     sync.Mutex
	orders []models.Order
}

func NewDashboard() *Dashboard {
	return &Dashboard{}
}

// Bootstrap replaces local state with a fresh snapshot (most recent first).
// It is called on session start and again after every reconnect, since
// missed events are not otherwise recoverable.
func (d *Dashboard) Bootstrap(orders []models.Order) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.orders = make([]models.Order, len(orders))
	copy(d.orders, orders)
}

// Apply merges one change. The returned alert is true only for a genuinely
// new order, the cue for the new-order notification.
func (d *Dashboard) Apply(ch Change) (alert bool) {
	switch ch.Action {
	case models.EventActionInsert:
		return d.applyInsert(ch.Order)
	case models.EventActionUpdate:
		d.applyUpdate(ch.Order)
	case models.EventActionDelete:
		d.applyDelete(ch.OrderID)
	}
	return false
}

// applyInsert prepends an unseen order. The snapshot fetch and the live feed
// can race and both deliver the same order, so inserts dedup by id; a
// duplicate is treated as an update.
func (d *Dashboard) applyInsert(o models.Order) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if i := d.indexOf(o.ID); i >= 0 {
		d.orders[i] = o
		return false
	}
	d.orders = append([]models.Order{o}, d.orders...)
	return true
}

// applyUpdate replaces the matching record in place. An unknown id is
// inserted as a fallback: the order may predate the session's fetch window.
func (d *Dashboard) applyUpdate(o models.Order) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if i := d.indexOf(o.ID); i >= 0 {
		d.orders[i] = o
		return
	}
	d.orders = append([]models.Order{o}, d.orders...)
}

func (d *Dashboard) applyDelete(id uint) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if i := d.indexOf(id); i >= 0 {
		d.orders = append(d.orders[:i], d.orders[i+1:]...)
	}
}

// indexOf requires d.mu held.
func (d *Dashboard) indexOf(id uint) int {
	for i := range d.orders {
		if d.orders[i].ID == id {
			return i
		}
	}
	return -1
}

// Orders returns a copy of the current list.
func (d *Dashboard) Orders() []models.Order {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]models.Order, len(d.orders))
	copy(out, d.orders)
	return out
}

// Filter returns the orders visible under a dashboard tab.
func (d *Dashboard) Filter(tab string) []models.Order {
	d.mu.Lock()
	defer d.mu.Unlock()

	var out []models.Order
	for _, o := range d.orders {
		switch tab {
		case FilterActive:
			if o.Status.Active() {
				out = append(out, o)
			}
		case FilterCompleted:
			if o.Status == models.StatusCompleted {
				out = append(out, o)
			}
		default:
			out = append(out, o)
		}
	}
	return out
}

// Stats recomputes the summary from the full list. Revenue counts only
// today's completed orders; the today counter excludes cancellations.
func (d *Dashboard) Stats(now time.Time) Stats {
	d.mu.Lock()
	defer d.mu.Unlock()

	var s Stats
	for i := range d.orders {
		o := &d.orders[i]
		switch o.Status {
		case models.StatusPending:
			s.Pending++
		case models.StatusPreparing:
			s.Preparing++
		case models.StatusReady:
			s.Ready++
		}
		if o.CreatedToday(now) && o.Status != models.StatusCancelled {
			s.TodayTotal++
		}
		if o.CreatedToday(now) && o.Status == models.StatusCompleted {
			s.TodayRevenue += o.Total
		}
	}
	return s
}

// Follow consumes changes until the channel closes, invoking onAlert for
// each genuinely new order. When the feed drops, resync must return a fresh
// snapshot; the caller then reopens the channel and calls Follow again —
// reconnect is a full re-sync, never a resume-from-offset.
func (d *Dashboard) Follow(changes <-chan Change, onAlert func(models.Order)) {
	for ch := range changes {
		if d.Apply(ch) && onAlert != nil {
			onAlert(ch.Order)
		}
	}
}

// Resync refreshes local state from the store after a dropped subscription.
func (d *Dashboard) Resync(fetch func() ([]models.Order, error)) error {
	orders, err := fetch()
	if err != nil {
		return err
	}
	d.Bootstrap(orders)
	return nil
}

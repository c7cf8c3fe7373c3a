package counter

import (
	"sync"
	"time"
)

// Daily counts completed upstream search calls for the current calendar day.
// The day boundary is evaluated in the configured location, and the count
// resets when the date rolls over. Nothing is persisted across restarts.
type Daily struct {
	mu    sync.Mutex
	loc   *time.Location
	now   func() time.Time
	date  string
	count int
}

func New(loc *time.Location) *Daily {
	if loc == nil {
		loc = time.Local
	}
	d := &Daily{loc: loc, now: time.Now}
	d.date = d.today()
	return d
}

func (d *Daily) today() string {
	return d.now().In(d.loc).Format("2006-01-02")
}

// Record increments the counter, resetting it first if the calendar date has
// changed since the last recorded call.
func (d *Daily) Record() {
	d.mu.Lock()
	defer d.mu.Unlock()

	today := d.today()
	if d.date != today {
		d.date = today
		d.count = 0
	}
	d.count++
}

// Count returns the number of calls recorded for the current date.
func (d *Daily) Count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.count
}

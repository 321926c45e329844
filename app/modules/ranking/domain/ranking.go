package rankingdomain

import (
	"cmp"
	"slices"
	"strconv"
	"time"

	"github.com/samber/lo"
)

// DateLayout is the ISO date format of Document.LastReset.
const DateLayout = "2006-01-02"

// Window selects one of the two ranking tables.
type Window string

const (
	WindowDaily      Window = "daily"
	WindowHistorical Window = "historical"
)

// ParseWindow maps a command option to a Window. Anything but "historical"
// is the daily window.
func ParseWindow(s string) Window {
	if Window(s) == WindowHistorical {
		return WindowHistorical
	}
	return WindowDaily
}

// Entry is a user's standing in one table.
type Entry struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
}

// Table maps user ids to entries.
type Table map[string]Entry

// Document is the persisted ranking state.
type Document struct {
	Daily      Table  `json:"daily_ranking"`
	Historical Table  `json:"historical_ranking"`
	LastReset  string `json:"last_reset"`
}

// Today returns the local calendar date of now in DateLayout.
func Today(now time.Time) string {
	return now.Local().Format(DateLayout)
}

// NewDocument returns an empty document last reset on today.
func NewDocument(today string) *Document {
	return &Document{Daily: Table{}, Historical: Table{}, LastReset: today}
}

// Normalize replaces nil tables so a decoded document is safe to mutate.
func (d *Document) Normalize(today string) {
	if d.Daily == nil {
		d.Daily = Table{}
	}
	if d.Historical == nil {
		d.Historical = Table{}
	}
	if d.LastReset == "" {
		d.LastReset = today
	}
}

// AddPoints upserts userID in both tables, refreshes the stored name and
// applies delta. It returns the resulting entries.
func (d *Document) AddPoints(userID, name string, delta int) (daily, historical Entry) {
	daily = apply(d.Daily, userID, name, delta)
	historical = apply(d.Historical, userID, name, delta)
	return daily, historical
}

func apply(t Table, userID, name string, delta int) Entry {
	e := t[userID]
	e.Name = name
	e.Points += delta
	t[userID] = e
	return e
}

// NeedsDailyReset reports whether the daily table belongs to another day.
func (d *Document) NeedsDailyReset(today string) bool {
	return d.LastReset != today
}

// ResetDaily clears the daily table and stamps today.
func (d *Document) ResetDaily(today string) {
	d.Daily = Table{}
	d.LastReset = today
}

// ResetHistorical clears the all-time table.
func (d *Document) ResetHistorical() {
	d.Historical = Table{}
}

// Table returns the table of w.
func (d *Document) Table(w Window) Table {
	if w == WindowHistorical {
		return d.Historical
	}
	return d.Daily
}

// Name returns the stored name of userID, preferring the daily table.
func (d *Document) Name(userID string) (string, bool) {
	if e, ok := d.Daily[userID]; ok {
		return e.Name, true
	}
	if e, ok := d.Historical[userID]; ok {
		return e.Name, true
	}
	return "", false
}

// Clone returns a deep copy.
func (d *Document) Clone() *Document {
	return &Document{
		Daily:      lo.Assign(d.Daily),
		Historical: lo.Assign(d.Historical),
		LastReset:  d.LastReset,
	}
}

// Standing is a ranked entry.
type Standing struct {
	Position int
	UserID   string
	Name     string
	Points   int
}

// Top returns the n best entries of t, points descending. Ties are ordered
// by name, then user id, so the listing is stable.
func Top(t Table, n int) []Standing {
	standings := lo.MapToSlice(t, func(userID string, e Entry) Standing {
		return Standing{UserID: userID, Name: e.Name, Points: e.Points}
	})
	slices.SortFunc(standings, func(a, b Standing) int {
		return cmp.Or(
			cmp.Compare(b.Points, a.Points),
			cmp.Compare(a.Name, b.Name),
			cmp.Compare(a.UserID, b.UserID),
		)
	})
	if n >= 0 && len(standings) > n {
		standings = standings[:n]
	}
	for i := range standings {
		standings[i].Position = i + 1
	}
	return standings
}

// Medal returns the podium medal for a position, or "N." below the podium.
func Medal(position int) string {
	switch position {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return strconv.Itoa(position) + "."
	}
}

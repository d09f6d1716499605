package services

import (
	"fmt"
	"time"

	_ "time/tzdata"

	"github.com/robfig/cron/v3"
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// GateStatus is the outcome of one gate check.
type GateStatus struct {
	Available bool
	Notice    string
	CheckedAt time.Time
}

// Gate opens an aggregate only during a fixed window of local hours. The
// window is a cron hour field ("18-19" opens at 18:00 and closes at 20:00)
// evaluated in a fixed timezone.
type Gate struct {
	name     string
	label    string
	schedule *cron.SpecSchedule
	err      error
}

// NewGate builds a gate for aggregate name. hours is a cron hour field and
// timezone an IANA zone name. A bad zone or hour field leaves the gate
// permanently closed.
func NewGate(name, label, hours, timezone string) *Gate {
	g := &Gate{name: name, label: label}

	sched, err := cron.ParseStandard(fmt.Sprintf("CRON_TZ=%s * %s * * *", timezone, hours))
	if err != nil {
		g.err = fmt.Errorf("gate %s: %w", name, err)
		return g
	}
	spec, ok := sched.(*cron.SpecSchedule)
	if !ok {
		g.err = fmt.Errorf("gate %s: unexpected schedule type %T", name, sched)
		return g
	}
	g.schedule = spec
	return g
}

// GeoGate opens the geographic view from 18:00 to 20:00.
func GeoGate(timezone string) *Gate {
	return NewGate(AggInstallsByCountry, "Choropleth map", "18-19", timezone)
}

// BubbleGate opens the bubble view from 17:00 to 19:00.
func BubbleGate(timezone string) *Gate {
	return NewGate(AggSizeVsRating, "Bubble chart", "17-18", timezone)
}

// Name is the aggregate this gate controls.
func (g *Gate) Name() string { return g.name }

// Err reports why the gate can never open, if it can't.
func (g *Gate) Err() error { return g.err }

// Check reads the clock once and reports whether the window is open. Any
// failure to produce a zoned time closes the gate.
func (g *Gate) Check(clock Clock) GateStatus {
	now := clock.Now()
	if g.schedule == nil || now.IsZero() {
		return GateStatus{Available: false, Notice: g.notice(now), CheckedAt: now}
	}

	local := now.In(g.schedule.Location)
	open := g.schedule.Hour&(1<<uint(local.Hour())) != 0
	status := GateStatus{Available: open, CheckedAt: local}
	if !open {
		status.Notice = g.notice(local)
	}
	return status
}

func (g *Gate) notice(at time.Time) string {
	if g.schedule == nil {
		return fmt.Sprintf("%s is unavailable: %v.", g.label, g.err)
	}
	from, to := g.bounds()
	return fmt.Sprintf("%s is only available between %s and %s %s.",
		g.label, clockLabel(from), clockLabel(to), zoneLabel(g.schedule.Location, at))
}

// bounds returns the first open hour and the first closed hour after it.
func (g *Gate) bounds() (int, int) {
	from := -1
	for h := 0; h < 24; h++ {
		if g.schedule.Hour&(1<<uint(h)) != 0 {
			from = h
			break
		}
	}
	if from < 0 {
		return 0, 0
	}
	to := from
	for to < 24 && g.schedule.Hour&(1<<uint(to)) != 0 {
		to++
	}
	return from, to % 24
}

func clockLabel(hour int) string {
	switch {
	case hour == 0:
		return "12 AM"
	case hour < 12:
		return fmt.Sprintf("%d AM", hour)
	case hour == 12:
		return "12 PM"
	default:
		return fmt.Sprintf("%d PM", hour-12)
	}
}

// zoneLabel prefers the zone abbreviation ("IST") over the IANA name.
func zoneLabel(loc *time.Location, at time.Time) string {
	if at.IsZero() {
		return loc.String()
	}
	abbr, _ := at.In(loc).Zone()
	if abbr == "" || abbr[0] == '+' || abbr[0] == '-' {
		return loc.String()
	}
	return abbr
}

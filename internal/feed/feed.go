// Package feed exports dated notes as an iCalendar feed so other calendar
// clients can subscribe to them.
package feed

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-dashtyar/internal/calendar"
	"github.com/tartampluch/go-dashtyar/internal/config"
	"github.com/tartampluch/go-dashtyar/internal/notes"
)

// stubCalendar is returned when no note is dated, so clients still get a valid VCALENDAR.
const stubCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + config.ICalProdid + "\r\nEND:VCALENDAR\r\n"

// Generator builds the feed. Clock stamps DTSTAMP.
type Generator struct {
	Clock calendar.Clock
}

// Build encodes one all-day VEVENT per dated note.
func (g *Generator) Build(snap *notes.Snapshot) ([]byte, error) {
	start := time.Now()
	dated := snap.Dated()
	if len(dated) == 0 {
		return []byte(stubCalendar), nil
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	clock := g.Clock
	if clock == nil {
		clock = calendar.RealClock{}
	}
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(clock.Now().UTC())

	for _, n := range dated {
		k, ok := n.Key()
		if !ok {
			continue
		}
		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, n.ID, config.ICalDomain))
		event.Props.SetText(config.PropSummary, n.Title)
		if n.Content != "" {
			event.Props.SetText(config.PropDescription, n.Content)
		}

		// All-day: VALUE=DATE, the day as the note editor stored it.
		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(k.Time())
		event.Props.Set(dtStartProp)
		event.Props.Set(dtStampProp)

		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Debug(config.MsgFeedGenerated,
		config.LogKeyComponent, config.CompFeed,
		config.LogKeyCount, len(cal.Children),
		config.LogKeyDuration, time.Since(start).Milliseconds())
	return buf.Bytes(), nil
}

package extract

import (
	"context"
	"time"

	"github.com/Cloud-Foundations/target-installer/lib/format"
)

type eventSender struct {
	events      chan Event
	lastPercent uint
	sentAny     bool
}

func (e *Extractor) start(ctx context.Context, archive,
	destDir string) <-chan Event {
	sender := &eventSender{events: make(chan Event, 1)}
	go func() {
		startTime := time.Now()
		stats, err := e.extract(ctx, archive, destDir, sender.progress)
		if err != nil {
			e.params.Logger.Printf("error extracting: %s: %s\n", archive, err)
			sender.finish(Event{Kind: EventError, Err: err})
			return
		}
		e.params.Logger.Printf("extracted %d entries (%s) in %s\n",
			stats.entries, format.FormatBytes(stats.bytes),
			format.Duration(time.Since(startTime)))
		sender.finish(Event{Kind: EventFinished})
	}()
	return sender.events
}

func (s *eventSender) finish(event Event) {
	s.events <- event
	close(s.events)
}

// progress never blocks. A value not yet received is replaced by the newer
// value.
func (s *eventSender) progress(percent uint) {
	if s.sentAny && percent <= s.lastPercent {
		return
	}
	s.lastPercent = percent
	s.sentAny = true
	event := Event{Kind: EventProgress, Percent: percent}
	for {
		select {
		case s.events <- event:
			return
		default:
		}
		select {
		case <-s.events:
		default:
		}
	}
}

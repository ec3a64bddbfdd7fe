package collision

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/milk9111/fighter/hitbox"
)

// Entry pairs a hitbox with the handle of whatever owns it. The scheduler
// never keeps entries past one Step.
type Entry[H comparable] struct {
	Owner H
	Box   *hitbox.Hitbox
}

// Contact is one side's resolution of one overlap.
type Contact[H comparable] struct {
	Subject Entry[H]
	Other   Entry[H]
	Overlap hitbox.Overlap
	Outcome hitbox.Outcome
	Static  bool
}

// Report is everything one Step did.
type Report[H comparable] struct {
	Tick     uint64
	Contacts []Contact[H]
	// Expired lists entries whose hitbox expired during the tick, either by
	// resolving or by advancing. Owners should drop them.
	Expired []Entry[H]
	// Pairs counts intersection tests that succeeded.
	Pairs int
}

// Scheduler finds and resolves overlapping hitboxes once per tick. One
// scheduler belongs to one running match.
type Scheduler[H comparable] struct {
	logger *zap.Logger
	tick   uint64

	// Strict panics on a resolution error instead of logging it.
	Strict bool

	live    []Entry[H]
	statics []Entry[H]
}

// NewScheduler returns a scheduler that logs through logger. A nil logger
// discards everything.
func NewScheduler[H comparable](logger *zap.Logger) *Scheduler[H] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler[H]{logger: logger.Named("collision")}
}

// Tick returns the number of completed steps.
func (s *Scheduler[H]) Tick() uint64 {
	return s.tick
}

// Step runs one detect, resolve and advance pass. Dynamic entries are tested
// pairwise; each dynamic entry is then tested one way against every static.
// Statics never test against each other and never resolve.
func (s *Scheduler[H]) Step(dynamic, static []Entry[H], dt float64) Report[H] {
	s.tick++
	report := Report[H]{Tick: s.tick}

	s.live = filterLive(s.live[:0], dynamic)
	s.statics = filterLive(s.statics[:0], static)

	for i := 0; i < len(s.live); i++ {
		hi := s.live[i]
		for j := i + 1; j < len(s.live); j++ {
			hj := s.live[j]
			if sameParent(hi.Box, hj.Box) {
				continue
			}
			overlap, ok := hi.Box.Intersects(hj.Box)
			if !ok {
				continue
			}
			report.Pairs++
			s.resolve(&report, hi, hj, overlap, false)
			s.resolve(&report, hj, hi, overlap.Mirror(), false)
		}
	}

	for _, d := range s.live {
		for _, st := range s.statics {
			overlap, ok := d.Box.Intersects(st.Box)
			if !ok {
				continue
			}
			report.Pairs++
			s.resolve(&report, d, st, overlap, true)
		}
	}

	report.Expired = s.advance(report.Expired, dynamic, dt)
	report.Expired = s.advance(report.Expired, static, dt)

	clear(s.live)
	clear(s.statics)
	return report
}

func (s *Scheduler[H]) resolve(report *Report[H], subject, other Entry[H], overlap hitbox.Overlap, static bool) {
	out := subject.Box.ResolveIntersection(overlap)
	if out.Err != nil {
		if s.Strict {
			panic(fmt.Sprintf("collision: resolving %s against %s: %v", subject.Box.Kind, other.Box.Kind, out.Err))
		}
		s.logger.Error("resolve failed",
			zap.Stringer("subject", subject.Box.ID),
			zap.Stringer("subject_kind", subject.Box.Kind),
			zap.Stringer("other", other.Box.ID),
			zap.Stringer("other_kind", other.Box.Kind),
			zap.Error(out.Err),
		)
	}
	if out.Kind == hitbox.OutcomeNone {
		return
	}
	s.logger.Debug("contact",
		zap.Uint64("tick", s.tick),
		zap.Stringer("subject_kind", subject.Box.Kind),
		zap.Stringer("other_kind", other.Box.Kind),
		zap.Stringer("outcome", out.Kind),
		zap.Bool("static", static),
	)
	report.Contacts = append(report.Contacts, Contact[H]{
		Subject: subject,
		Other:   other,
		Overlap: overlap,
		Outcome: out,
		Static:  static,
	})
}

// advance updates every non-expired hitbox, including disabled ones so that
// arming timers run, and collects whatever is expired afterwards.
func (s *Scheduler[H]) advance(expired []Entry[H], entries []Entry[H], dt float64) []Entry[H] {
	for _, e := range entries {
		if e.Box == nil {
			continue
		}
		if !e.Box.Expired {
			e.Box.Update(dt)
		}
		if e.Box.Expired {
			expired = append(expired, e)
		}
	}
	return expired
}

func filterLive[H comparable](dst, src []Entry[H]) []Entry[H] {
	for _, e := range src {
		if e.Box.Live() {
			dst = append(dst, e)
		}
	}
	return dst
}

func sameParent(a, b *hitbox.Hitbox) bool {
	return a.Parent != nil && a.Parent == b.Parent
}

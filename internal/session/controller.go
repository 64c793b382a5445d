package session

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ademuri/speech-profile-tools/internal/features"
	"github.com/ademuri/speech-profile-tools/internal/motion"
	"github.com/ademuri/speech-profile-tools/internal/report"
)

// IdleTriggerLevel is the raw volume level above which an idle controller
// starts a live session.
const IdleTriggerLevel = 0.01

type Phase int

const (
	Idle Phase = iota
	Recording
	Finished
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Recording:
		return "recording"
	case Finished:
		return "finished"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Counter reports how many archived reports carry an identifier prefix.
type Counter interface {
	CountWithPrefix(prefix string) (int, error)
}

// Controller owns at most one Session at a time.
type Controller struct {
	geometry motion.Geometry
	counter  Counter
	log      zerolog.Logger
	now      func() time.Time

	phase             Phase
	session           *Session
	report            *report.Report
	finalizeRequested bool
}

// NewController returns an idle controller. counter may be nil, in which
// case every session is numbered as the first of its prefix.
func NewController(g motion.Geometry, counter Counter, logger zerolog.Logger) *Controller {
	return &Controller{
		geometry: g,
		counter:  counter,
		log:      logger,
		now:      time.Now,
		phase:    Idle,
	}
}

// Start discards any current session or report and begins a new session.
func (c *Controller) Start(source report.SourceKind) {
	c.session = New(source, c.geometry)
	c.report = nil
	c.finalizeRequested = false
	c.phase = Recording
	c.log.Info().Str("source", string(source)).Msg("session started")
}

// Tick feeds one tick of analyzer data. While idle, a tick louder than
// IdleTriggerLevel starts a live session and is processed by it. The second
// return value is false when no session consumed the tick.
func (c *Controller) Tick(raw features.Raw) (Output, bool) {
	switch c.phase {
	case Idle:
		if raw.VolumeLevel <= IdleTriggerLevel {
			return Output{}, false
		}
		c.Start(report.Live)
	case Finished:
		return Output{}, false
	}

	out := c.session.Step(raw)
	if out.AutoStop && !c.finalizeRequested {
		c.finalizeRequested = true
		st := c.session.Statistics()
		c.log.Info().
			Str("source", string(c.session.Source())).
			Int("tick", out.Tick).
			Int("frames", st.FrameCount).
			Int("silence_frames", st.SilenceFrames).
			Msg("auto-stop requested")
	}
	return out, true
}

// FinalizeRequested is true from the first tick on which the auto-stop
// condition held until the session is stopped or cancelled.
func (c *Controller) FinalizeRequested() bool {
	return c.finalizeRequested
}

// Stop finalizes the current session and returns its report. If counting
// archived reports fails the session is left running.
func (c *Controller) Stop() (*report.Report, error) {
	if c.phase != Recording {
		return nil, fmt.Errorf("no session is recording (phase %v)", c.phase)
	}
	existing := 0
	if c.counter != nil {
		var err error
		existing, err = c.counter.CountWithPrefix(c.session.Source().Prefix())
		if err != nil {
			return nil, fmt.Errorf("unable to count archived reports: %w", err)
		}
	}

	r := c.session.Finalize(existing, c.now())
	c.log.Info().
		Str("id", r.ID).
		Str("pattern", r.PrimaryPattern).
		Int("ticks", c.session.Ticks()).
		Int("duration", r.Duration).
		Msg("session finalized")

	c.report = r
	c.session = nil
	c.finalizeRequested = false
	c.phase = Finished
	return r, nil
}

// Cancel discards the current session without producing a report and
// returns to idle.
func (c *Controller) Cancel() {
	if c.session != nil {
		c.log.Info().
			Str("source", string(c.session.Source())).
			Int("tick", c.session.Ticks()).
			Msg("session cancelled")
	}
	c.session = nil
	c.report = nil
	c.finalizeRequested = false
	c.phase = Idle
}

// Report is the most recent finished report, or nil.
func (c *Controller) Report() *report.Report {
	return c.report
}

func (c *Controller) Phase() Phase {
	return c.phase
}

// Session is the recording in progress, or nil.
func (c *Controller) Session() *Session {
	return c.session
}

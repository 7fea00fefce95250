package behavior

import (
	"math"

	"go.uber.org/zap"

	"github.com/talgya/mimic/internal/action"
	"github.com/talgya/mimic/internal/emotion"
	"github.com/talgya/mimic/internal/entropy"
	"github.com/talgya/mimic/internal/env"
	"github.com/talgya/mimic/internal/grid"
)

// Progress tracking thresholds.
const (
	// minProgress is the horizontal displacement per tick that counts as
	// forward progress.
	minProgress = 0.5
	// stuckThreshold is the no-progress streak after which the stuck
	// counter starts climbing.
	stuckThreshold = 120
)

// Panic detector window: two rows either side, one column behind through
// three ahead.
const (
	panicRowSpan  = 2
	panicColsBack = 1
	panicColsFwd  = 3
)

// Controller owns the active behavior state, the interrupt layers, and the
// emotion model. It is the single writer of all shared mutable state; the
// states see it read-only through Context.
type Controller struct {
	log *zap.Logger
	rng entropy.Source

	emotions *emotion.Model
	states   [numStates]state
	active   StateID

	panicTicks      int
	hesitationTicks int

	lastX           float64
	noProgressTicks int
	stuckCounter    int
	tracking        bool

	prevNearbyEnemies int
}

// NewController returns a controller starting in Explore. A nil logger
// disables logging.
func NewController(em *emotion.Model, src entropy.Source, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Controller{
		log:      log,
		rng:      src,
		emotions: em,
		active:   StateExplore,
	}
	c.states[StateExplore] = &exploreState{}
	c.states[StateJump] = &jumpState{}
	c.states[StateCollect] = &collectState{}
	c.states[StateFlee] = &fleeState{}
	c.states[StateStuck] = &stuckState{}
	c.states[StateHesitate] = &hesitateState{}
	return c
}

// Step runs one tick of the decision pipeline and returns the action set.
// Interrupt layers pre-empt the state machine: a live panic or hesitation
// timer means no behavior state runs this tick.
func (c *Controller) Step(snap env.Snapshot) action.Set {
	c.emotions.Update(snap.Signal)

	// Panic has the highest precedence.
	if c.panicTicks > 0 {
		c.panicTicks--
		return c.panicActions()
	}
	if c.detectPanic(snap.Enemies) {
		c.panicTicks = c.emotions.PanicDuration()
		c.log.Debug("panic interrupt",
			zap.Int("duration", c.panicTicks),
			zap.Stringer("state", c.active))
		return c.panicActions()
	}

	if c.hesitationTicks > 0 {
		c.hesitationTicks--
		return action.Set{}
	}
	if riskyAhead(snap.Terrain, snap.Enemies) && c.emotions.ShouldHesitate() {
		c.hesitationTicks = c.emotions.HesitationDuration()
		c.log.Debug("hesitation interrupt", zap.Int("duration", c.hesitationTicks))
		return action.Set{}
	}

	c.trackProgress(snap.X)

	ctx := &Context{
		Terrain:      snap.Terrain,
		Enemies:      snap.Enemies,
		X:            snap.X,
		Emotion:      c.emotions,
		Rand:         c.rng,
		StuckCounter: c.stuckCounter,
	}

	if next, ok := c.states[c.active].Next(ctx); ok && next != c.active {
		c.transition(next, ctx)
	}

	set := c.states[c.active].Act(ctx)
	c.injectMistake(&set)
	return set
}

// transition switches states, firing the old state's exit hook before the
// new state's enter hook. Maneuver outcomes feed the emotion model here:
// the states themselves hold only a read-only view.
func (c *Controller) transition(next StateID, ctx *Context) {
	prev := c.active
	c.states[prev].Exit(ctx)
	c.active = next
	c.states[next].Enter(ctx)

	switch {
	case next == StateFlee || next == StateStuck:
		c.emotions.RecordFailedJump()
	case prev == StateJump && (next == StateExplore || next == StateCollect):
		c.emotions.RecordSuccessfulJump()
	}

	c.log.Debug("state transition",
		zap.Stringer("from", prev),
		zap.Stringer("to", next),
		zap.Int("stuck_counter", c.stuckCounter))
}

// detectPanic fires when enemies newly appear or newly close in: the nearby
// count rose since the last look, and the emotion model's panic draw agrees.
func (c *Controller) detectPanic(enemies grid.Grid) bool {
	near := enemies.EnemiesWithin(panicRowSpan, panicColsBack, panicColsFwd)
	appeared := near > c.prevNearbyEnemies
	c.prevNearbyEnemies = near
	return appeared && c.emotions.ShouldPanic()
}

// panicActions is the involuntary output while the panic timer runs: sprint
// forward with stochastic jumping, occasionally freezing outright.
func (c *Controller) panicActions() action.Set {
	var set action.Set
	if c.rng.Float64() < 0.7 {
		set.Right = true
		set.Speed = true
	}
	if c.rng.Float64() < 0.4 {
		set.Jump = true
	}
	return set
}

// trackProgress maintains the no-progress streak and the stuck counter from
// per-tick displacement.
func (c *Controller) trackProgress(x float64) {
	if !c.tracking {
		c.lastX = x
		c.tracking = true
		return
	}
	if math.Abs(x-c.lastX) < minProgress {
		c.noProgressTicks++
	} else {
		c.noProgressTicks = 0
		c.lastX = x
	}
	if c.noProgressTicks > stuckThreshold {
		c.stuckCounter++
	} else {
		c.stuckCounter = 0
	}
}

// injectMistake post-processes a synthesized set with probabilistic
// corruption. Severity weights which flag suffers: jumps are dropped first,
// then the run button, then forward movement.
func (c *Controller) injectMistake(set *action.Set) {
	if !c.emotions.ShouldMakeMistake() {
		return
	}
	severity := c.emotions.MistakeSeverity()
	switch {
	case set.Jump && c.rng.Float64() < severity:
		set.Jump = false
	case set.Speed && c.rng.Float64() < severity*0.5:
		set.Speed = false
	case set.Right && c.rng.Float64() < severity*0.3:
		set.Right = false
	}
}

// ResetForLevel prepares the controller for a fresh run: situational emotion
// traits reset, timers cleared, Explore active. Experience survives.
func (c *Controller) ResetForLevel() {
	c.emotions.ResetForLevel()
	c.panicTicks = 0
	c.hesitationTicks = 0
	c.noProgressTicks = 0
	c.stuckCounter = 0
	c.tracking = false
	c.prevNearbyEnemies = 0
	c.active = StateExplore
}

// Active returns the current behavior state id.
func (c *Controller) Active() StateID { return c.active }

// PanicTicks returns the remaining panic timer.
func (c *Controller) PanicTicks() int { return c.panicTicks }

// HesitationTicks returns the remaining hesitation timer.
func (c *Controller) HesitationTicks() int { return c.hesitationTicks }

// StuckCounter returns the progress-stall counter.
func (c *Controller) StuckCounter() int { return c.stuckCounter }

// Emotions exposes the model for observability. Callers must treat it as
// read-only; the controller is the single writer.
func (c *Controller) Emotions() *emotion.Model { return c.emotions }

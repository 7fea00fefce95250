// Package emotion models the agent's affective state: three bounded traits
// that drift toward fixed baselines, a derived experience scalar, and the
// probability/duration queries the behavior layer consults every tick.
//
// Queries never mutate traits; only Update and the Record* calls do. All
// probabilities are clamped into [0, 1] before a Bernoulli draw and all
// durations are clamped into their designed tick range.
package emotion

import (
	"fmt"

	"github.com/talgya/mimic/internal/entropy"
)

// Outcome is the level status reported by the environment. Win and Lose are
// edge-triggered: the environment reports them on the tick they occur.
type Outcome uint8

const (
	StatusRunning Outcome = iota
	StatusWin
	StatusLose
)

// Signal carries one tick's outcome data: level status plus cumulative coin
// and kill counts (the model detects deltas itself).
type Signal struct {
	Status Outcome
	Coins  int
	Kills  int
}

const (
	confidenceBaseline = 0.7
	cautionBaseline    = 0.5
	curiosityBaseline  = 0.6

	baselineDecayStep = 0.001

	deathConfidencePenalty = 0.2
	deathCautionIncrease   = 0.15
	deathConfidenceFloor   = 0.2
	coinConfidenceBoost    = 0.05
	killConfidenceBoost    = 0.1
	killCautionRelief      = 0.05
	cautionFloor           = 0.2

	jumpSuccessBoost   = 0.05
	jumpFailurePenalty = 0.1
	jumpFailureCaution = 0.05
	completionBoost    = 0.15

	// Experience blends historical jump and completion success rates.
	experienceJumpWeight  = 0.7
	experienceLevelWeight = 0.3

	// Experience modestly damps hesitation and mistake rates over time.
	experienceDamping = 0.3

	deathStreakCap = 3
)

// Hesitation and panic duration ranges, in ticks.
const (
	MinHesitationTicks = 10
	MaxHesitationTicks = 60
	MinPanicTicks      = 15
	MaxPanicTicks      = 90
)

// Model owns the emotional state. Created once at agent initialization; the
// behavior controller is its single writer.
type Model struct {
	rng entropy.Source

	confidence float64
	caution    float64
	curiosity  float64
	experience float64

	consecutiveDeaths int
	coinsSeen         int
	killsSeen         int

	jumpSuccesses   int
	jumpFailures    int
	levelsCompleted int
	levelAttempts   int
}

// NewModel returns a model at baseline traits drawing from src.
func NewModel(src entropy.Source) *Model {
	return &Model{
		rng:        src,
		confidence: confidenceBaseline,
		caution:    cautionBaseline,
		curiosity:  curiosityBaseline,
	}
}

// Update applies one tick's outcome signal and then the baseline decay step.
// It must be called exactly once per tick, before any query.
func (m *Model) Update(sig Signal) {
	switch sig.Status {
	case StatusLose:
		m.consecutiveDeaths++
		m.confidence = maxF(deathConfidenceFloor, m.confidence-deathConfidencePenalty)
		m.caution = minF(1, m.caution+deathCautionIncrease)
		m.levelAttempts++
		m.recomputeExperience()
	case StatusWin:
		m.RecordLevelCompletion()
	}

	if sig.Coins > m.coinsSeen {
		m.confidence = minF(1, m.confidence+coinConfidenceBoost)
		m.coinsSeen = sig.Coins
	}
	if sig.Kills > m.killsSeen {
		m.confidence = minF(1, m.confidence+killConfidenceBoost)
		m.caution = maxF(cautionFloor, m.caution-killCautionRelief)
		m.killsSeen = sig.Kills
	}

	m.decayTowardBaselines()
}

// decayTowardBaselines nudges confidence and caution back by one step per
// tick when nothing perturbs them.
func (m *Model) decayTowardBaselines() {
	m.confidence = stepToward(m.confidence, confidenceBaseline, baselineDecayStep)
	m.caution = stepToward(m.caution, cautionBaseline, baselineDecayStep)
}

// ResetForLevel restores situational traits and streak counters for a new
// run. Experience and its underlying attempt counters survive.
func (m *Model) ResetForLevel() {
	m.confidence = confidenceBaseline
	m.caution = cautionBaseline
	m.curiosity = curiosityBaseline
	m.consecutiveDeaths = 0
	m.coinsSeen = 0
	m.killsSeen = 0
}

// RecordSuccessfulJump credits a completed maneuver.
func (m *Model) RecordSuccessfulJump() {
	m.jumpSuccesses++
	m.confidence = minF(1, m.confidence+jumpSuccessBoost)
	m.recomputeExperience()
}

// RecordFailedJump debits a maneuver that ended badly.
func (m *Model) RecordFailedJump() {
	m.jumpFailures++
	m.confidence = maxF(0, m.confidence-jumpFailurePenalty)
	m.caution = minF(1, m.caution+jumpFailureCaution)
	m.recomputeExperience()
}

// RecordLevelCompletion credits a finished level and clears the death streak.
func (m *Model) RecordLevelCompletion() {
	m.levelsCompleted++
	m.levelAttempts++
	m.consecutiveDeaths = 0
	m.confidence = minF(1, m.confidence+completionBoost)
	m.recomputeExperience()
}

// RecordLevelFailure counts an abandoned or failed attempt.
func (m *Model) RecordLevelFailure() {
	m.levelAttempts++
	m.recomputeExperience()
}

func (m *Model) recomputeExperience() {
	jumpRatio := 0.0
	if total := m.jumpSuccesses + m.jumpFailures; total > 0 {
		jumpRatio = float64(m.jumpSuccesses) / float64(total)
	}
	levelRatio := 0.0
	if m.levelAttempts > 0 {
		levelRatio = float64(m.levelsCompleted) / float64(m.levelAttempts)
	}
	m.experience = clamp01(experienceJumpWeight*jumpRatio + experienceLevelWeight*levelRatio)
}

func (m *Model) deathStreakBonus() float64 {
	deaths := m.consecutiveDeaths
	if deaths > deathStreakCap {
		deaths = deathStreakCap
	}
	return float64(deaths)
}

// HesitationChance is the pure probability input to ShouldHesitate.
func (m *Model) HesitationChance() float64 {
	p := 0.05 + 0.25*m.caution + 0.20*(1-m.confidence) + 0.05*m.deathStreakBonus()
	return clamp01(p) * (1 - experienceDamping*m.experience)
}

// ShouldHesitate draws whether the agent pauses before a risky move.
func (m *Model) ShouldHesitate() bool {
	return entropy.Chance(m.rng, m.HesitationChance())
}

// HesitationDuration scales the freeze window by caution and low confidence.
func (m *Model) HesitationDuration() int {
	d := 20 + int(25*m.caution) + int(15*(1-m.confidence))
	return clampInt(d, MinHesitationTicks, MaxHesitationTicks)
}

// MistakeChance is the pure probability input to ShouldMakeMistake.
func (m *Model) MistakeChance() float64 {
	p := 0.02 + 0.08*(1-m.confidence) + 0.03*m.deathStreakBonus()
	return clamp01(p) * (1 - experienceDamping*m.experience)
}

// ShouldMakeMistake draws whether this tick's output gets corrupted.
func (m *Model) ShouldMakeMistake() bool {
	return entropy.Chance(m.rng, m.MistakeChance())
}

// MistakeSeverity returns how badly a mistake lands, in [0, 1].
func (m *Model) MistakeSeverity() float64 {
	return clamp01(0.2 + 0.4*(1-m.confidence) + 0.2*m.caution)
}

// CoinAppetite is the pure probability input to ShouldExploreForCoins.
func (m *Model) CoinAppetite() float64 {
	return clamp01(0.10 + 0.30*m.curiosity)
}

// ShouldExploreForCoins draws whether curiosity wins over forward progress.
func (m *Model) ShouldExploreForCoins() bool {
	return entropy.Chance(m.rng, m.CoinAppetite())
}

// PanicChance is the pure probability input to ShouldPanic.
func (m *Model) PanicChance() float64 {
	return clamp01(0.20 + 0.30*m.caution + 0.30*(1-m.confidence) + 0.10*m.deathStreakBonus())
}

// ShouldPanic draws whether a newly-proximate threat triggers panic.
func (m *Model) ShouldPanic() bool {
	return entropy.Chance(m.rng, m.PanicChance())
}

// PanicDuration scales the panic window by caution and low confidence.
func (m *Model) PanicDuration() int {
	d := 30 + int(40*m.caution) + int(20*(1-m.confidence))
	return clampInt(d, MinPanicTicks, MaxPanicTicks)
}

func (m *Model) Confidence() float64    { return m.confidence }
func (m *Model) Caution() float64       { return m.caution }
func (m *Model) Curiosity() float64     { return m.curiosity }
func (m *Model) Experience() float64    { return m.experience }
func (m *Model) ConsecutiveDeaths() int { return m.consecutiveDeaths }

// Describe summarizes the emotional state for logs.
func (m *Model) Describe() string {
	return fmt.Sprintf("confidence=%.2f caution=%.2f curiosity=%.2f experience=%.2f deaths=%d",
		m.confidence, m.caution, m.curiosity, m.experience, m.consecutiveDeaths)
}

func stepToward(v, target, step float64) float64 {
	switch {
	case v < target:
		return minF(target, v+step)
	case v > target:
		return maxF(target, v-step)
	default:
		return v
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

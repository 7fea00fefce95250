// Package action defines the closed control alphabet the agent may assert.
// Exactly one Set is produced per tick; an unset flag means "not pressed".
package action

import "strings"

// Button identifies one control flag.
type Button uint8

const (
	Left Button = iota
	Right
	Crouch
	Speed
	Jump
	numButtons
)

// Count is the size of the action alphabet.
const Count = int(numButtons)

var buttonNames = [Count]string{"left", "right", "crouch", "speed", "jump"}

func (b Button) String() string {
	if int(b) < Count {
		return buttonNames[b]
	}
	return "unknown"
}

// Set holds one tick's worth of control flags. The zero value presses nothing,
// which is the canonical no-op output during hesitation and panic freezes.
type Set struct {
	Left   bool
	Right  bool
	Crouch bool
	Speed  bool
	Jump   bool
}

// Flags returns the set as a fixed-length array in Button order, which is the
// wire form the environment consumes.
func (s Set) Flags() [Count]bool {
	return [Count]bool{s.Left, s.Right, s.Crouch, s.Speed, s.Jump}
}

// IsEmpty reports whether no flag is pressed.
func (s Set) IsEmpty() bool {
	return s == Set{}
}

// Clear releases every flag.
func (s *Set) Clear() {
	*s = Set{}
}

func (s Set) String() string {
	if s.IsEmpty() {
		return "[]"
	}
	var pressed []string
	for b, on := range s.Flags() {
		if on {
			pressed = append(pressed, buttonNames[b])
		}
	}
	return "[" + strings.Join(pressed, " ") + "]"
}

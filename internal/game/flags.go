// internal/game/flags.go
//
// Leniency flags: named toggles that turn a would-be validation error into a
// tolerated, counted deviation. Each player owns one Leniency for its whole
// lifetime; counters are never reset during a game.

package game

import "github.com/rs/zerolog"

// Flags is the fixed set of leniency options. Immutable after a player is built.
type Flags struct {
	IgnoreRambling              bool `yaml:"IGNORE RAMBLING" json:"IGNORE RAMBLING"`
	StripWords                  bool `yaml:"STRIP WORDS" json:"STRIP WORDS"`
	IgnoreNumberOfTargets       bool `yaml:"IGNORE NUMBER OF TARGETS" json:"IGNORE NUMBER OF TARGETS"`
	IgnoreFalseTargetsOrGuesses bool `yaml:"IGNORE FALSE TARGETS OR GUESSES" json:"IGNORE FALSE TARGETS OR GUESSES"`
}

// Flag names one leniency option.
type Flag int

const (
	FlagIgnoreRambling Flag = iota
	FlagStripWords
	FlagIgnoreNumberOfTargets
	FlagIgnoreFalseTargetsOrGuesses
	flagCount
)

var flagNames = [flagCount]string{
	FlagIgnoreRambling:              "IGNORE RAMBLING",
	FlagStripWords:                  "STRIP WORDS",
	FlagIgnoreNumberOfTargets:       "IGNORE NUMBER OF TARGETS",
	FlagIgnoreFalseTargetsOrGuesses: "IGNORE FALSE TARGETS OR GUESSES",
}

// AllFlags lists every flag in declaration order.
func AllFlags() []Flag {
	out := make([]Flag, 0, flagCount)
	for f := Flag(0); f < flagCount; f++ {
		out = append(out, f)
	}
	return out
}

func (f Flag) String() string {
	if f < 0 || f >= flagCount {
		return "UNKNOWN"
	}
	return flagNames[f]
}

// Enabled reports whether f is switched on in fs.
func (fs Flags) Enabled(f Flag) bool {
	switch f {
	case FlagIgnoreRambling:
		return fs.IgnoreRambling
	case FlagStripWords:
		return fs.StripWords
	case FlagIgnoreNumberOfTargets:
		return fs.IgnoreNumberOfTargets
	case FlagIgnoreFalseTargetsOrGuesses:
		return fs.IgnoreFalseTargetsOrGuesses
	}
	return false
}

// Engagement counts how often each flag's tolerance branch was taken.
type Engagement struct {
	counts [flagCount]int
}

// Inc bumps the counter for f.
func (e *Engagement) Inc(f Flag) {
	if f >= 0 && f < flagCount {
		e.counts[f]++
	}
}

// Count returns the counter for f.
func (e *Engagement) Count(f Flag) int {
	if f < 0 || f >= flagCount {
		return 0
	}
	return e.counts[f]
}

// Snapshot copies the counters into a map keyed by flag name.
func (e *Engagement) Snapshot() map[string]int {
	out := make(map[string]int, flagCount)
	for f := Flag(0); f < flagCount; f++ {
		out[f.String()] = e.counts[f]
	}
	return out
}

// Leniency pairs a flag set with its engagement counters.
type Leniency struct {
	flags   Flags
	engaged Engagement
	role    Role
	log     zerolog.Logger
}

func newLeniency(role Role, flags Flags, logger zerolog.Logger) *Leniency {
	return &Leniency{flags: flags, role: role, log: logger}
}

// Tolerate decides a malformed pattern. It returns false when f is disabled,
// leaving the caller to raise its error. When f is enabled the deviation is
// counted and logged and true is returned.
func (l *Leniency) Tolerate(f Flag) bool {
	if !l.flags.Enabled(f) {
		return false
	}
	l.engaged.Inc(f)
	l.log.Debug().
		Str("role", string(l.role)).
		Str("flag", f.String()).
		Int("engaged", l.engaged.Count(f)).
		Msg("tolerated deviation")
	return true
}

// Flags returns the configured flag set.
func (l *Leniency) Flags() Flags { return l.flags }

// Count returns how many times f was engaged.
func (l *Leniency) Count(f Flag) int { return l.engaged.Count(f) }

// Snapshot returns all counters keyed by flag name.
func (l *Leniency) Snapshot() map[string]int { return l.engaged.Snapshot() }

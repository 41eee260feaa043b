package wizard

import "fmt"

// Step is a stage of the builder
type Step int

const (
	Basics Step = iota
	Design
	Materials
	Interiors
	Summary
)

var stepNames = [...]string{"basics", "design", "materials", "interiors", "summary"}

func (s Step) String() string {
	if s < Basics || s > Summary {
		return fmt.Sprintf("step(%d)", int(s))
	}
	return stepNames[s]
}

// Valid reports whether s is one of the five stages
func (s Step) Valid() bool {
	return s >= Basics && s <= Summary
}

func (s Step) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid step %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Step) UnmarshalText(b []byte) error {
	for i, name := range stepNames {
		if string(b) == name {
			*s = Step(i)
			return nil
		}
	}
	return fmt.Errorf("unknown step %q", b)
}

package session

import (
	"codeberg.org/snonux/lingopop/internal/dictionary"
	"codeberg.org/snonux/lingopop/internal/language"
)

// View is the screen the user is on
type View int

const (
	ViewOnboarding View = iota
	ViewSearch
	ViewResult
	ViewNotebook
)

func (v View) String() string {
	switch v {
	case ViewOnboarding:
		return "onboarding"
	case ViewSearch:
		return "search"
	case ViewResult:
		return "result"
	case ViewNotebook:
		return "notebook"
	default:
		return "unknown"
	}
}

// State is the whole application state
type State struct {
	Native     *language.Language
	Target     *language.Language
	View       View
	Loading    bool
	Result     *dictionary.Result
	ShowChat   bool
	Generation uint64
}

// clone returns a deep copy safe to hand out
func (s State) clone() State {
	out := s
	if s.Native != nil {
		native := *s.Native
		out.Native = &native
	}
	if s.Target != nil {
		target := *s.Target
		out.Target = &target
	}
	out.Result = s.Result.Clone()
	return out
}

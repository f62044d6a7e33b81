// Package wizard is the two-step task creation flow: title, then description.
package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BuzzLyutic/todo/internal/model"
)

type State int

const (
	StateInitial State = iota
	StateTitle
	StateDescription
)

func (s State) String() string {
	switch s {
	case StateInitial:
		return "initial"
	case StateTitle:
		return "title"
	case StateDescription:
		return "description"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

var (
	ErrInvalidTransition = errors.New("wizard: invalid transition")
	ErrEmptyTitle        = errors.New("wizard: title should not be empty")
)

// Wizard is not safe for concurrent use; it belongs to one prompt session.
type Wizard struct {
	state State
	title string
}

func New() *Wizard {
	return &Wizard{state: StateInitial}
}

func (w *Wizard) State() State {
	return w.state
}

func (w *Wizard) Start() error {
	if w.state != StateInitial {
		return fmt.Errorf("%w: start from %s", ErrInvalidTransition, w.state)
	}
	w.state = StateTitle
	return nil
}

// SubmitTitle keeps the wizard on the title step when the title is blank.
func (w *Wizard) SubmitTitle(title string) error {
	if w.state != StateTitle {
		return fmt.Errorf("%w: title from %s", ErrInvalidTransition, w.state)
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	w.title = title
	w.state = StateDescription
	return nil
}

// SubmitDescription finishes the flow. A blank description is sent as absent.
func (w *Wizard) SubmitDescription(description string) (model.CreateTaskInput, error) {
	if w.state != StateDescription {
		return model.CreateTaskInput{}, fmt.Errorf("%w: description from %s", ErrInvalidTransition, w.state)
	}

	in := model.CreateTaskInput{Title: w.title}
	if d := strings.TrimSpace(description); d != "" {
		in.Description = &d
	}
	w.reset()
	return in, nil
}

// Cancel works from any state and has no other effect.
func (w *Wizard) Cancel() {
	w.reset()
}

func (w *Wizard) reset() {
	w.state = StateInitial
	w.title = ""
}

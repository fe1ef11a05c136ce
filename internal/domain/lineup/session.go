package lineup

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/riskibarqy/club-lineup/internal/domain/formation"
	"github.com/riskibarqy/club-lineup/internal/domain/player"
)

var (
	ErrConfirmationRequired = errors.New("formation change discards current assignments")
	ErrNoFormation          = errors.New("no formation chosen")
)

// State is the edit state of a lineup session.
type State string

const (
	StateDraft           State = "draft"
	StateFormationChosen State = "formation_chosen"
	StateAssigning       State = "assigning"
	StateValid           State = "valid"
	StateSaved           State = "saved"
)

// ChangeKind names the mutation a Change notification describes.
type ChangeKind string

const (
	ChangeFormation         ChangeKind = "formation"
	ChangeAssigned          ChangeKind = "assigned"
	ChangeUnassigned        ChangeKind = "unassigned"
	ChangeSubstituteAdded   ChangeKind = "substitute_added"
	ChangeSubstituteRemoved ChangeKind = "substitute_removed"
	ChangeSaved             ChangeKind = "saved"
)

type Change struct {
	Kind  ChangeKind
	Slot  formation.SlotKey
	Email string
	State State
}

// Session owns the starters and bench of one match lineup while a coach
// edits it. Mutations happen on a single goroutine; only Dispose may be
// called concurrently.
type Session struct {
	catalog  *formation.Catalog
	table    *AssignmentTable
	pool     *SubstitutePool
	saved    bool
	disposed atomic.Bool

	listeners map[int]func(Change)
	nextID    int
}

func NewSession(catalog *formation.Catalog) *Session {
	if catalog == nil {
		catalog = formation.Default()
	}
	return &Session{
		catalog:   catalog,
		pool:      NewSubstitutePool(),
		listeners: make(map[int]func(Change)),
	}
}

// Subscribe registers fn for change notifications and returns a func that
// removes it.
func (s *Session) Subscribe(fn func(Change)) func() {
	if fn == nil {
		return func() {}
	}
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() { delete(s.listeners, id) }
}

// ChooseFormation switches the layout and clears every starter. When
// starters are bound the caller must confirm the destructive change. The
// bench is kept.
func (s *Session) ChooseFormation(id string, confirm bool) error {
	f, err := s.catalog.Lookup(id)
	if err != nil {
		return err
	}
	if s.table != nil && s.table.Filled() > 0 && !confirm {
		return fmt.Errorf("%w: %d players assigned", ErrConfirmationRequired, s.table.Filled())
	}

	s.table = NewAssignmentTable(f)
	s.saved = false
	s.emit(Change{Kind: ChangeFormation})
	return nil
}

// Assign places email in slot and evicts the player from the bench.
func (s *Session) Assign(slot formation.SlotKey, email string) (AssignResult, error) {
	if s.table == nil {
		return AssignResult{}, ErrNoFormation
	}

	result, err := s.table.Assign(slot, email)
	if err != nil {
		return AssignResult{}, err
	}

	email = player.NormalizeEmail(email)
	if email == "" {
		if result.Previous != "" {
			s.touch()
			s.emit(Change{Kind: ChangeUnassigned, Slot: slot, Email: result.Previous})
		}
		return result, nil
	}

	if s.pool.Remove(email) {
		s.emit(Change{Kind: ChangeSubstituteRemoved, Email: email})
	}
	if result.MovedFrom != nil {
		s.emit(Change{Kind: ChangeUnassigned, Slot: *result.MovedFrom, Email: email})
	}
	if result.Displaced != "" {
		s.emit(Change{Kind: ChangeUnassigned, Slot: slot, Email: result.Displaced})
	}
	s.touch()
	s.emit(Change{Kind: ChangeAssigned, Slot: slot, Email: email})
	return result, nil
}

func (s *Session) Unassign(slot formation.SlotKey) string {
	if s.table == nil {
		return ""
	}
	email := s.table.Unassign(slot)
	if email != "" {
		s.touch()
		s.emit(Change{Kind: ChangeUnassigned, Slot: slot, Email: email})
	}
	return email
}

// AddSubstitute adds email to the bench unless the player is a starter.
func (s *Session) AddSubstitute(email string) AddOutcome {
	if s.table != nil && s.table.IsAssigned(email) {
		return AddOutcomeStarterRejected
	}
	outcome := s.pool.Add(email)
	if outcome == AddOutcomeAdded {
		s.touch()
		s.emit(Change{Kind: ChangeSubstituteAdded, Email: player.NormalizeEmail(email)})
	}
	return outcome
}

func (s *Session) RemoveSubstitute(email string) bool {
	if !s.pool.Remove(email) {
		return false
	}
	s.touch()
	s.emit(Change{Kind: ChangeSubstituteRemoved, Email: player.NormalizeEmail(email)})
	return true
}

// Validate returns the messages blocking a save.
func (s *Session) Validate() []string {
	if s.table == nil {
		return []string{"a formation must be chosen"}
	}
	return s.table.Validate(s.table.Formation().SlotCount())
}

func (s *Session) State() State {
	if s.table == nil {
		return StateDraft
	}
	filled := s.table.Filled()
	required := s.table.Formation().SlotCount()
	switch {
	case s.saved:
		return StateSaved
	case filled == 0:
		return StateFormationChosen
	case filled < required:
		return StateAssigning
	default:
		return StateValid
	}
}

// MarkSaved records a successful save. It is ignored once disposed.
func (s *Session) MarkSaved() bool {
	if s.Disposed() {
		return false
	}
	s.saved = true
	s.emit(Change{Kind: ChangeSaved})
	return true
}

// Dispose marks the session torn down so in-flight saves stop updating it.
func (s *Session) Dispose() {
	s.disposed.Store(true)
}

func (s *Session) Disposed() bool {
	return s.disposed.Load()
}

// Table exposes read access to the starters; mutate through the session.
func (s *Session) Table() *AssignmentTable {
	return s.table
}

func (s *Session) Substitutes() []string {
	return s.pool.Emails()
}

// AvailableSubstitutes lists roster players that are neither starters nor benched.
func (s *Session) AvailableSubstitutes(roster []player.Player) []player.Player {
	taken := s.pool.Emails()
	if s.table != nil {
		taken = append(taken, s.table.Emails()...)
	}
	return Available(roster, taken)
}

func (s *Session) FormationID() string {
	if s.table == nil {
		return ""
	}
	return s.table.Formation().ID
}

func (s *Session) touch() {
	s.saved = false
}

func (s *Session) emit(change Change) {
	if s.Disposed() {
		return
	}
	change.State = s.State()
	for _, fn := range s.listeners {
		fn(change)
	}
}

package matchevent

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/riskibarqy/club-lineup/internal/domain/player"
)

var (
	ErrInvalidEvent = errors.New("invalid match event")
	// ErrVersionConflict is returned by Replace when the ledger changed
	// after it was read.
	ErrVersionConflict = errors.New("match event ledger version conflict")
)

type Type string

const (
	TypeGoal         Type = "goal"
	TypeAssist       Type = "assist"
	TypeInjury       Type = "injury"
	TypeYellowCard   Type = "yellowCard"
	TypeRedCard      Type = "redCard"
	TypeSubstitution Type = "substitution"
)

var validTypes = map[Type]struct{}{
	TypeGoal:         {},
	TypeAssist:       {},
	TypeInjury:       {},
	TypeYellowCard:   {},
	TypeRedCard:      {},
	TypeSubstitution: {},
}

// minutePattern accepts regular and stoppage time minutes, e.g. "45" or "90+3".
var minutePattern = regexp.MustCompile(`^\d{1,3}(\+\d{1,2})?$`)

func ParseType(raw string) (Type, error) {
	t := Type(strings.TrimSpace(raw))
	if _, ok := validTypes[t]; !ok {
		return "", fmt.Errorf("%w: unknown type %q", ErrInvalidEvent, raw)
	}
	return t, nil
}

// Event is one occurrence during a match tied to a player.
type Event struct {
	ID            string
	Type          Type
	PlayerEmail   string
	Minute        string
	SubbedInEmail string
	RecordedAt    time.Time
}

// Normalize trims fields and lower-cases emails.
func (e Event) Normalize() Event {
	e.Type = Type(strings.TrimSpace(string(e.Type)))
	e.PlayerEmail = player.NormalizeEmail(e.PlayerEmail)
	e.Minute = strings.TrimSpace(e.Minute)
	e.SubbedInEmail = player.NormalizeEmail(e.SubbedInEmail)
	return e
}

func (e Event) Validate() error {
	e = e.Normalize()
	if _, ok := validTypes[e.Type]; !ok {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidEvent, e.Type)
	}
	if e.PlayerEmail == "" {
		return fmt.Errorf("%w: player email is required", ErrInvalidEvent)
	}
	if !minutePattern.MatchString(e.Minute) {
		return fmt.Errorf("%w: invalid minute %q", ErrInvalidEvent, e.Minute)
	}

	if e.Type == TypeSubstitution {
		if e.SubbedInEmail == "" {
			return fmt.Errorf("%w: substitution requires the subbed in player", ErrInvalidEvent)
		}
		if e.SubbedInEmail == e.PlayerEmail {
			return fmt.Errorf("%w: player cannot substitute themselves", ErrInvalidEvent)
		}
		return nil
	}
	if e.SubbedInEmail != "" {
		return fmt.Errorf("%w: subbed in player is only allowed on substitutions", ErrInvalidEvent)
	}
	return nil
}

// DedupKey identifies events that describe the same occurrence. ID and
// RecordedAt are not part of it.
type DedupKey struct {
	PlayerEmail   string
	Minute        string
	Type          Type
	SubbedInEmail string
}

func (e Event) DedupKey() DedupKey {
	n := e.Normalize()
	return DedupKey{
		PlayerEmail:   n.PlayerEmail,
		Minute:        n.Minute,
		Type:          n.Type,
		SubbedInEmail: n.SubbedInEmail,
	}
}

// Dedupe drops events whose dedup key was already seen, keeping the first
// occurrence and the input order.
func Dedupe(events []Event) []Event {
	seen := make(map[DedupKey]struct{}, len(events))
	out := make([]Event, 0, len(events))
	for _, event := range events {
		key := event.DedupKey()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, event)
	}
	return out
}

// Contains reports whether an event with the same dedup key is present.
func Contains(events []Event, event Event) bool {
	key := event.DedupKey()
	for _, item := range events {
		if item.DedupKey() == key {
			return true
		}
	}
	return false
}

// Ledger is the stored event list of one match. Version is the
// optimistic concurrency token; 0 means the store does not track one.
type Ledger struct {
	MatchID string
	Events  []Event
	Version int64
}

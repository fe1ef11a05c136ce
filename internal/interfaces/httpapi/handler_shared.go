package httpapi

import (
	"time"

	"github.com/riskibarqy/club-lineup/internal/domain/formation"
	"github.com/riskibarqy/club-lineup/internal/domain/lineup"
	"github.com/riskibarqy/club-lineup/internal/domain/matchevent"
	"github.com/riskibarqy/club-lineup/internal/domain/player"
	"github.com/riskibarqy/club-lineup/internal/usecase"
)

type saveLineupRequest struct {
	ClubName    string            `json:"club_name" validate:"required"`
	AgeGroup    string            `json:"age_group" validate:"required"`
	Division    string            `json:"division" validate:"required"`
	FormationID string            `json:"formation_id" validate:"required"`
	Lineup      map[string]string `json:"lineup" validate:"required"`
	Substitutes []string          `json:"substitutes" validate:"omitempty,max=10,dive,required"`
}

type retryParticipationRequest struct {
	ClubName   string                     `json:"club_name" validate:"required"`
	AgeGroup   string                     `json:"age_group" validate:"required"`
	Division   string                     `json:"division" validate:"required"`
	IsHomeGame bool                       `json:"is_home_game"`
	Players    []retryParticipationPlayer `json:"players" validate:"required,min=1,dive"`
}

type retryParticipationPlayer struct {
	Email string `json:"email" validate:"required"`
	Name  string `json:"name"`
}

type recordMatchEventRequest struct {
	Type          string `json:"type" validate:"required"`
	PlayerEmail   string `json:"player_email" validate:"required"`
	Minute        string `json:"minute" validate:"required"`
	SubbedInEmail string `json:"subbed_in_email"`
}

type bulkMatchEventsRequest struct {
	Events []bulkMatchEventRecord `json:"events" validate:"required,min=1,max=500,dive"`
}

type bulkMatchEventRecord struct {
	MatchID       string `json:"match_id" validate:"required"`
	Type          string `json:"type" validate:"required"`
	PlayerEmail   string `json:"player_email" validate:"required"`
	Minute        string `json:"minute" validate:"required"`
	SubbedInEmail string `json:"subbed_in_email"`
}

type formationDTO struct {
	ID        string     `json:"id"`
	SlotCount int        `json:"slot_count"`
	Rows      [][]string `json:"rows"`
	Slots     []slotDTO  `json:"slots,omitempty"`
}

type slotDTO struct {
	Key      string `json:"key"`
	Role     string `json:"role"`
	Row      int    `json:"row"`
	Column   int    `json:"column"`
	Category string `json:"category"`
}

type playerDTO struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Position string `json:"position"`
	UID      string `json:"uid,omitempty"`
}

type lineupDTO struct {
	MatchID     string            `json:"match_id"`
	ClubName    string            `json:"club_name"`
	AgeGroup    string            `json:"age_group"`
	Division    string            `json:"division"`
	Side        string            `json:"side"`
	FormationID string            `json:"formation_id"`
	Lineup      map[string]string `json:"lineup"`
	Substitutes []string          `json:"substitutes"`
	UpdatedAt   string            `json:"updated_at,omitempty"`
}

type participationResultDTO struct {
	PlayerEmail string `json:"player_email"`
	PlayerName  string `json:"player_name"`
	Status      string `json:"status"`
	Error       string `json:"error,omitempty"`
}

type participationReportDTO struct {
	ClubName       string                   `json:"club_name"`
	AgeGroup       string                   `json:"age_group"`
	Division       string                   `json:"division"`
	IsHomeGame     bool                     `json:"is_home_game"`
	SucceededCount int                      `json:"succeeded_count"`
	FailedCount    int                      `json:"failed_count"`
	Results        []participationResultDTO `json:"results"`
}

type saveLineupResponse struct {
	Lineup        lineupDTO              `json:"lineup"`
	Participation participationReportDTO `json:"participation"`
}

type matchEventDTO struct {
	ID            string `json:"id"`
	Type          string `json:"type"`
	PlayerEmail   string `json:"player_email"`
	Minute        string `json:"minute"`
	SubbedInEmail string `json:"subbed_in_email,omitempty"`
	RecordedAt    string `json:"recorded_at,omitempty"`
}

type matchEventLedgerDTO struct {
	MatchID string          `json:"match_id"`
	Version int64           `json:"version"`
	Events  []matchEventDTO `json:"events"`
}

type recordMatchEventResponse struct {
	MatchID   string        `json:"match_id"`
	Event     matchEventDTO `json:"event"`
	Duplicate bool          `json:"duplicate"`
	Version   int64         `json:"version"`
}

func formationToDTO(f formation.Formation, withSlots bool) formationDTO {
	rows := make([][]string, 0, len(f.Rows))
	for _, row := range f.Rows {
		labels := make([]string, 0, len(row))
		for _, role := range row {
			labels = append(labels, string(role))
		}
		rows = append(rows, labels)
	}

	out := formationDTO{ID: f.ID, SlotCount: f.SlotCount(), Rows: rows}
	if !withSlots {
		return out
	}
	out.Slots = make([]slotDTO, 0, out.SlotCount)
	for _, slot := range f.Slots() {
		category, _ := slot.Role.Category()
		out.Slots = append(out.Slots, slotDTO{
			Key:      slot.String(),
			Role:     string(slot.Role),
			Row:      slot.Row,
			Column:   slot.Column,
			Category: string(category),
		})
	}
	return out
}

func playersToDTO(players []player.Player) []playerDTO {
	out := make([]playerDTO, 0, len(players))
	for _, p := range players {
		out = append(out, playerDTO{
			Email:    player.NormalizeEmail(p.Email),
			Name:     p.Name,
			Position: string(p.Position),
			UID:      p.UID,
		})
	}
	return out
}

func lineupToDTO(item lineup.Lineup) lineupDTO {
	bySlot := make(map[string]string, len(item.Assignments))
	for slot, email := range item.Assignments {
		bySlot[slot.String()] = email
	}
	substitutes := append([]string{}, item.Substitutes...)

	return lineupDTO{
		MatchID:     item.MatchID,
		ClubName:    item.Scope.ClubName,
		AgeGroup:    item.Scope.AgeGroup,
		Division:    item.Scope.Division,
		Side:        string(item.Side),
		FormationID: item.FormationID,
		Lineup:      bySlot,
		Substitutes: substitutes,
		UpdatedAt:   formatOptionalTime(item.UpdatedAt),
	}
}

func participationReportToDTO(report usecase.ParticipationReport) participationReportDTO {
	out := participationReportDTO{
		ClubName:   report.Scope.ClubName,
		AgeGroup:   report.Scope.AgeGroup,
		Division:   report.Scope.Division,
		IsHomeGame: report.IsHomeGame,
		Results:    make([]participationResultDTO, 0, len(report.Results)),
	}
	for _, item := range report.Results {
		row := participationResultDTO{
			PlayerEmail: item.PlayerEmail,
			PlayerName:  item.PlayerName,
			Status:      "recorded",
		}
		if item.Err != nil {
			row.Status = "failed"
			row.Error = item.Err.Error()
			out.FailedCount++
		} else {
			out.SucceededCount++
		}
		out.Results = append(out.Results, row)
	}
	return out
}

func matchEventToDTO(e matchevent.Event) matchEventDTO {
	return matchEventDTO{
		ID:            e.ID,
		Type:          string(e.Type),
		PlayerEmail:   e.PlayerEmail,
		Minute:        e.Minute,
		SubbedInEmail: e.SubbedInEmail,
		RecordedAt:    formatOptionalTime(e.RecordedAt),
	}
}

func ledgerToDTO(ledger matchevent.Ledger) matchEventLedgerDTO {
	events := make([]matchEventDTO, 0, len(ledger.Events))
	for _, e := range ledger.Events {
		events = append(events, matchEventToDTO(e))
	}
	return matchEventLedgerDTO{
		MatchID: ledger.MatchID,
		Version: ledger.Version,
		Events:  events,
	}
}

func formatOptionalTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}

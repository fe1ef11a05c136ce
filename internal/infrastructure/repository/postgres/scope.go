package postgres

import (
	"github.com/riskibarqy/club-lineup/internal/domain/club"
	qb "github.com/riskibarqy/club-lineup/internal/platform/querybuilder"
)

// Every scoped table carries a unique index whose leading columns are the
// lower-cased club scope.
var scopeConflictTarget = []string{"(lower(club_name))", "(lower(age_group))", "(lower(division))"}

func scopeConditions(scope club.Scope) []qb.Condition {
	return []qb.Condition{
		qb.EqFold("club_name", scope.ClubName),
		qb.EqFold("age_group", scope.AgeGroup),
		qb.EqFold("division", scope.Division),
	}
}

func scopeLiteralConditions(scope club.Scope) []qb.Condition {
	return []qb.Condition{
		qb.EqFoldLiteral("club_name", scope.ClubName),
		qb.EqFoldLiteral("age_group", scope.AgeGroup),
		qb.EqFoldLiteral("division", scope.Division),
	}
}

func conflictTarget(leading []string, trailing ...string) []string {
	out := make([]string, 0, len(leading)+len(scopeConflictTarget)+len(trailing))
	out = append(out, leading...)
	out = append(out, scopeConflictTarget...)
	return append(out, trailing...)
}

package memory

import (
	"github.com/riskibarqy/club-lineup/internal/domain/club"
	"github.com/riskibarqy/club-lineup/internal/domain/player"
)

var SeedScope = club.Scope{ClubName: "Riverside FC", AgeGroup: "U12", Division: "Premier"}

func SeedPlayers() []player.Player {
	return []player.Player{
		{Email: "noah.keeper@riverside.test", Name: "Noah Carter", Position: player.PositionGoalkeeper, UID: "rv-01", Scope: SeedScope},
		{Email: "leo.gloves@riverside.test", Name: "Leo Grant", Position: player.PositionGoalkeeper, UID: "rv-02", Scope: SeedScope},
		{Email: "mason.hill@riverside.test", Name: "Mason Hill", Position: player.PositionDefender, UID: "rv-03", Scope: SeedScope},
		{Email: "ethan.ross@riverside.test", Name: "Ethan Ross", Position: player.PositionDefender, UID: "rv-04", Scope: SeedScope},
		{Email: "liam.shaw@riverside.test", Name: "Liam Shaw", Position: player.PositionDefender, UID: "rv-05", Scope: SeedScope},
		{Email: "owen.price@riverside.test", Name: "Owen Price", Position: player.PositionDefender, UID: "rv-06", Scope: SeedScope},
		{Email: "jack.moore@riverside.test", Name: "Jack Moore", Position: player.PositionDefender, UID: "rv-07", Scope: SeedScope},
		{Email: "lucas.reid@riverside.test", Name: "Lucas Reid", Position: player.PositionMidfielder, UID: "rv-08", Scope: SeedScope},
		{Email: "henry.ward@riverside.test", Name: "Henry Ward", Position: player.PositionMidfielder, UID: "rv-09", Scope: SeedScope},
		{Email: "james.cole@riverside.test", Name: "James Cole", Position: player.PositionMidfielder, UID: "rv-10", Scope: SeedScope},
		{Email: "aiden.fox@riverside.test", Name: "Aiden Fox", Position: player.PositionMidfielder, UID: "rv-11", Scope: SeedScope},
		{Email: "oscar.lane@riverside.test", Name: "Oscar Lane", Position: player.PositionMidfielder, UID: "rv-12", Scope: SeedScope},
		{Email: "theo.banks@riverside.test", Name: "Theo Banks", Position: player.PositionForward, UID: "rv-13", Scope: SeedScope},
		{Email: "sam.hughes@riverside.test", Name: "Sam Hughes", Position: player.PositionForward, UID: "rv-14", Scope: SeedScope},
		{Email: "max.doyle@riverside.test", Name: "Max Doyle", Position: player.PositionForward, UID: "rv-15", Scope: SeedScope},
		{Email: "finn.webb@riverside.test", Name: "Finn Webb", Position: player.PositionForward, UID: "rv-16", Scope: SeedScope},
	}
}

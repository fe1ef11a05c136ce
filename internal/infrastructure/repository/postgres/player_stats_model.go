package postgres

import "time"

type playerStatsTableModel struct {
	ClubName        string    `db:"club_name"`
	AgeGroup        string    `db:"age_group"`
	Division        string    `db:"division"`
	PlayerEmail     string    `db:"player_email"`
	PlayerName      string    `db:"player_name"`
	HomeGoals       int       `db:"home_goals"`
	HomeAssists     int       `db:"home_assists"`
	HomeYellowCards int       `db:"home_yellow_cards"`
	HomeRedCards    int       `db:"home_red_cards"`
	HomeGamesPlayed int       `db:"home_games_played"`
	AwayGoals       int       `db:"away_goals"`
	AwayAssists     int       `db:"away_assists"`
	AwayYellowCards int       `db:"away_yellow_cards"`
	AwayRedCards    int       `db:"away_red_cards"`
	AwayGamesPlayed int       `db:"away_games_played"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// playerStatsInsertModel carries one increment: exactly one counter is 1.
type playerStatsInsertModel struct {
	ClubName        string `db:"club_name"`
	AgeGroup        string `db:"age_group"`
	Division        string `db:"division"`
	PlayerEmail     string `db:"player_email"`
	PlayerName      string `db:"player_name"`
	HomeGoals       int    `db:"home_goals"`
	HomeAssists     int    `db:"home_assists"`
	HomeYellowCards int    `db:"home_yellow_cards"`
	HomeRedCards    int    `db:"home_red_cards"`
	HomeGamesPlayed int    `db:"home_games_played"`
	AwayGoals       int    `db:"away_goals"`
	AwayAssists     int    `db:"away_assists"`
	AwayYellowCards int    `db:"away_yellow_cards"`
	AwayRedCards    int    `db:"away_red_cards"`
	AwayGamesPlayed int    `db:"away_games_played"`
}

package models

// Standing is a derived row of the ranked table; it is never stored.
type Standing struct {
	ParticipantID   int     `json:"participant_id"`
	SeedPosition    int     `json:"seed_position"`
	Points          float64 `json:"points"`
	SonnebornBerger float64 `json:"sonneborn_berger"`
	GamesPlayed     int     `json:"games_played"`
	Rank            int     `json:"rank"`
}

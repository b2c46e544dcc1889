package model

// Club is one row of the district performance snapshot: identity, size,
// and the raw cumulative progress counters scoring works from.
type Club struct {
	Number        int    `json:"number"`
	Name          string `json:"name"`
	ActiveMembers int    `json:"active_members"`

	// Educational progress counters (year-to-date, cumulative).
	Level1s    int `json:"level_1s"`
	Level2s    int `json:"level_2s"`
	AddLevel2s int `json:"add_level_2s"`
	Level3s    int `json:"level_3s"`
	Level4s    int `json:"level_4s"`     // level 4s, path completions, or DTM awards
	AddLevel4s int `json:"add_level_4s"` // additional of the above

	// Officer training completions per round.
	OfficersTrainedR1 int `json:"officers_trained_r1"`
	OfficersTrainedR2 int `json:"officers_trained_r2"`

	// Club success plan flag as reported upstream ("Y"/"N"/blank).
	SuccessPlan string `json:"success_plan"`
}

// ClubRef identifies the club that owns a submission or award row.
// Number is the stable join key; Name is display-only and may drift
// across renames.
type ClubRef struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

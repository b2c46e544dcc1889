package model

// Cohort is the size band a club competes in. Clubs rank only against
// same-cohort peers; CohortUnknown is excluded from ranking.
type Cohort int

const (
	CohortUnknown Cohort = iota
	CohortSpark
	CohortRising
	CohortPowerhouse
	CohortPinnacle
)

var cohortNames = map[Cohort]string{
	CohortUnknown:    "Undefined",
	CohortSpark:      "Spark Clubs",
	CohortRising:     "Rising Stars",
	CohortPowerhouse: "Powerhouse Clubs",
	CohortPinnacle:   "Pinnacle Clubs",
}

var cohortDescriptions = map[Cohort]string{
	CohortUnknown:    "Club size not in defined range.",
	CohortSpark:      "Small but full of potential, these clubs are just igniting.",
	CohortRising:     "Gaining traction, these clubs are building energy and cohesion.",
	CohortPowerhouse: "Well-established, these clubs thrive on teamwork and synergy.",
	CohortPinnacle:   "Large, vibrant clubs at the peak of influence and activity.",
}

// DisplayName returns the cohort's presentation name.
func (c Cohort) DisplayName() string {
	if n, ok := cohortNames[c]; ok {
		return n
	}
	return cohortNames[CohortUnknown]
}

// Description returns the cohort's descriptive text.
func (c Cohort) Description() string {
	if d, ok := cohortDescriptions[c]; ok {
		return d
	}
	return cohortDescriptions[CohortUnknown]
}

// Known reports whether the cohort is one of the ranked size bands.
func (c Cohort) Known() bool {
	return c >= CohortSpark && c <= CohortPinnacle
}

// Cohorts lists the ranked cohorts in ascending size order.
func Cohorts() []Cohort {
	return []Cohort{CohortSpark, CohortRising, CohortPowerhouse, CohortPinnacle}
}

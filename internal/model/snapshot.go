package model

import "time"

// Source names one of the remote tables the loader fetches.
type Source string

const (
	SourcePerformance Source = "club_performance"
	SourceAwards      Source = "educational_awards"
	SourceContests    Source = "contests"
	SourceMOT         Source = "moments_of_truth"
	SourceCSP         Source = "club_success_plan"
	SourceMentorship  Source = "mentorship_programme"
	SourcePCC         Source = "pathways_completion_celebration"
	SourceDCP         Source = "distinguished_club_partners"
	SourceSTH         Source = "successful_transition_handover"
	SourceQI          Source = "quality_initiatives"
	SourceOnboarding  Source = "member_onboarding"
	SourceEnrollment  Source = "pathways_enrollment"
)

// AllSources lists every source in load order.
func AllSources() []Source {
	return []Source{
		SourcePerformance, SourceAwards, SourceContests, SourceMOT,
		SourceCSP, SourceMentorship, SourcePCC, SourceDCP, SourceSTH,
		SourceQI, SourceOnboarding, SourceEnrollment,
	}
}

// Snapshot is one cached raw source payload. UpdateDate comes from the
// upstream export filename; the (Source, UpdateDate) pair identifies the
// input revision, so a refreshed upstream file produces a new snapshot.
type Snapshot struct {
	ID         string    `json:"id"`
	Source     Source    `json:"source"`
	UpdateDate string    `json:"update_date"`
	Payload    []byte    `json:"payload,omitempty"`
	FetchedAt  time.Time `json:"fetched_at"`
}

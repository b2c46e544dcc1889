package model

import "time"

// AwardRecord is one individual educational award event: one row per
// member per award. Code is a short token such as "DL3" or "PM4" whose
// trailing digit encodes the level; "DTM" is the highest distinction.
type AwardRecord struct {
	Club   ClubRef   `json:"club"`
	Member string    `json:"member"`
	Code   string    `json:"code"`
	Date   time.Time `json:"date,omitempty"`
}

// ContestSubmission is one club's contest-date return. Each field holds
// the raw date text for that contest, empty when the contest was not held.
type ContestSubmission struct {
	Club          ClubRef `json:"club"`
	Humorous      string  `json:"humorous"`
	TableTopics   string  `json:"table_topics"`
	Evaluation    string  `json:"evaluation"`
	International string  `json:"international"`
}

// ProgramSubmission is one club's participation return for a named
// district program. Presence of any row is what scoring looks at, so
// the form's remaining columns are not carried.
type ProgramSubmission struct {
	Club ClubRef `json:"club"`
}

// MOTSubmission records one Moments of Truth session held by a club.
type MOTSubmission struct {
	Club        ClubRef   `json:"club"`
	SessionDate time.Time `json:"session_date"`
}

// CSPSubmission is a club success plan return. Answer carries the raw
// yes/no text; SubmittedAt the raw date text as entered on the form.
type CSPSubmission struct {
	Club        ClubRef `json:"club"`
	Answer      string  `json:"answer"`
	SubmittedAt string  `json:"submitted_at"`
}

// EnrollmentRecord is one member's pathways enrollment status row.
type EnrollmentRecord struct {
	Club     ClubRef `json:"club"`
	Member   string  `json:"member"`
	Enrolled bool    `json:"enrolled"`
}

package model

// Tier is one of the three independent point namespaces whose sums form a
// club's grand total.
type Tier string

const (
	TierEducation  Tier = "pathways_pioneers"
	TierLeadership Tier = "leadership_innovators"
	TierOperations Tier = "excellence_champions"
)

// DisplayName returns the tier's presentation name.
func (t Tier) DisplayName() string {
	switch t {
	case TierEducation:
		return "Pathways Pioneers"
	case TierLeadership:
		return "Leadership Innovators"
	case TierOperations:
		return "Excellence Champions"
	}
	return string(t)
}

// Tiers lists the three tiers in display order.
func Tiers() []Tier {
	return []Tier{TierEducation, TierLeadership, TierOperations}
}

// EducationPoints holds the educational-progress tier categories.
type EducationPoints struct {
	L1            int `json:"l1"`
	L2            int `json:"l2"`
	L3            int `json:"l3"`
	L4            int `json:"l4"`
	L5            int `json:"l5"`
	DTM           int `json:"dtm"`
	TripleCrown   int `json:"triple_crown"`
	Humorous      int `json:"humorous"`
	TableTopics   int `json:"table_topics"`
	Evaluation    int `json:"evaluation"`
	International int `json:"international"`
	Enrollment    int `json:"enrollment"`
}

// Total sums every educational category.
func (p EducationPoints) Total() int {
	return p.L1 + p.L2 + p.L3 + p.L4 + p.L5 + p.DTM + p.TripleCrown +
		p.Humorous + p.TableTopics + p.Evaluation + p.International + p.Enrollment
}

// LeadershipPoints holds the leadership/officer-activity tier categories.
type LeadershipPoints struct {
	COTRound1            int `json:"cot_round1"`
	COTRound2            int `json:"cot_round2"`
	MOTQ1                int `json:"mot_q1"`
	MOTQ3                int `json:"mot_q3"`
	PathwaysCelebration  int `json:"pathways_celebration"`
	Mentorship           int `json:"mentorship"`
	DistinguishedPartner int `json:"distinguished_partner"`
	TransitionHandover   int `json:"transition_handover"`
}

// Total sums every leadership category.
func (p LeadershipPoints) Total() int {
	return p.COTRound1 + p.COTRound2 + p.MOTQ1 + p.MOTQ3 +
		p.PathwaysCelebration + p.Mentorship + p.DistinguishedPartner + p.TransitionHandover
}

// OperationsPoints holds the club-operations tier categories.
type OperationsPoints struct {
	SuccessPlan       int `json:"success_plan"`
	QualityInitiative int `json:"quality_initiative"`
	MemberOnboarding  int `json:"member_onboarding"`
}

// Total sums every operations category.
func (p OperationsPoints) Total() int {
	return p.SuccessPlan + p.QualityInitiative + p.MemberOnboarding
}

// ScoreCard is the fully aggregated per-club result of a scoring run:
// every category point value populated (zero when the club made no
// qualifying submission) plus derived cohort assignment.
type ScoreCard struct {
	ClubNumber    int              `json:"club_number"`
	ClubName      string           `json:"club_name"`
	ActiveMembers int              `json:"active_members"`
	Cohort        Cohort           `json:"cohort"`
	Education     EducationPoints  `json:"education"`
	Leadership    LeadershipPoints `json:"leadership"`
	Operations    OperationsPoints `json:"operations"`
}

// TierTotal returns the given tier's point total.
func (s ScoreCard) TierTotal(t Tier) int {
	switch t {
	case TierEducation:
		return s.Education.Total()
	case TierLeadership:
		return s.Leadership.Total()
	case TierOperations:
		return s.Operations.Total()
	}
	return 0
}

// GrandTotal is the sum of the three tier totals.
func (s ScoreCard) GrandTotal() int {
	return s.Education.Total() + s.Leadership.Total() + s.Operations.Total()
}

// Entry is one ranked leaderboard row within a cohort.
type Entry struct {
	Rank          int    `json:"rank"`
	ClubNumber    int    `json:"club_number"`
	ClubName      string `json:"club_name"`
	Cohort        Cohort `json:"cohort"`
	Score         int    `json:"score"`
	GrandTotal    int    `json:"grand_total"`
	EducationPts  int    `json:"education_points"`
	LeadershipPts int    `json:"leadership_points"`
	OperationsPts int    `json:"operations_points"`
	TopThree      bool   `json:"top_three"`
}

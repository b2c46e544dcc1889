package scoring

import (
	"sort"

	"go.uber.org/zap"

	"github.com/district91/leaderboard-cli/internal/config"
	"github.com/district91/leaderboard-cli/internal/model"
)

// Inputs bundles every raw source table one scoring run consumes. Any
// slice may be nil or empty; the affected categories score zero.
type Inputs struct {
	Performance []model.Club
	Awards      []model.AwardRecord
	Contests    []model.ContestSubmission
	MOT         []model.MOTSubmission
	CSP         []model.CSPSubmission
	CSPPrior    []model.CSPSubmission
	Mentorship  []model.ProgramSubmission
	PCC         []model.ProgramSubmission
	DCP         []model.ProgramSubmission
	STH         []model.ProgramSubmission
	QI          []model.ProgramSubmission
	Onboarding  []model.ProgramSubmission
	Enrollment  []model.EnrollmentRecord
}

// Aggregate runs every category scorer and left-joins the results onto
// the roster by club number, defaulting absent categories to zero. One
// ScoreCard per roster club, in deterministic club-name order. Clubs not
// on the roster never appear, whatever they submitted.
func Aggregate(in Inputs, rules config.RuleSet) []model.ScoreCard {
	education := ScoreEducation(in.Performance, rules)
	awards := ScoreAwards(in.Awards, rules)
	training := ScoreTraining(in.Performance, rules)
	contests := ScoreContests(in.Contests, rules)
	mot := ScoreMOT(in.MOT, rules)
	csp := ScoreSuccessPlan(in.Performance, in.CSP, in.CSPPrior, rules)
	mentorship := ScorePresence(in.Mentorship, rules.Points.Mentorship)
	pcc := ScorePresence(in.PCC, rules.Points.PathwaysCelebration)
	dcp := ScorePresence(in.DCP, rules.Points.DistinguishedPartner)
	sth := ScorePresence(in.STH, rules.Points.TransitionHandover)
	qi := ScorePresence(in.QI, rules.Points.QualityInitiative)
	onboarding := ScorePresence(in.Onboarding, rules.Points.MemberOnboarding)
	enrollment := ScoreEnrollment(in.Enrollment, rules)

	cards := make([]model.ScoreCard, 0, len(in.Performance))
	for _, club := range in.Performance {
		if club.Number <= 0 {
			continue
		}

		edu := education[club.Number]
		aw := awards[club.Number]
		tr := training[club.Number]
		ct := contests[club.Number]
		mq := mot[club.Number]

		card := model.ScoreCard{
			ClubNumber:    club.Number,
			ClubName:      club.Name,
			ActiveMembers: club.ActiveMembers,
			Cohort:        Classify(club.ActiveMembers, rules),
			Education: model.EducationPoints{
				L1: edu.L1,
				L2: edu.L2,
				L3: edu.L3,
				// The roster counters and the award list report the same
				// achievements through different feeds; either qualifies.
				L4:            maxInt(edu.L4, aw.L4),
				L5:            maxInt(edu.L5, aw.L5),
				DTM:           aw.DTM,
				TripleCrown:   aw.TripleCrown,
				Humorous:      ct.Humorous,
				TableTopics:   ct.TableTopics,
				Evaluation:    ct.Evaluation,
				International: ct.International,
				Enrollment:    enrollment[club.Number],
			},
			Leadership: model.LeadershipPoints{
				COTRound1:            tr.Round1,
				COTRound2:            tr.Round2,
				MOTQ1:                mq.Q1,
				MOTQ3:                mq.Q3,
				PathwaysCelebration:  pcc[club.Number],
				Mentorship:           mentorship[club.Number],
				DistinguishedPartner: dcp[club.Number],
				TransitionHandover:   sth[club.Number],
			},
			Operations: model.OperationsPoints{
				SuccessPlan:       csp[club.Number],
				QualityInitiative: qi[club.Number],
				MemberOnboarding:  onboarding[club.Number],
			},
		}
		cards = append(cards, card)
	}

	sort.SliceStable(cards, func(i, j int) bool {
		if cards[i].ClubName != cards[j].ClubName {
			return cards[i].ClubName < cards[j].ClubName
		}
		return cards[i].ClubNumber < cards[j].ClubNumber
	})

	zap.L().Info("scoring: aggregation complete",
		zap.String("rules_version", rules.Version),
		zap.Int("clubs", len(cards)),
	)

	return cards
}

// Eligible filters to clubs meeting the minimum-member bar with a known
// cohort. Every ranked or exported view goes through this same filter so
// tier leaderboards never diverge on membership.
func Eligible(cards []model.ScoreCard, rules config.RuleSet) []model.ScoreCard {
	out := make([]model.ScoreCard, 0, len(cards))
	for _, c := range cards {
		if c.ActiveMembers >= rules.MinActiveMembers && c.Cohort.Known() {
			out = append(out, c)
		}
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

package config

import (
	"os"
	"time"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// RuleSet is one versioned scoring configuration. Point values, caps,
// cohort bands, and cutoff dates have all changed between program years,
// so a scoring run always declares the rule version it was computed under.
type RuleSet struct {
	Version          string       `yaml:"version"`
	MinActiveMembers int          `yaml:"min_active_members"`
	COTThreshold     int          `yaml:"cot_threshold"`
	Points           PointValues  `yaml:"points"`
	Caps             Caps         `yaml:"caps"`
	CohortBands      []CohortBand `yaml:"cohort_bands"`
	HumorousCutoff   string       `yaml:"humorous_cutoff"` // YYYY-MM-DD
	MOTQ1            DateWindow   `yaml:"mot_q1"`
	MOTQ3            DateWindow   `yaml:"mot_q3"`
	CSPImprovement   bool         `yaml:"csp_improvement"`
}

// PointValues holds every category's point award.
type PointValues struct {
	L1PerUnit            int `yaml:"l1_per_unit"`
	L2PerUnit            int `yaml:"l2_per_unit"`
	L3PerUnit            int `yaml:"l3_per_unit"`
	L4                   int `yaml:"l4"`
	L5                   int `yaml:"l5"`
	DTM                  int `yaml:"dtm"`
	TripleCrown          int `yaml:"triple_crown"`
	COTRound             int `yaml:"cot_round"`
	Contest              int `yaml:"contest"`
	SuccessPlan          int `yaml:"success_plan"`
	MOTQuarter           int `yaml:"mot_quarter"`
	Mentorship           int `yaml:"mentorship"`
	PathwaysCelebration  int `yaml:"pathways_celebration"`
	DistinguishedPartner int `yaml:"distinguished_partner"`
	TransitionHandover   int `yaml:"transition_handover"`
	QualityInitiative    int `yaml:"quality_initiative"`
	MemberOnboarding     int `yaml:"member_onboarding"`
	Enrollment           int `yaml:"enrollment"`
}

// Caps limits the per-unit education categories. Zero means uncapped.
type Caps struct {
	L1 int `yaml:"l1"`
	L2 int `yaml:"l2"`
	L3 int `yaml:"l3"`
}

// CohortBand is one inclusive active-member range. Max of zero means
// unbounded above. Bands are ordered smallest to largest; band index i
// maps to cohort i+1.
type CohortBand struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Contains reports whether the member count falls in the band.
func (b CohortBand) Contains(members int) bool {
	if members < b.Min {
		return false
	}
	return b.Max == 0 || members <= b.Max
}

// DateWindow is an inclusive date range in YYYY-MM-DD form.
type DateWindow struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Contains reports whether t falls inside the window. An unparsable or
// empty bound makes the window reject everything, so a misconfigured
// window awards nothing rather than everything.
func (w DateWindow) Contains(t time.Time) bool {
	from, err1 := time.Parse("2006-01-02", w.From)
	to, err2 := time.Parse("2006-01-02", w.To)
	if err1 != nil || err2 != nil || t.IsZero() {
		return false
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(from) && !d.After(to)
}

// HumorousCutoffTime returns the parsed humorous contest cutoff, or the
// zero time when no cutoff is configured.
func (r RuleSet) HumorousCutoffTime() time.Time {
	t, err := time.Parse("2006-01-02", r.HumorousCutoff)
	if err != nil {
		return time.Time{}
	}
	return t
}

// DefaultRules returns the 2025-2026 program year rule set.
func DefaultRules() RuleSet {
	return RuleSet{
		Version:          "2025-2026.1",
		MinActiveMembers: 8,
		COTThreshold:     7,
		Points: PointValues{
			L1PerUnit:            10,
			L2PerUnit:            20,
			L3PerUnit:            30,
			L4:                   40,
			L5:                   50,
			DTM:                  60,
			TripleCrown:          60,
			COTRound:             20,
			Contest:              10,
			SuccessPlan:          20,
			MOTQuarter:           15,
			Mentorship:           30,
			PathwaysCelebration:  20,
			DistinguishedPartner: 50,
			TransitionHandover:   20,
			QualityInitiative:    40,
			MemberOnboarding:     10,
			Enrollment:           10,
		},
		Caps: Caps{L1: 0, L2: 2, L3: 2}, // L1 was capped at 4 in earlier years
		CohortBands: []CohortBand{
			{Min: 8, Max: 16},
			{Min: 17, Max: 24},
			{Min: 25, Max: 40},
			{Min: 41, Max: 0},
		},
		HumorousCutoff: "2025-11-30",
		MOTQ1:          DateWindow{From: "2025-07-01", To: "2025-09-30"},
		MOTQ3:          DateWindow{From: "2026-01-01", To: "2026-03-31"},
		CSPImprovement: true,
	}
}

// LoadRules reads a rule document from disk, or returns the defaults when
// path is empty.
func LoadRules(path string) (RuleSet, error) {
	if path == "" {
		return DefaultRules(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return RuleSet{}, eris.Wrapf(err, "rules: read %s", path)
	}

	// Start from defaults so a partial document only overrides what it names.
	rules := DefaultRules()
	if err := yaml.Unmarshal(raw, &rules); err != nil {
		return RuleSet{}, eris.Wrapf(err, "rules: parse %s", path)
	}

	if err := rules.Validate(); err != nil {
		return RuleSet{}, err
	}
	return rules, nil
}

// Validate rejects rule documents that would make scoring incoherent.
func (r RuleSet) Validate() error {
	if r.Version == "" {
		return eris.New("rules: version is required")
	}
	if len(r.CohortBands) == 0 {
		return eris.New("rules: at least one cohort band is required")
	}
	prev := -1
	for i, b := range r.CohortBands {
		if b.Min <= prev {
			return eris.Errorf("rules: cohort band %d overlaps or is out of order", i)
		}
		if b.Max != 0 {
			if b.Max < b.Min {
				return eris.Errorf("rules: cohort band %d has max below min", i)
			}
			prev = b.Max
		} else if i != len(r.CohortBands)-1 {
			return eris.Errorf("rules: only the last cohort band may be unbounded")
		}
	}
	if r.COTThreshold <= 0 {
		return eris.New("rules: cot_threshold must be positive")
	}
	return nil
}

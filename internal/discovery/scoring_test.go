package discovery

import (
	"math"
	"testing"
	"time"

	"github.com/sparkd-app/sparkd-backend/internal/profile"
)

func strPtr(s string) *string { return &s }

func baseProfile(id int64) *profile.Profile {
	now := time.Now()
	return &profile.Profile{
		ID:         id,
		BirthDate:  now.AddDate(-30, 0, 0),
		Gender:     "female",
		LastActive: now,
		CreatedAt:  now.AddDate(0, -6, 0),
	}
}

func TestComputeScoreBoundsAndDeterminism(t *testing.T) {
	now := time.Now()
	a := baseProfile(1)
	a.Bio = strPtr("I enjoy hiking mountains and photography on weekends")
	a.Interests = []string{"hiking", "photography", "cooking"}
	b := baseProfile(2)
	b.Bio = strPtr("Weekend hiking and street photography are my thing")
	b.Interests = []string{"hiking", "music"}

	first := ComputeScore(a, b, nil, now)
	second := ComputeScore(a, b, nil, now)

	for name, s := range map[string]int{
		"overall":       first.Overall,
		"interest":      first.Breakdown.Interest,
		"bio":           first.Breakdown.Bio,
		"location":      first.Breakdown.Location,
		"activity":      first.Breakdown.Activity,
		"personality":   first.Breakdown.Personality,
		"love_language": first.Breakdown.LoveLanguage,
		"lifestyle":     first.Breakdown.Lifestyle,
	} {
		if s < 0 || s > 100 {
			t.Errorf("%s score out of bounds: %d", name, s)
		}
	}

	if first.Overall != second.Overall || first.Breakdown != second.Breakdown {
		t.Error("scoring must be deterministic for identical inputs")
	}
	if len(first.Explanations) > 5 {
		t.Errorf("explanations capped at 5, got %d", len(first.Explanations))
	}
}

func TestComputeScoreWeightedSum(t *testing.T) {
	now := time.Now()
	a := baseProfile(1)
	a.Interests = []string{"hiking", "cooking"}
	b := baseProfile(2)
	b.Interests = []string{"hiking", "music"}

	score := ComputeScore(a, b, nil, now)
	bd := score.Breakdown

	expected := 0.20*float64(bd.Interest) +
		0.15*float64(bd.Bio) +
		0.15*float64(bd.Location) +
		0.10*float64(bd.Activity) +
		0.20*float64(bd.Personality) +
		0.10*float64(bd.LoveLanguage) +
		0.10*float64(bd.Lifestyle)

	if math.Abs(float64(score.Overall)-expected) > 1 {
		t.Errorf("overall %d deviates from weighted sum %f by more than 1", score.Overall, expected)
	}
}

func TestComputeScoreNeutralScenario(t *testing.T) {
	// Empty interests and bios, shared city: location 90, interest and bio 50
	now := time.Now()
	a := baseProfile(1)
	a.City = strPtr("Amsterdam")
	b := baseProfile(2)
	b.City = strPtr("amsterdam")

	score := ComputeScore(a, b, nil, now)
	if score.Breakdown.Interest != 50 {
		t.Errorf("interest should be neutral 50, got %d", score.Breakdown.Interest)
	}
	if score.Breakdown.Bio != 50 {
		t.Errorf("bio should be neutral 50, got %d", score.Breakdown.Bio)
	}
	if score.Breakdown.Location != 90 {
		t.Errorf("same city should score 90, got %d", score.Breakdown.Location)
	}
}

func TestInterestScoreIdenticalLists(t *testing.T) {
	score, _ := InterestScore([]string{"hiking", "music"}, []string{"Music", "Hiking"})
	if score != 100 {
		t.Errorf("identical interests should score 100, got %d", score)
	}
}

func TestInterestScoreEmptyIsNeutral(t *testing.T) {
	if score, _ := InterestScore(nil, []string{"hiking"}); score != 50 {
		t.Errorf("empty side should be neutral, got %d", score)
	}
}

func TestInterestScoreCategoryOverlap(t *testing.T) {
	// No shared tokens, but both map to the outdoors bucket
	withCategory, _ := InterestScore([]string{"hiking"}, []string{"climbing"})
	without, _ := InterestScore([]string{"hiking"}, []string{"piano"})
	if withCategory <= without {
		t.Errorf("category overlap should lift the score: %d vs %d", withCategory, without)
	}
}

func TestBioScore(t *testing.T) {
	if s := BioScore(nil, strPtr("hello world")); s != 50 {
		t.Errorf("nil bio should be neutral, got %d", s)
	}
	same := "exploring mountains photographing sunsets"
	if s := BioScore(&same, &same); s != 100 {
		t.Errorf("identical bios should score 100, got %d", s)
	}
}

func TestLocationScoreSteps(t *testing.T) {
	tests := []struct {
		distance float64
		want     int
	}{
		{5, 100}, {10, 100}, {20, 85}, {40, 70}, {80, 55}, {150, 35}, {500, 20},
	}
	for _, tt := range tests {
		d := tt.distance
		if got := LocationScore("", "", &d); got != tt.want {
			t.Errorf("LocationScore at %f km = %d, want %d", tt.distance, got, tt.want)
		}
	}
}

func TestLocationScoreSameCityBeatsDistance(t *testing.T) {
	d := 300.0
	if got := LocationScore("Berlin", "berlin", &d); got != 90 {
		t.Errorf("same city should score 90 regardless of distance, got %d", got)
	}
}

func TestLocationScoreNoSignal(t *testing.T) {
	if got := LocationScore("", "", nil); got != 50 {
		t.Errorf("no coordinates and no city should be neutral, got %d", got)
	}
}

func TestActivityScore(t *testing.T) {
	tests := []struct {
		a, b, want int
	}{
		{5, 5, 100}, {5, 4, 70}, {5, 3, 40}, {5, 2, 10}, {1, 5, 10},
	}
	for _, tt := range tests {
		if got := ActivityScore(tt.a, tt.b); got != tt.want {
			t.Errorf("ActivityScore(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func testPersonality() *profile.PersonalityProfile {
	return &profile.PersonalityProfile{
		Openness:           7,
		Conscientiousness:  6,
		Extraversion:       5,
		Agreeableness:      8,
		ConflictStyle:      "talk_it_out",
		CommunicationStyle: "direct",
		RelationshipGoal:   "long_term",
		LoveLanguages: profile.LoveLanguages{
			WordsOfAffirmation: 3,
			ActsOfService:      5,
			ReceivingGifts:     2,
			QualityTime:        9,
			PhysicalTouch:      6,
		},
	}
}

func TestPersonalityScoreNilIsNeutral(t *testing.T) {
	if s, notes := PersonalityScore(nil, testPersonality()); s != 50 || notes != nil {
		t.Errorf("missing personality should be neutral 50 with no notes, got %d", s)
	}
}

func TestPersonalityScoreIdentical(t *testing.T) {
	s, _ := PersonalityScore(testPersonality(), testPersonality())
	if s != 100 {
		t.Errorf("identical personalities should score 100, got %d", s)
	}
}

func TestPersonalityScoreCompatiblePair(t *testing.T) {
	a := testPersonality()
	b := testPersonality()
	b.ConflictStyle = "compromise"

	s, _ := PersonalityScore(a, b)
	// Four scales at 100 plus categoricals 70, 100, 100
	want := int(math.Round(float64(100+100+100+100+70+100+100) / 7))
	if s != want {
		t.Errorf("compatible conflict pair score = %d, want %d", s, want)
	}
}

func TestLoveLanguageScore(t *testing.T) {
	s, notes := LoveLanguageScore(testPersonality(), testPersonality())
	if s != 100 {
		t.Errorf("identical love languages should score 100, got %d", s)
	}
	if len(notes) != 1 {
		t.Fatalf("matching top language should emit one explanation, got %d", len(notes))
	}
	if notes[0].component != "love_language" {
		t.Errorf("unexpected explanation component: %s", notes[0].component)
	}
}

func TestLoveLanguageScoreNilIsNeutral(t *testing.T) {
	if s, _ := LoveLanguageScore(testPersonality(), nil); s != 50 {
		t.Errorf("missing profile should be neutral, got %d", s)
	}
}

func TestLifestyleScoreExactMatch(t *testing.T) {
	a := baseProfile(1)
	a.Smoking = strPtr("never")
	a.Drinking = strPtr("socially")
	a.Children = strPtr("want")
	b := baseProfile(2)
	b.Smoking = strPtr("never")
	b.Drinking = strPtr("socially")
	b.Children = strPtr("want")

	if s := LifestyleScore(a, b); s != 100 {
		t.Errorf("matching lifestyle should score 100, got %d", s)
	}
}

func TestLifestyleScoreFlaggedMismatches(t *testing.T) {
	a := baseProfile(1)
	a.Smoking = strPtr("never")
	a.Drinking = strPtr("socially")
	a.Children = strPtr("want")
	b := baseProfile(2)
	b.Smoking = strPtr("regularly")
	b.Drinking = strPtr("socially")
	b.Children = strPtr("dont_want")

	// smoking 10, drinking 100, children 10 doubled: (10+100+20)/4 = 32.5 -> 33
	if s := LifestyleScore(a, b); s != 33 {
		t.Errorf("flagged mismatches should score 33, got %d", s)
	}
}

func TestLifestyleScoreMissingFieldsNeutral(t *testing.T) {
	if s := LifestyleScore(baseProfile(1), baseProfile(2)); s != 50 {
		t.Errorf("absent lifestyle fields should be neutral, got %d", s)
	}
}

func TestMatchQualityTiers(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, "excellent"}, {75, "excellent"}, {74, "good"}, {60, "good"}, {59, "fair"}, {0, "fair"},
	}
	for _, tt := range tests {
		if got := MatchQuality(tt.score); got != tt.want {
			t.Errorf("MatchQuality(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestAssembleExplanationsDedupAndCap(t *testing.T) {
	notes := []explanation{
		{"interest", "first interest note"},
		{"interest", "second interest note"},
		{"bio", "bio note"},
		{"location", "location note"},
		{"activity", "activity note"},
		{"personality", "personality note"},
		{"love_language", "love note"},
		{"lifestyle", "lifestyle note"},
	}

	out := assembleExplanations(notes)
	if len(out) != 5 {
		t.Fatalf("expected cap of 5, got %d", len(out))
	}
	if out[0] != "first interest note" {
		t.Errorf("first note per component wins, got %q", out[0])
	}
	for _, text := range out {
		if text == "second interest note" {
			t.Error("duplicate component should be dropped")
		}
	}
}

// internal/discovery/scoring.go
// Seven-factor compatibility scoring. Every sub-score lands in [0,100] with
// 50 meaning "no signal"; the overall score is the weighted sum rounded and
// clamped. Scoring is pure: same inputs, same output.

package discovery

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/sparkd-app/sparkd-backend/internal/profile"
)

// Sub-score weights, summing to 1.00
const (
	weightInterest     = 0.20
	weightBio          = 0.15
	weightLocation     = 0.15
	weightActivity     = 0.10
	weightPersonality  = 0.20
	weightLoveLanguage = 0.10
	weightLifestyle    = 0.10
)

const neutralScore = 50

// maxExplanations caps the explanation list on every score
const maxExplanations = 5

// explanation ties a human-readable line to the component that produced it,
// so the list can be deduplicated per component and truncated in a fixed
// precedence order.
type explanation struct {
	component string
	text      string
}

// ComputeScore scores candidate b against requester a. distanceKM carries the
// already-computed geodistance when both sides had usable coordinates.
func ComputeScore(a, b *profile.Profile, distanceKM *float64, now time.Time) Score {
	var notes []explanation

	interest, interestNotes := InterestScore(a.Interests, b.Interests)
	notes = append(notes, interestNotes...)

	bio := BioScore(a.Bio, b.Bio)
	if bio >= 70 {
		notes = append(notes, explanation{"bio", "You describe yourselves in similar ways"})
	}

	location := LocationScore(a.EffectiveCity(now), cityOf(b), distanceKM)
	if location >= 85 {
		notes = append(notes, explanation{"location", "You are close to each other"})
	}

	activity := ActivityScore(activityLevel(a, now), activityLevel(b, now))

	personality, personalityNotes := PersonalityScore(a.Personality.Ptr(), b.Personality.Ptr())
	notes = append(notes, personalityNotes...)

	loveLanguage, loveNotes := LoveLanguageScore(a.Personality.Ptr(), b.Personality.Ptr())
	notes = append(notes, loveNotes...)

	lifestyle := LifestyleScore(a, b)
	if lifestyle >= 90 {
		notes = append(notes, explanation{"lifestyle", "Your lifestyles line up well"})
	}

	breakdown := CompatibilityBreakdown{
		Interest:     interest,
		Bio:          bio,
		Location:     location,
		Activity:     activity,
		Personality:  personality,
		LoveLanguage: loveLanguage,
		Lifestyle:    lifestyle,
	}

	overall := weightInterest*float64(interest) +
		weightBio*float64(bio) +
		weightLocation*float64(location) +
		weightActivity*float64(activity) +
		weightPersonality*float64(personality) +
		weightLoveLanguage*float64(loveLanguage) +
		weightLifestyle*float64(lifestyle)

	return Score{
		Overall:      clampScore(int(math.Round(overall))),
		Breakdown:    breakdown,
		Explanations: assembleExplanations(notes),
	}
}

// assembleExplanations keeps at most one line per component, ordered by
// component precedence, capped at maxExplanations.
func assembleExplanations(notes []explanation) []string {
	precedence := []string{"interest", "bio", "location", "activity", "personality", "love_language", "lifestyle"}

	byComponent := make(map[string]string, len(notes))
	for _, n := range notes {
		if _, seen := byComponent[n.component]; !seen {
			byComponent[n.component] = n.text
		}
	}

	out := make([]string, 0, maxExplanations)
	for _, component := range precedence {
		if text, ok := byComponent[component]; ok {
			out = append(out, text)
			if len(out) == maxExplanations {
				break
			}
		}
	}
	return out
}

// Interest scoring

// interestCategories buckets free-text interests into coarse themes so that
// "hiking" and "climbing" still count as shared ground.
var interestCategories = map[string]string{
	"football": "sports", "soccer": "sports", "basketball": "sports",
	"tennis": "sports", "running": "sports", "gym": "sports",
	"fitness": "sports", "yoga": "sports", "swimming": "sports",
	"cycling": "sports", "boxing": "sports",

	"music": "music", "concerts": "music", "guitar": "music",
	"piano": "music", "singing": "music", "festivals": "music", "dj": "music",

	"art": "culture", "museums": "culture", "theatre": "culture",
	"reading": "culture", "books": "culture", "writing": "culture",
	"photography": "culture", "film": "culture", "movies": "culture",

	"cooking": "food", "baking": "food", "wine": "food",
	"coffee": "food", "foodie": "food", "restaurants": "food",

	"travel": "travel", "backpacking": "travel", "roadtrips": "travel",
	"languages": "travel",

	"hiking": "outdoors", "camping": "outdoors", "climbing": "outdoors",
	"surfing": "outdoors", "skiing": "outdoors", "sailing": "outdoors",
	"nature": "outdoors", "dogs": "outdoors",

	"coding": "tech", "gadgets": "tech", "science": "tech", "startups": "tech",

	"gaming": "games", "boardgames": "games", "chess": "games", "esports": "games",
}

// InterestScore blends exact-token overlap with category-level overlap 70/30.
// Either side empty means no signal.
func InterestScore(a, b []string) (int, []explanation) {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return neutralScore, nil
	}

	exact := jaccard(setA, setB)
	category := jaccard(categorySet(setA), categorySet(setB))
	score := clampScore(int(math.Round((0.7*exact + 0.3*category) * 100)))

	var notes []explanation
	if shared := intersection(setA, setB); len(shared) > 0 {
		notes = append(notes, explanation{
			"interest",
			fmt.Sprintf("You both enjoy %s", strings.Join(shared, ", ")),
		})
	} else if score >= 40 {
		notes = append(notes, explanation{"interest", "You have overlapping interests"})
	}
	return score, notes
}

func categorySet(tokens map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{})
	for token := range tokens {
		if category, ok := interestCategories[token]; ok {
			out[category] = struct{}{}
		}
	}
	return out
}

// Bio scoring

// bioStopWords are filtered out before comparing biographies
var bioStopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"but": {}, "by": {}, "for": {}, "i": {}, "im": {}, "in": {}, "is": {},
	"it": {}, "love": {}, "like": {}, "me": {}, "my": {}, "of": {}, "on": {},
	"or": {}, "so": {}, "the": {}, "to": {}, "with": {}, "you": {},
}

// BioScore is a stop-word-filtered token Jaccard over the two bios
func BioScore(a, b *string) int {
	if a == nil || b == nil {
		return neutralScore
	}
	setA := bioTokenSet(*a)
	setB := bioTokenSet(*b)
	if len(setA) == 0 || len(setB) == 0 {
		return neutralScore
	}
	return clampScore(int(math.Round(jaccard(setA, setB) * 100)))
}

func bioTokenSet(text string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, field := range strings.Fields(strings.ToLower(text)) {
		token := strings.Trim(field, ".,!?;:'\"()")
		if token == "" {
			continue
		}
		if _, stop := bioStopWords[token]; stop {
			continue
		}
		out[token] = struct{}{}
	}
	return out
}

// Location scoring

// LocationScore prefers the same city, then steps down with distance.
// No city match and no distance means no signal.
func LocationScore(cityA, cityB string, distanceKM *float64) int {
	if cityA != "" && cityB != "" && strings.EqualFold(cityA, cityB) {
		return 90
	}
	if distanceKM == nil {
		return neutralScore
	}
	d := *distanceKM
	switch {
	case d <= 10:
		return 100
	case d <= 25:
		return 85
	case d <= 50:
		return 70
	case d <= 100:
		return 55
	case d <= 200:
		return 35
	default:
		return 20
	}
}

func cityOf(p *profile.Profile) string {
	if p.City == nil {
		return ""
	}
	return *p.City
}

// Activity scoring

// activityLevel bands recency of last_active (created_at as fallback) into
// five levels, 5 being most recently active.
func activityLevel(p *profile.Profile, now time.Time) int {
	seen := p.LastActive
	if seen.IsZero() {
		seen = p.CreatedAt
	}
	idle := now.Sub(seen)
	switch {
	case idle <= 24*time.Hour:
		return 5
	case idle <= 3*24*time.Hour:
		return 4
	case idle <= 7*24*time.Hour:
		return 3
	case idle <= 30*24*time.Hour:
		return 2
	default:
		return 1
	}
}

// ActivityScore rewards similar activity rhythms
func ActivityScore(levelA, levelB int) int {
	diff := levelA - levelB
	if diff < 0 {
		diff = -diff
	}
	switch diff {
	case 0:
		return 100
	case 1:
		return 70
	case 2:
		return 40
	default:
		return 10
	}
}

// Personality scoring

// compatibleConflictStyles are pairs known to resolve well together
var compatibleConflictStyles = map[string]string{
	"talk_it_out": "compromise",
	"compromise":  "talk_it_out",
	"need_space":  "avoid",
	"avoid":       "need_space",
}

var compatibleCommunicationStyles = map[string]string{
	"direct":     "thoughtful",
	"thoughtful": "direct",
	"playful":    "reserved",
	"reserved":   "playful",
}

var compatibleRelationshipGoals = map[string]string{
	"long_term": "marriage",
	"marriage":  "long_term",
}

// PersonalityScore averages four numeric-scale scores and three categorical
// scores. Either profile missing a questionnaire means no signal.
func PersonalityScore(a, b *profile.PersonalityProfile) (int, []explanation) {
	if a == nil || b == nil {
		return neutralScore, nil
	}

	scaleScores := []int{
		scaleScore(a.Openness, b.Openness),
		scaleScore(a.Conscientiousness, b.Conscientiousness),
		scaleScore(a.Extraversion, b.Extraversion),
		scaleScore(a.Agreeableness, b.Agreeableness),
	}
	categoricalScores := []int{
		categoricalScore(a.ConflictStyle, b.ConflictStyle, compatibleConflictStyles),
		categoricalScore(a.CommunicationStyle, b.CommunicationStyle, compatibleCommunicationStyles),
		categoricalScore(a.RelationshipGoal, b.RelationshipGoal, compatibleRelationshipGoals),
	}

	sum := 0
	for _, s := range scaleScores {
		sum += s
	}
	for _, s := range categoricalScores {
		sum += s
	}
	score := clampScore(int(math.Round(float64(sum) / float64(len(scaleScores)+len(categoricalScores)))))

	var notes []explanation
	if strings.EqualFold(a.RelationshipGoal, b.RelationshipGoal) && a.RelationshipGoal != "" {
		notes = append(notes, explanation{"personality", "You want the same kind of relationship"})
	} else if score >= 75 {
		notes = append(notes, explanation{"personality", "Your personalities complement each other"})
	}
	return score, notes
}

// scaleScore compares two 1-10 scale values
func scaleScore(a, b int) int {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	s := 100 - 12*diff
	if s < 0 {
		return 0
	}
	return s
}

func categoricalScore(a, b string, compatible map[string]string) int {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return neutralScore
	}
	if a == b {
		return 100
	}
	if compatible[a] == b {
		return 70
	}
	return 25
}

// Love-language scoring

// LoveLanguageScore averages per-language intensity closeness; a shared top
// language earns an explanation.
func LoveLanguageScore(a, b *profile.PersonalityProfile) (int, []explanation) {
	if a == nil || b == nil {
		return neutralScore, nil
	}

	pairs := [][2]int{
		{a.LoveLanguages.WordsOfAffirmation, b.LoveLanguages.WordsOfAffirmation},
		{a.LoveLanguages.ActsOfService, b.LoveLanguages.ActsOfService},
		{a.LoveLanguages.ReceivingGifts, b.LoveLanguages.ReceivingGifts},
		{a.LoveLanguages.QualityTime, b.LoveLanguages.QualityTime},
		{a.LoveLanguages.PhysicalTouch, b.LoveLanguages.PhysicalTouch},
	}

	sum := 0
	for _, pair := range pairs {
		diff := pair[0] - pair[1]
		if diff < 0 {
			diff = -diff
		}
		s := 100 - 10*diff
		if s < 0 {
			s = 0
		}
		sum += s
	}
	score := clampScore(int(math.Round(float64(sum) / float64(len(pairs)))))

	var notes []explanation
	topA, okA := topLoveLanguage(a.LoveLanguages)
	topB, okB := topLoveLanguage(b.LoveLanguages)
	if okA && okB && topA == topB {
		notes = append(notes, explanation{
			"love_language",
			fmt.Sprintf("You both feel loved through %s", loveLanguageLabel(topA)),
		})
	}
	return score, notes
}

// topLoveLanguage picks the single highest-intensity language; ties resolve
// in declaration order, zero intensities give no top language.
func topLoveLanguage(ll profile.LoveLanguages) (string, bool) {
	entries := []struct {
		name  string
		value int
	}{
		{"words_of_affirmation", ll.WordsOfAffirmation},
		{"acts_of_service", ll.ActsOfService},
		{"receiving_gifts", ll.ReceivingGifts},
		{"quality_time", ll.QualityTime},
		{"physical_touch", ll.PhysicalTouch},
	}
	best := ""
	bestValue := 0
	for _, e := range entries {
		if e.value > bestValue {
			best = e.name
			bestValue = e.value
		}
	}
	return best, best != ""
}

func loveLanguageLabel(name string) string {
	switch name {
	case "words_of_affirmation":
		return "words of affirmation"
	case "acts_of_service":
		return "acts of service"
	case "receiving_gifts":
		return "receiving gifts"
	case "quality_time":
		return "quality time"
	case "physical_touch":
		return "physical touch"
	default:
		return name
	}
}

// Lifestyle scoring

// LifestyleScore weights children-preference compatibility double versus
// smoking and drinking.
func LifestyleScore(a, b *profile.Profile) int {
	smoking := habitScore(a.Smoking, b.Smoking)
	drinking := habitScore(a.Drinking, b.Drinking)
	children := childrenScore(a.Children, b.Children)
	return clampScore(int(math.Round(float64(smoking+drinking+2*children) / 4)))
}

// habitScore compares a never/socially/regularly habit field. The two
// extremes are a flagged mismatch.
func habitScore(a, b *string) int {
	if a == nil || b == nil {
		return neutralScore
	}
	va := strings.ToLower(strings.TrimSpace(*a))
	vb := strings.ToLower(strings.TrimSpace(*b))
	if va == "" || vb == "" {
		return neutralScore
	}
	if va == vb {
		return 100
	}
	if (va == "never" && vb == "regularly") || (va == "regularly" && vb == "never") {
		return 10
	}
	return neutralScore
}

// childrenScore compares have/want/dont_want/none stances. Want versus
// dont_want is the flagged mismatch.
func childrenScore(a, b *string) int {
	if a == nil || b == nil {
		return neutralScore
	}
	va := strings.ToLower(strings.TrimSpace(*a))
	vb := strings.ToLower(strings.TrimSpace(*b))
	if va == "" || vb == "" {
		return neutralScore
	}
	if va == vb {
		return 100
	}
	if (va == "want" && vb == "dont_want") || (va == "dont_want" && vb == "want") {
		return 10
	}
	return neutralScore
}

// Shared helpers

func tokenSet(values []string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, v := range values {
		token := strings.ToLower(strings.TrimSpace(v))
		if token != "" {
			out[token] = struct{}{}
		}
	}
	return out
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	shared := 0
	for token := range a {
		if _, ok := b[token]; ok {
			shared++
		}
	}
	union := len(a) + len(b) - shared
	if union == 0 {
		return 0
	}
	return float64(shared) / float64(union)
}

// intersection returns shared tokens in deterministic (sorted) order
func intersection(a, b map[string]struct{}) []string {
	out := make([]string, 0)
	for token := range a {
		if _, ok := b[token]; ok {
			out = append(out, token)
		}
	}
	sort.Strings(out)
	return out
}

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

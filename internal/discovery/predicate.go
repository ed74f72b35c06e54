// internal/discovery/predicate.go
// Immutable query predicates. Each named constructor returns a small value;
// And composes them without mutating anything, which keeps the final SQL
// independent of assembly order.

package discovery

import (
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/sparkd-app/sparkd-backend/internal/profile"
)

// Predicate is one composable WHERE fragment using ? bindvars.
// Repositories expand it with sqlx.In and rebind for Postgres.
type Predicate struct {
	clause string
	args   []interface{}
}

// NewPredicate wraps a raw clause
func NewPredicate(clause string, args ...interface{}) Predicate {
	return Predicate{clause: clause, args: args}
}

// IsZero reports whether the predicate contributes nothing
func (p Predicate) IsZero() bool {
	return p.clause == ""
}

// Clause returns the SQL fragment
func (p Predicate) Clause() string {
	return p.clause
}

// Args returns the bind arguments
func (p Predicate) Args() []interface{} {
	return p.args
}

// And combines predicates; zero-value predicates are skipped
func And(preds ...Predicate) Predicate {
	clauses := make([]string, 0, len(preds))
	args := make([]interface{}, 0, len(preds))
	for _, p := range preds {
		if p.IsZero() {
			continue
		}
		clauses = append(clauses, "("+p.clause+")")
		args = append(args, p.args...)
	}
	if len(clauses) == 0 {
		return Predicate{}
	}
	return Predicate{
		clause: strings.Join(clauses, " AND "),
		args:   args,
	}
}

// Or combines predicates with OR; zero-value predicates are skipped
func Or(preds ...Predicate) Predicate {
	clauses := make([]string, 0, len(preds))
	args := make([]interface{}, 0, len(preds))
	for _, p := range preds {
		if p.IsZero() {
			continue
		}
		clauses = append(clauses, "("+p.clause+")")
		args = append(args, p.args...)
	}
	if len(clauses) == 0 {
		return Predicate{}
	}
	return Predicate{
		clause: strings.Join(clauses, " OR "),
		args:   args,
	}
}

// Named predicates

// AgeBetween constrains age through a birth-date range. Absent bounds add
// nothing; min and max are inclusive.
func AgeBetween(now time.Time, minAge, maxAge *int) Predicate {
	if minAge == nil && maxAge == nil {
		return Predicate{}
	}
	preds := make([]Predicate, 0, 2)
	if minAge != nil {
		preds = append(preds, NewPredicate("birth_date <= ?", now.AddDate(-*minAge, 0, 0)))
	}
	if maxAge != nil {
		// Anyone born after this moment is still younger than maxAge+1
		preds = append(preds, NewPredicate("birth_date > ?", now.AddDate(-(*maxAge+1), 0, 0)))
	}
	return And(preds...)
}

// GenderIs matches a single gender, case-insensitively
func GenderIs(gender string) Predicate {
	g := strings.ToLower(strings.TrimSpace(gender))
	if g == "" || g == "all" || g == "any" {
		return Predicate{}
	}
	return NewPredicate("LOWER(gender) = ?", g)
}

// CityIs is the crude string-equality city constraint. It is omitted by the
// builder whenever geodistance filtering runs downstream, because a candidate
// inside the radius may live in a differently spelled city.
func CityIs(city string) Predicate {
	c := strings.ToLower(strings.TrimSpace(city))
	if c == "" {
		return Predicate{}
	}
	return NewPredicate("LOWER(city) = ?", c)
}

// NameLike matches display names by substring
func NameLike(name string) Predicate {
	n := strings.TrimSpace(name)
	if n == "" {
		return Predicate{}
	}
	return NewPredicate("display_name ILIKE ?", "%"+n+"%")
}

// ValueIn is set-membership over a single-valued column
func ValueIn(column string, values []string) Predicate {
	lowered := lowerAll(values)
	if len(lowered) == 0 {
		return Predicate{}
	}
	return NewPredicate("LOWER("+column+") IN (?)", lowered)
}

// ArrayOverlaps is contains-any over a text[] column
func ArrayOverlaps(column string, values []string) Predicate {
	lowered := lowerAll(values)
	if len(lowered) == 0 {
		return Predicate{}
	}
	return NewPredicate(column+" && ?", pq.Array(lowered))
}

// HeightBetween bounds height_cm inclusively
func HeightBetween(minCM, maxCM *int) Predicate {
	if minCM == nil && maxCM == nil {
		return Predicate{}
	}
	preds := make([]Predicate, 0, 2)
	if minCM != nil {
		preds = append(preds, NewPredicate("height_cm >= ?", *minCM))
	}
	if maxCM != nil {
		preds = append(preds, NewPredicate("height_cm <= ?", *maxCM))
	}
	return And(preds...)
}

// NotValue excludes candidates holding one specific value; NULL passes
func NotValue(column, value string) Predicate {
	return NewPredicate("("+column+" IS NULL OR LOWER("+column+") <> ?)", strings.ToLower(value))
}

// VerifiedOnly keeps verified profiles
func VerifiedOnly() Predicate {
	return NewPredicate("is_verified = TRUE")
}

// ActiveSince keeps profiles seen after the cutoff
func ActiveSince(cutoff time.Time) Predicate {
	return NewPredicate("last_active >= ?", cutoff)
}

// RealProfilesOnly excludes showcase (demo) accounts
func RealProfilesOnly() Predicate {
	return NewPredicate("is_showcase = FALSE")
}

// ShowcaseOnly keeps only showcase accounts
func ShowcaseOnly() Predicate {
	return NewPredicate("is_showcase = TRUE")
}

// ExcludeIDs drops every listed user ID
func ExcludeIDs(ids []int64) Predicate {
	if len(ids) == 0 {
		return Predicate{}
	}
	return NewPredicate("NOT (id = ANY(?))", pq.Array(ids))
}

// DealbreakerPredicates converts hard rules into AND constraints. These are
// merged after explicit filters and never loosened by them.
func DealbreakerPredicates(rules *profile.Dealbreakers) Predicate {
	if rules == nil {
		return Predicate{}
	}
	preds := make([]Predicate, 0, 3)
	if rules.MustNotSmoke {
		preds = append(preds, NotValue("smoking", "regularly"))
	}
	if rules.MustNotDrink {
		preds = append(preds, NotValue("drinking", "regularly"))
	}
	if rules.MustNotHaveChildren {
		preds = append(preds, NotValue("children", "have"))
	}
	return And(preds...)
}

// BuildCandidatePredicate layers the explicit filter spec over stored
// preferences and merges dealbreakers. Precedence per field: explicit filter
// wins, stored preference fills gaps, dealbreakers always apply.
func BuildCandidatePredicate(
	spec FilterSpec,
	requester *profile.Profile,
	excludeIDs []int64,
	distanceActive bool,
	recentCutoff time.Time,
	now time.Time,
) Predicate {
	preds := []Predicate{
		RealProfilesOnly(),
		ExcludeIDs(excludeIDs),
	}

	// Gender: explicit > stored preference
	gender := spec.Gender
	if gender == nil {
		gender = requester.PreferredGender
	}
	if gender != nil {
		preds = append(preds, GenderIs(*gender))
	}

	// Age: explicit bounds win individually over preferences
	minAge := spec.MinAge
	if minAge == nil {
		minAge = requester.PreferredMinAge
	}
	maxAge := spec.MaxAge
	if maxAge == nil {
		maxAge = requester.PreferredMaxAge
	}
	preds = append(preds, AgeBetween(now, minAge, maxAge))

	// City: skipped entirely when the distance filter will run, so radius
	// matches are not double-restricted by string equality
	if !distanceActive {
		city := spec.City
		if city == nil {
			city = requester.PreferredCity
		}
		if city != nil {
			preds = append(preds, CityIs(*city))
		}
	}

	if spec.Name != nil {
		preds = append(preds, NameLike(*spec.Name))
	}

	preds = append(preds,
		ValueIn("smoking", spec.Smoking),
		ValueIn("drinking", spec.Drinking),
		ValueIn("children", spec.Children),
		ValueIn("education", spec.Education),
		ValueIn("religion", spec.Religion),
		ValueIn("ethnicity", spec.Ethnicity),
		ArrayOverlaps("languages", spec.Languages),
		ArrayOverlaps("sports", spec.Sports),
		ArrayOverlaps("interests", spec.Interests),
		HeightBetween(spec.MinHeightCM, spec.MaxHeightCM),
	)

	if spec.VerifiedOnly {
		preds = append(preds, VerifiedOnly())
	}
	if spec.RecentlyOnline {
		preds = append(preds, ActiveSince(recentCutoff))
	}

	preds = append(preds, DealbreakerPredicates(requester.Dealbreakers.Ptr()))

	return And(preds...)
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.ToLower(strings.TrimSpace(v))
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

package discovery

import (
	"net/url"
	"testing"
)

func TestParseFilterSpecCoercesMalformedNumerics(t *testing.T) {
	values := url.Values{}
	values.Set("min_age", "abc")
	values.Set("max_age", "30")
	values.Set("max_distance", "not-a-number")
	values.Set("min_height", "")

	spec := ParseFilterSpec(values)

	if spec.MinAge != nil {
		t.Error("malformed min_age should be treated as absent")
	}
	if spec.MaxAge == nil || *spec.MaxAge != 30 {
		t.Error("valid max_age should parse")
	}
	if spec.MaxDistanceKM != nil {
		t.Error("malformed max_distance should be treated as absent")
	}
	if spec.MinHeightCM != nil {
		t.Error("empty min_height should be absent")
	}
}

func TestParseFilterSpecCommaLists(t *testing.T) {
	values := url.Values{}
	values.Set("interests", "hiking, music, ,cooking")
	values.Set("smoking", "")

	spec := ParseFilterSpec(values)

	want := []string{"hiking", "music", "cooking"}
	if len(spec.Interests) != len(want) {
		t.Fatalf("expected %d interests, got %d", len(want), len(spec.Interests))
	}
	for i, v := range want {
		if spec.Interests[i] != v {
			t.Errorf("interest %d: got %q, want %q", i, spec.Interests[i], v)
		}
	}
	if spec.Smoking != nil {
		t.Error("empty list param should be absent")
	}
}

func TestParseFilterSpecFlagsAndPaging(t *testing.T) {
	values := url.Values{}
	values.Set("verified", "true")
	values.Set("online", "0")
	values.Set("page", "2")
	values.Set("limit", "oops")

	spec := ParseFilterSpec(values)

	if !spec.VerifiedOnly {
		t.Error("verified=true should set the flag")
	}
	if spec.RecentlyOnline {
		t.Error("online=0 should leave the flag unset")
	}
	if spec.Page != 2 {
		t.Errorf("page should parse, got %d", spec.Page)
	}
	if spec.Limit != 0 {
		t.Errorf("malformed limit should fall back to 0, got %d", spec.Limit)
	}
}

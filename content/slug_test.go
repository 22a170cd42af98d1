package content_test

import (
	"testing"

	"github.com/goliatone/go-bilingual-cms/content"
	"github.com/goliatone/go-slug"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Annual Report":                     "annual-report",
		"  Annual   Report 2024!  ":         "annual-report-2024",
		"Women's Health: Q&A":               "womens-health-qa",
		"clean_water -- for all":            "clean-water-for-all",
		"  Hello, World's Best -- Event_x ": "hello-worlds-best-event-x",
		"Café Über":                         "caf-ber",
		"!!!":                               "",
		"":                                  "",
	}
	for input, want := range cases {
		if got := content.Slugify(input); got != want {
			t.Fatalf("Slugify(%q) = %q, want %q", input, got, want)
		}
		if want == "" {
			continue
		}
		if normalized, err := slug.Normalize(input); err != nil || normalized != want {
			t.Fatalf("slug.Normalize(%q) = %q, %v; Slugify should match it", input, normalized, err)
		}
	}
}

func TestSyncSlugRegeneratesOnTitleChange(t *testing.T) {
	change := content.SyncSlug("Annual Report", "Annual Report 2024", "annual-report")
	if !change.Changed || change.Slug != "annual-report-2024" {
		t.Fatalf("expected regenerated slug, got %+v", change)
	}
	if change.Replaced {
		t.Fatal("derived slug should not be reported as replaced")
	}
}

func TestSyncSlugOverwritesManualSlug(t *testing.T) {
	change := content.SyncSlug("Annual Report", "Yearly Report", "our-report")
	if change.Slug != "yearly-report" {
		t.Fatalf("expected slug to follow title, got %q", change.Slug)
	}
	if !change.Replaced {
		t.Fatal("expected manual slug overwrite to be flagged")
	}
}

func TestSyncSlugKeepsSlugWhenTitleUnchanged(t *testing.T) {
	change := content.SyncSlug("Annual Report", "Annual Report ", "custom")
	if change.Changed || change.Slug != "custom" {
		t.Fatalf("expected slug untouched, got %+v", change)
	}
	filled := content.SyncSlug("Annual Report", "Annual Report", "")
	if filled.Slug != "annual-report" || !filled.Changed {
		t.Fatalf("expected blank slug to be derived, got %+v", filled)
	}
}

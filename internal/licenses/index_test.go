package licenses

import (
	"testing"
	"time"

	"github.com/creativecommons/legal-tools-backend/pkg/db/models"
	"github.com/creativecommons/legal-tools-backend/pkg/enums"
)

func TestBuildIndexGroupsAndSorts(t *testing.T) {
	licenses := []models.License{
		{
			Category: enums.CategoryLicenses, LicenseCode: "by-sa", Version: "3.0", JurisdictionCode: "rs",
			LegalCodes: []models.LegalCode{
				{LanguageCode: "sr-Latn"},
				{LanguageCode: "sr-Cyrl"},
			},
		},
		{
			Category: enums.CategoryLicenses, LicenseCode: "by", Version: "4.0",
			LegalCodes: []models.LegalCode{
				{LanguageCode: "fr"},
				{LanguageCode: "en"},
			},
		},
		{
			Category: enums.CategoryLicenses, LicenseCode: "by", Version: "3.0",
			LegalCodes: []models.LegalCode{{LanguageCode: "en"}},
		},
		{
			Category: enums.CategoryPublicDomain, LicenseCode: "CC0", Version: "1.0",
			LegalCodes: []models.LegalCode{{LanguageCode: "en"}},
		},
	}

	sections := BuildIndex(licenses)

	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[0].Category != enums.CategoryLicenses || sections[1].Category != enums.CategoryPublicDomain {
		t.Fatalf("unexpected section order: %s, %s", sections[0].Category, sections[1].Category)
	}

	versions := sections[0].Versions
	if len(versions) != 2 || versions[0].Version != "4.0" || versions[1].Version != "3.0" {
		t.Fatalf("versions must sort newest first, got %+v", versions)
	}

	// 3.0 carries the unported group before the ported one.
	v30 := versions[1]
	if len(v30.Jurisdictions) != 2 {
		t.Fatalf("expected 2 jurisdiction groups for 3.0, got %d", len(v30.Jurisdictions))
	}
	if v30.Jurisdictions[0].JurisdictionCode != "" || v30.Jurisdictions[1].JurisdictionCode != "rs" {
		t.Fatalf("unported group must sort first, got %+v", v30.Jurisdictions)
	}

	// Languages sort within a tool's entries.
	rs := v30.Jurisdictions[1].Entries
	if len(rs) != 2 || rs[0].LanguageCode != "sr-Cyrl" || rs[1].LanguageCode != "sr-Latn" {
		t.Fatalf("unexpected language order %+v", rs)
	}

	entry := versions[0].Jurisdictions[0].Entries[0]
	if entry.LegalCodePath != "/licenses/by/4.0/legalcode" {
		t.Fatalf("unexpected legal code path %q", entry.LegalCodePath)
	}
	if entry.DeedPath != "/licenses/by/4.0/deed" {
		t.Fatalf("unexpected deed path %q", entry.DeedPath)
	}
}

func TestBuildIndexSynthesizesEnglishEntry(t *testing.T) {
	licenses := []models.License{
		{Category: enums.CategoryLicenses, LicenseCode: "by", Version: "2.0"},
	}

	sections := BuildIndex(licenses)
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	entries := sections[0].Versions[0].Jurisdictions[0].Entries
	if len(entries) != 1 || entries[0].LanguageCode != DefaultLanguageCode {
		t.Fatalf("expected synthesized english entry, got %+v", entries)
	}
}

func TestBuildIndexMarksDeprecated(t *testing.T) {
	retired := time.Date(2010, 6, 1, 0, 0, 0, 0, time.UTC)
	licenses := []models.License{
		{
			Category: enums.CategoryLicenses, LicenseCode: "sampling+", Version: "1.0",
			DeprecatedOn: &retired,
			LegalCodes:   []models.LegalCode{{LanguageCode: "en"}},
		},
	}

	sections := BuildIndex(licenses)
	entry := sections[0].Versions[0].Jurisdictions[0].Entries[0]
	if !entry.Deprecated {
		t.Fatal("expected deprecated flag on retired tool")
	}
}

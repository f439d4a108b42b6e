package licenses

import (
	"strings"
	"testing"

	"github.com/creativecommons/legal-tools-backend/pkg/enums"
)

func TestParseLegalCodeFilename(t *testing.T) {
	cases := []struct {
		filename string
		want     ParsedFilename
	}{
		{
			filename: "by_1.0.html",
			want: ParsedFilename{
				Category:     enums.CategoryLicenses,
				LicenseCode:  "by",
				Version:      "1.0",
				LanguageCode: "en",
				AboutURL:     "https://creativecommons.org/licenses/by/1.0/",
			},
		},
		{
			filename: "by_3.0_es_ast",
			want: ParsedFilename{
				Category:         enums.CategoryLicenses,
				LicenseCode:      "by",
				Version:          "3.0",
				JurisdictionCode: "es",
				LanguageCode:     "ast",
				AboutURL:         "https://creativecommons.org/licenses/by/3.0/es/",
			},
		},
		{
			filename: "by_3.0_rs_sr-Cyrl.html",
			want: ParsedFilename{
				Category:         enums.CategoryLicenses,
				LicenseCode:      "by",
				Version:          "3.0",
				JurisdictionCode: "rs",
				LanguageCode:     "sr-Cyrl",
				AboutURL:         "https://creativecommons.org/licenses/by/3.0/rs/",
			},
		},
		{
			filename: "devnations_2.0.html",
			want: ParsedFilename{
				Category:     enums.CategoryLicenses,
				LicenseCode:  "devnations",
				Version:      "2.0",
				LanguageCode: "en",
				AboutURL:     "https://creativecommons.org/licenses/devnations/2.0/",
			},
		},
		{
			filename: "LGPL_2.1.html",
			want: ParsedFilename{
				Category:     enums.CategoryLicenses,
				LicenseCode:  "LGPL",
				Version:      "2.1",
				LanguageCode: "en",
				AboutURL:     "https://creativecommons.org/licenses/LGPL/2.1/",
			},
		},
		{
			filename: "samplingplus_1.0",
			want: ParsedFilename{
				Category:     enums.CategoryLicenses,
				LicenseCode:  "sampling+",
				Version:      "1.0",
				LanguageCode: "en",
				AboutURL:     "https://creativecommons.org/licenses/sampling+/1.0/",
			},
		},
		{
			filename: "zero_1.0_fi.html",
			want: ParsedFilename{
				Category:     enums.CategoryPublicDomain,
				LicenseCode:  "CC0",
				Version:      "1.0",
				LanguageCode: "fi",
				AboutURL:     "https://creativecommons.org/publicdomain/zero/1.0/",
			},
		},
		{
			filename: "nc-samplingplus_1.0.html",
			want: ParsedFilename{
				Category:     enums.CategoryLicenses,
				LicenseCode:  "nc-sampling+",
				Version:      "1.0",
				LanguageCode: "en",
				AboutURL:     "https://creativecommons.org/licenses/nc-sampling+/1.0/",
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.filename, func(t *testing.T) {
			got, err := ParseLegalCodeFilename(tc.filename)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestParseLegalCodeFilenameErrors(t *testing.T) {
	cases := []struct {
		filename string
		wantMsg  string
	}{
		{filename: "by_3.0_es_aaa", wantMsg: "Invalid language_code="},
		{filename: "by_3.0_zz", wantMsg: "What language? "},
		{filename: "by", wantMsg: "unparseable"},
		{filename: "by_3.0_es_ast_extra", wantMsg: "unparseable"},
	}

	for _, tc := range cases {
		t.Run(tc.filename, func(t *testing.T) {
			_, err := ParseLegalCodeFilename(tc.filename)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Fatalf("error %q does not contain %q", err, tc.wantMsg)
			}
		})
	}
}

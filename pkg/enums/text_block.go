package enums

import "fmt"

// TextBlock identifies which fixed legal-text block a legal code page
// renders. The page layer maps each value to a content partial.
type TextBlock string

const (
	// TextBlockCC0 is the CC0 1.0 public domain dedication text.
	TextBlockCC0 TextBlock = "cc0_text"
	// TextBlockLicenses40 is the shared 4.0 license suite text.
	TextBlockLicenses40 TextBlock = "licenses_4.0_text"
	// TextBlockLicenses30Unported is the unported 3.0 license text.
	TextBlockLicenses30Unported TextBlock = "licenses_3.0_unported_text"
	// TextBlockCrudeHTML renders the legal code's stored HTML verbatim.
	// It is the designed last-resort branch, not an error.
	TextBlockCrudeHTML TextBlock = "crude_html_fallback"
)

var validTextBlocks = []TextBlock{
	TextBlockCC0,
	TextBlockLicenses40,
	TextBlockLicenses30Unported,
	TextBlockCrudeHTML,
}

// String implements fmt.Stringer.
func (b TextBlock) String() string {
	return string(b)
}

// IsValid reports whether the value is a known text block identifier.
func (b TextBlock) IsValid() bool {
	for _, candidate := range validTextBlocks {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseTextBlock converts raw input into TextBlock.
func ParseTextBlock(value string) (TextBlock, error) {
	for _, candidate := range validTextBlocks {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid text block %q", value)
}

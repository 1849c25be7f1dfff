package unicodedata

import "golang.org/x/text/unicode/norm"

// Form selects a Unicode normalization form for Normalize and
// IsNormalized. This has no equivalent in the teacher repo. No
// Pipeline stage or shaper in this module calls Normalize: text
// reaches segmentation and shaping exactly as given.
type Form int

const (
	FormNFC Form = iota
	FormNFD
	FormNFKC
	FormNFKD
)

func (f Form) goForm() norm.Form {
	switch f {
	case FormNFD:
		return norm.NFD
	case FormNFKC:
		return norm.NFKC
	case FormNFKD:
		return norm.NFKD
	default:
		return norm.NFC
	}
}

// Normalize rewrites text into the given normalization form.
func Normalize(text string, form Form) string {
	return form.goForm().String(text)
}

// IsNormalized reports whether text is already in the given form,
// letting callers skip a Normalize call's allocation on the
// common case of already-clean input.
func IsNormalized(text string, form Form) bool {
	return form.goForm().IsNormalString(text)
}

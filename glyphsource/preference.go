package glyphsource

import "fmt"

// Preference is an ordered allow-list of source kinds plus a disjoint
// deny-set. A kind that appears in neither is implicitly denied: the
// resolver only ever returns a kind named in Allow (or the unconditional
// outline fallback).
type Preference struct {
	Allow []SourceKind
	Deny  map[SourceKind]struct{}
}

// NewPreference validates that allow and deny are disjoint before
// constructing a Preference; the spec's invariant is enforced here
// rather than left to the resolver to discover at use time.
func NewPreference(allow []SourceKind, deny []SourceKind) (Preference, error) {
	denySet := make(map[SourceKind]struct{}, len(deny))
	for _, k := range deny {
		denySet[k] = struct{}{}
	}
	for _, k := range allow {
		if _, denied := denySet[k]; denied {
			return Preference{}, fmt.Errorf("glyphsource: %s is in both the allow-list and the deny-set", k)
		}
	}
	return Preference{Allow: append([]SourceKind(nil), allow...), Deny: denySet}, nil
}

// Denied reports whether k is in the deny-set, or absent from the
// allow-list (hence implicitly denied for allow-list iteration; it
// does not affect outline fallback).
func (p Preference) Denied(k SourceKind) bool {
	if _, ok := p.Deny[k]; ok {
		return true
	}
	for _, a := range p.Allow {
		if a == k {
			return false
		}
	}
	return true
}

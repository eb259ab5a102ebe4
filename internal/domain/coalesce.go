package domain

// CoalesceStr picks the first non-empty string. Template conversion uses it
// to layer an inline item over its catalog entry, e.g. the inline title, then
// the catalog title.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// CoalesceStrPtr resolves an optional ItemPatch text field against the item's
// current value. An explicit empty string wins, so `item update --at ""`
// clears a start time.
func CoalesceStrPtr(fallback string, ptrs ...*string) string {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}

// IntFromPtrWithDefault resolves an optional price against the current one.
// A patched price of 0 is kept; only nil leaves the price alone.
func IntFromPtrWithDefault(fallback int, ptrs ...*int) int {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}

// BoolFromPtrWithDefault resolves a template item's optional `locked` key
// against the catalog entry's premium flag.
func BoolFromPtrWithDefault(fallback bool, ptrs ...*bool) bool {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}

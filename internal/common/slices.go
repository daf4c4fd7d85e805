package common

// IsEmpty reports whether s has no elements.
func IsEmpty[S ~[]E, E any](s S) bool {
	return len(s) == 0
}

// IsSingle reports whether s has exactly one element.
func IsSingle[S ~[]E, E any](s S) bool {
	return len(s) == 1
}

// IsMultiple reports whether s has more than one element.
func IsMultiple[S ~[]E, E any](s S) bool {
	return len(s) > 1
}

// First returns the first element of s, or the zero value and false.
func First[S ~[]E, E any](s S) (E, bool) {
	var zero E
	if IsEmpty(s) {
		return zero, false
	}

	return s[0], true
}

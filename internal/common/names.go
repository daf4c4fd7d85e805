package common

import "strings"

// UnknownStr is printed for values outside a known enumeration.
const UnknownStr = "unknown"

// SplitQualified splits a fully-qualified type name such as "garage.Car" or
// "example.com/fleet.Truck" into its package part and its short name.
// A name without a dot has an empty package part.
func SplitQualified(name string) (pkg, short string) {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return "", name
	}

	return name[:i], name[i+1:]
}

// ShortName returns the part of a qualified type name after the last dot.
func ShortName(name string) string {
	_, short := SplitQualified(name)
	return short
}

// Package orderedset provides a duplicate-free, insertion-ordered container.
//
// It backs every relationship collection of the connected package, but has
// no knowledge of it and can be used on its own.
package orderedset

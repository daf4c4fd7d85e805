// Package match ranks declared names by their similarity to a name that
// could not be found, to suggest what was probably meant.
package match

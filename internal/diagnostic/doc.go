// Package diagnostic collects structured errors, warnings and notes produced
// while checking and applying connected type declarations.
//
// Every diagnostic carries a stable code (for example "forward_reference"),
// the type it concerns and, when relevant, the collection field.
package diagnostic

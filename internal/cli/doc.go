// Package cli implements the concoll command: checking and describing
// connected type declaration files.
package cli

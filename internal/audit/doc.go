// Package audit keeps a best-effort journal of profile changes as JSON
// Lines next to the profile file. Values never appear in the journal,
// only which keys changed and when.
package audit

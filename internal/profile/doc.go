// Package profile declares the user-facing settings document the totara
// CLI operates on, together with key-based access helpers for the get and
// set commands.
package profile

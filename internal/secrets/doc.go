// Package secrets provides the cryptographic operations for Totara's
// settings engine.
//
// # Encryption
//
// Field values are encrypted with NaCl secretbox under a key derived from
// the document password with PBKDF2-SHA256 (4096 iterations). A random
// 24-byte nonce is generated per call and prepended to the ciphertext, so
// encrypting the same value twice produces different output. The whole
// nonce ‖ ciphertext blob is base64-encoded for storage in a text file.
//
// Secretbox authenticates the ciphertext, so decrypting with the wrong
// password fails detectably instead of returning garbage.
//
// The password doubles as the PBKDF2 salt. Files encrypted under the same
// password therefore share a key, which keeps them portable but weakens
// resistance to an attacker who collects many such files. This is a
// deliberate trade-off for the threat model (casual at-rest disclosure,
// not targeted attack) and for on-disk format stability.
//
// # Password Hashing
//
// The password itself is never stored. A stable PBKDF2-SHA256 digest under
// a fixed domain-separation salt is persisted for verification only; it is
// never used as an encryption key.
//
// # Sessions
//
// A Session holds the password in memory for the lifetime of one settings
// document. It is never serialized. Call Clear when the document is
// discarded to drop the password early.
package secrets

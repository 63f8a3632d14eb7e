// Package auth contains the credential and token primitives of the server:
// Argon2id password hashing, HMAC-signed JWT issuance and verification, and
// bearer header parsing. It knows nothing about users or storage; see
// package services for the flows that combine them.
package auth

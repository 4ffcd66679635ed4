// Package id mints the public identifiers every API resource carries:
// projects, stages, proposals, approvers, decisions and attachment refs all
// share one shape, 32 lowercase hex characters over 16 random bytes.
package id

import (
	"crypto/rand"
	"encoding/hex"
)

func NewID32() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}

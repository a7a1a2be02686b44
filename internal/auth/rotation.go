package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
	"time"

	"github.com/primemotors/inventory-service/internal/clock"
)

const (
	rotationDateLayout = "2006-01-02"
	rotationLength     = 8
)

// RotatingSecret derives the daily edit password from a seed and the UTC calendar date.
// Any number of replicas sharing the seed compute the same value without coordination.
type RotatingSecret struct {
	seed  []byte
	clock clock.Clock
}

// NewRotatingSecret builds a generator; a nil clock means the system clock.
func NewRotatingSecret(seed string, clk clock.Clock) *RotatingSecret {
	if clk == nil {
		clk = clock.System()
	}
	return &RotatingSecret{seed: []byte(seed), clock: clk}
}

// Current returns today's edit password.
func (r *RotatingSecret) Current() string {
	return r.At(r.clock.Now())
}

// At returns the edit password for the UTC day containing t.
func (r *RotatingSecret) At(t time.Time) string {
	mac := hmac.New(sha256.New, r.seed)
	mac.Write([]byte(t.UTC().Format(rotationDateLayout)))
	digest := hex.EncodeToString(mac.Sum(nil))
	return strings.ToUpper(digest[:rotationLength])
}

// Validate reports whether provided equals today's edit password. Comparison is case-sensitive.
func (r *RotatingSecret) Validate(provided string) bool {
	return subtle.ConstantTimeCompare([]byte(provided), []byte(r.Current())) == 1
}

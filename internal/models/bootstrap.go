package models

// DefaultAdminThreshold is the number of earliest signups that are granted
// admin automatically when no explicit threshold is configured.
const DefaultAdminThreshold = 4

// AdminBootstrap decides whether a newly created user becomes an admin
// based on their signup order. The flag is computed once at creation and
// never recomputed; later changes happen only through explicit admin
// actions.
type AdminBootstrap struct {
	Threshold int
}

// NewAdminBootstrap creates a bootstrap policy with the given threshold.
// A non-positive threshold falls back to the default.
func NewAdminBootstrap(threshold int) AdminBootstrap {
	if threshold <= 0 {
		threshold = DefaultAdminThreshold
	}
	return AdminBootstrap{Threshold: threshold}
}

// ComputeIsAdmin reports whether a user with the given 1-based signup order
// is a bootstrap admin
func (b AdminBootstrap) ComputeIsAdmin(signupOrder int) bool {
	return signupOrder <= b.Threshold
}

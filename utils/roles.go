package utils

// RequireRole is the single capability check applied at the top of every
// protected operation: it returns ErrForbidden unless role is one of the
// allowed roles.
func RequireRole(role string, allowed ...string) error {
	for _, r := range allowed {
		if role == r {
			return nil
		}
	}
	return ErrForbidden
}

package auth0

import "fmt"

// CheckPermission allows the call only when required is in the granted set.
func CheckPermission(claims *Claims, required string) error {
	if claims == nil || !claims.PermissionsPresent {
		return fail(ErrPermissionsClaimMissing, nil)
	}
	if !claims.HasPermission(required) {
		return fail(ErrPermissionDenied, fmt.Errorf("required %q", required))
	}
	return nil
}

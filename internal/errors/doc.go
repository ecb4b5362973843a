// Package errors defines sentinel error values shared across Totara.
//
// Errors are organized by category: validation, authentication,
// cryptographic, and persistence errors. Callers match them with
// errors.Is:
//
//	if errors.Is(err, terrors.ErrAuthenticationFailed) {
//	    // wrong password
//	}
//
// Sentinels are wrapped with fmt.Errorf("%w: ...") at the point of
// failure so the chain keeps both the category and the detail.
package errors

// Package validator builds declarative input checks.
//
// Each exported rule constructor returns a Rule holding a Check func and the
// FieldError reported when the check fails. Apply evaluates all rules and
// aggregates the failures into Errors:
//
//	err := validator.Apply(
//		validator.RequiredString("name", req.Name),
//		validator.RequiredString("email", req.Email),
//		validator.ValidEmail("email", req.Email),
//		validator.MaxLenString("hospital", req.Hospital, 200),
//	)
//	if err != nil {
//		return err // rendered as 400 by the handler package
//	}
//
// Messages already name the field ("email is required"), so Errors.Error
// is suitable for showing to API clients as is.
package validator

// Package field validates raw textual input and models values that may be
// known, unknown or absent.
//
// A Spec is one of two closed variants:
//
//   - IntSpec: a whole number, optionally limited to a closed range
//   - StrSpec: a string drawn from a character set or an allow-list
//
// Both accept an explicit list of sentinel literals (for example "?" for
// unknown or "" for blank) which bypass the main rule and are returned
// unchanged. Validation never coerces: input either satisfies the spec or an
// *InvalidInputError naming the field and the offending value is returned.
package field

// Package marshal implements the bidirectional conversion protocol
// between native Go values and gale's dynamic values.
//
// # ToValue
//
// ToValue converts a native value into a dynamic value, picking the most
// specific applicable rule: a registered custom converter first, then the
// built-in primitive and container rules, and finally the universal
// fallback that boxes any remaining value as opaque native data. This
// fallback is how arbitrary host types become visible to scripts without
// explicit support.
//
// Numeric widths follow the runtime's representation: the runtime int is
// 32-bit, so int64 and the unsigned types are range-checked and fail with
// out_of_range rather than truncating. The one deliberate exception is
// float64, which truncates to the runtime's 32-bit float; the asymmetry
// is intentional and mirrors the runtime's numeric model.
//
// # FromValue
//
// FromValue converts a dynamic value into a requested native type,
// failing with a type_mismatch error that names both the expected native
// type and the actual dynamic type. Container extraction is element-wise
// and propagates the first failure; map extraction additionally rejects
// two distinct dynamic keys that convert to the same native key. The
// generic form is As:
//
//	n, err := marshal.As[int8](v)
//
// # Custom Converters
//
// A Converters registry holds at most one conversion per Go type in each
// direction; registration is explicit and dispatch is closed:
//
//	marshal.RegisterInto(marshal.Default, func(c color.RGBA) (value.Value, error) { ... })
//	marshal.RegisterFrom(marshal.Default, func(v value.Value) (color.RGBA, error) { ... })
//
// The package-level Default registry serves embeddings that do not need
// isolation; tests can build their own.
package marshal

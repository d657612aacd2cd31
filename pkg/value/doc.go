// Package value provides the JSON-like value model rendered by jsonview.
//
// A [Value] is a small tagged union: undefined, null, string, number,
// boolean, array or object. Objects keep their fields in insertion order
// and carry a type name, which lets the viewer tell plain objects apart
// from richer types such as dates or typed arrays:
//
//	v := value.Object(
//	    value.F("numbers", value.Array(value.Int(1), value.Int(2))),
//	    value.F("created", value.Date(time.Now())),
//	)
//	value.TypeName(v)          // "Object"
//	created, _ := v.Get("created")
//	value.TypeName(created)    // "Date"
//
// # Decoders
//
// [ParseJSON], [ParseYAML] and [ParseTOML] decode documents while keeping
// key order. [FromGo] converts arbitrary Go values by reflection, mapping
// fixed-width numeric slices to typed arrays and structs to objects named
// after their type.
//
// # Classification
//
// [Classify] returns the closed classification used by the tree builder:
// Primitive, Null, Undefined, Array, PlainObject or NamedType.
package value

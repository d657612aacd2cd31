package value

// ClassKind is the variant of a [Class].
type ClassKind int

const (
	ClassUndefined ClassKind = iota
	ClassNull
	ClassPrimitive
	ClassArray
	ClassPlainObject
	ClassNamedType
)

// Class is the result of classifying a value: a small tagged union of
// Primitive(kind), Null, Undefined, Array, PlainObject and NamedType(name).
type Class struct {
	Kind      ClassKind
	Primitive Kind   // set for ClassPrimitive
	Name      string // set for ClassNamedType
}

// Classify returns the class of v, checked in priority order: array,
// null, primitive, undefined, then the object's type name. Objects with no
// type name fall back to the generic object class.
func Classify(v Value) Class {
	switch v.kind {
	case KindArray:
		return Class{Kind: ClassArray}
	case KindNull:
		return Class{Kind: ClassNull}
	case KindString, KindNumber, KindBool:
		return Class{Kind: ClassPrimitive, Primitive: v.kind}
	case KindUndefined:
		return Class{Kind: ClassUndefined}
	}
	switch v.typeName {
	case "":
		return Class{Kind: ClassPlainObject}
	case PlainObject:
		return Class{Kind: ClassPlainObject, Name: PlainObject}
	}
	return Class{Kind: ClassNamedType, Name: v.typeName}
}

// Label returns the type label used for styling and headers.
func (c Class) Label() string {
	switch c.Kind {
	case ClassArray:
		return "array"
	case ClassNull:
		return "null"
	case ClassPrimitive:
		return c.Primitive.String()
	case ClassUndefined:
		return "undefined"
	case ClassPlainObject, ClassNamedType:
		if c.Name == "" {
			return "object"
		}
		return c.Name
	}
	return "object"
}

// TypeName returns the type label of v: "array", "null", "string",
// "number", "boolean", "undefined", "object" for objects without a type
// name, and the type name otherwise ("Object", "Date", "Float32Array").
func TypeName(v Value) string {
	return Classify(v).Label()
}

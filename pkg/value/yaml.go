package value

import (
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/jsonview/pkg/errors"
)

// maxAliasDepth bounds alias expansion so self-referencing anchors fail
// instead of recursing forever.
const maxAliasDepth = 64

// ParseYAML decodes a single YAML document. Mapping order is kept,
// aliases are expanded, and timestamps become "Date" objects. An empty
// document decodes to null.
func ParseYAML(data []byte) (Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Value{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode YAML")
	}
	if doc.Kind == 0 {
		return Null(), nil
	}
	v, err := fromYAMLNode(&doc, 0)
	if err != nil {
		return Value{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode YAML")
	}
	return v, nil
}

func fromYAMLNode(n *yaml.Node, aliasDepth int) (Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null(), nil
		}
		return fromYAMLNode(n.Content[0], aliasDepth)

	case yaml.AliasNode:
		if aliasDepth >= maxAliasDepth {
			return Value{}, errors.New(errors.ErrCodeInvalidInput, "alias %q nests too deeply (line %d)", n.Value, n.Line)
		}
		return fromYAMLNode(n.Alias, aliasDepth+1)

	case yaml.SequenceNode:
		items := make([]Value, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := fromYAMLNode(c, aliasDepth)
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
		}
		return Array(items...), nil

	case yaml.MappingNode:
		fields := make([]Field, 0, len(n.Content)/2)
		index := make(map[string]int)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, vn := n.Content[i], n.Content[i+1]
			if k.ShortTag() == "!!merge" {
				merged, err := fromYAMLNode(vn, aliasDepth)
				if err != nil {
					return Value{}, err
				}
				for _, f := range merged.Fields() {
					if _, dup := index[f.Key]; !dup {
						index[f.Key] = len(fields)
						fields = append(fields, f)
					}
				}
				continue
			}
			v, err := fromYAMLNode(vn, aliasDepth)
			if err != nil {
				return Value{}, err
			}
			if j, dup := index[k.Value]; dup {
				fields[j].Value = v
				continue
			}
			index[k.Value] = len(fields)
			fields = append(fields, Field{Key: k.Value, Value: v})
		}
		return Object(fields...), nil

	case yaml.ScalarNode:
		return fromYAMLScalar(n)
	}
	return Value{}, errors.New(errors.ErrCodeInvalidInput, "unsupported YAML node kind %d (line %d)", n.Kind, n.Line)
}

func fromYAMLScalar(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return Value{}, err
		}
		return Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return Int(i), nil
		}
		var u uint64
		if err := n.Decode(&u); err != nil {
			return Value{}, err
		}
		return Number(strconv.FormatUint(u, 10)), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return Value{}, err
		}
		return Float(f), nil
	case "!!timestamp":
		var t time.Time
		if err := n.Decode(&t); err != nil {
			return String(n.Value), nil
		}
		return Date(t), nil
	case "!!binary":
		return String(strings.TrimSpace(n.Value)), nil
	}
	return String(n.Value), nil
}

// Date returns a "Date" object whose leaf text is t in RFC 3339 form.
func Date(t time.Time) Value {
	return Named("Date").WithDisplay(t.Format(time.RFC3339Nano))
}

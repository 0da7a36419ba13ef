package value

import (
	"fmt"
	"sort"

	"fortio.org/safecast"
)

// ToAny converts the tree into plain Go values suitable for encoding/json or
// msgpack: map[string]any, []any, int64, float64, string, bool and nil.
func ToAny(n Node) any {
	switch v := n.(type) {
	case Object:
		out := make(map[string]any, len(v))
		for k, child := range v {
			out[k] = ToAny(child)
		}
		return out
	case Array:
		out := make([]any, len(v))
		for i, child := range v {
			out[i] = ToAny(child)
		}
		return out
	case Int:
		return int64(v)
	case Float:
		return float64(v)
	case String:
		return string(v)
	case Bool:
		return bool(v)
	}
	return nil
}

// FromAny is the inverse of ToAny. It also accepts the shapes decoders produce
// (every sized int and uint, float32, map[any]any with string keys).
func FromAny(x any) (Node, error) {
	switch v := x.(type) {
	case nil:
		return Null{}, nil
	case bool:
		return Bool(v), nil
	case string:
		return String(v), nil
	case int:
		return Int(v), nil
	case int8:
		return Int(v), nil
	case int16:
		return Int(v), nil
	case int32:
		return Int(v), nil
	case int64:
		return Int(v), nil
	case uint:
		return fromUint(uint64(v))
	case uint8:
		return Int(v), nil
	case uint16:
		return Int(v), nil
	case uint32:
		return Int(v), nil
	case uint64:
		return fromUint(v)
	case float32:
		return Float(v), nil
	case float64:
		return Float(v), nil
	case []any:
		arr := make(Array, len(v))
		for i, item := range v {
			child, err := FromAny(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			arr[i] = child
		}
		return arr, nil
	case map[string]any:
		obj := make(Object, len(v))
		for _, k := range sortedKeys(v) {
			child, err := FromAny(v[k])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			obj[k] = child
		}
		return obj, nil
	case map[any]any:
		obj := make(Object, len(v))
		for k, item := range v {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("object key %v (%T) is not a string", k, k)
			}
			child, err := FromAny(item)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			obj[key] = child
		}
		return obj, nil
	}
	return nil, fmt.Errorf("unsupported value type %T", x)
}

func fromUint(u uint64) (Node, error) {
	i, err := safecast.Conv[int64](u)
	if err != nil {
		return nil, fmt.Errorf("integer %d out of range: %w", u, err)
	}
	return Int(i), nil
}

// sortedKeys makes error messages deterministic.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package diagfmt

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"bong/internal/token"
	"bong/internal/value"
)

// FormatValuePretty печатает дерево значений в синтаксисе bong с отступом в два
// пробела. Ключи объектов идут по возрастанию; вывод разбирается обратно в то же дерево.
func FormatValuePretty(w io.Writer, n value.Node) error {
	var b strings.Builder
	writeNode(&b, n, 0)
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

func writeNode(b *strings.Builder, n value.Node, depth int) {
	switch v := n.(type) {
	case value.Object:
		if len(v) == 0 {
			b.WriteString("{}")
			return
		}
		b.WriteString("{\n")
		for i, k := range v.Keys() {
			if i > 0 {
				b.WriteString(",\n")
			}
			indent(b, depth+1)
			writeKey(b, k)
			b.WriteString(": ")
			writeNode(b, v[k], depth+1)
		}
		b.WriteByte('\n')
		indent(b, depth)
		b.WriteByte('}')
	case value.Array:
		if len(v) == 0 {
			b.WriteString("[]")
			return
		}
		b.WriteString("[\n")
		for i, child := range v {
			if i > 0 {
				b.WriteString(",\n")
			}
			indent(b, depth+1)
			writeNode(b, child, depth+1)
		}
		b.WriteByte('\n')
		indent(b, depth)
		b.WriteByte(']')
	case value.Int:
		b.WriteString(strconv.FormatInt(int64(v), 10))
	case value.Float:
		s := strconv.FormatFloat(float64(v), 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		b.WriteString(s)
	case value.String:
		writeQuoted(b, string(v))
	case value.Bool:
		if v {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	default:
		b.WriteString("null")
	}
}

func indent(b *strings.Builder, depth int) {
	for range depth {
		b.WriteString("  ")
	}
}

// writeKey пишет ключ без кавычек, если он читается лексером как Name.
func writeKey(b *strings.Builder, k string) {
	if isBareKey(k) {
		b.WriteString(k)
		return
	}
	writeQuoted(b, k)
}

func isBareKey(k string) bool {
	if k == "" {
		return false
	}
	if _, kw := token.LookupKeyword(k); kw {
		return false
	}
	for i := 0; i < len(k); i++ {
		c := k[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

func writeQuoted(b *strings.Builder, s string) {
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
}

// FormatValueJSON выводит дерево значений как JSON с отступами.
func FormatValueJSON(w io.Writer, n value.Node) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value.ToAny(n))
}

// FormatValueMsgpack кодирует дерево в msgpack с отсортированными ключами.
func FormatValueMsgpack(w io.Writer, n value.Node) error {
	enc := msgpack.NewEncoder(w)
	enc.SetSortMapKeys(true)
	return enc.Encode(value.ToAny(n))
}

// DecodeValueMsgpack читает дерево, записанное FormatValueMsgpack.
func DecodeValueMsgpack(r io.Reader) (value.Node, error) {
	var raw any
	if err := msgpack.NewDecoder(r).Decode(&raw); err != nil {
		return nil, err
	}
	return value.FromAny(raw)
}

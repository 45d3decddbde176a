// Package jsondoc models operator-authored JSON payloads as an editable
// tree. Unlike map-based decoding it preserves object key order and keeps
// numbers as their literal tokens, so a parse/serialize round trip
// reproduces the stored payload byte for byte (for compact input).
package jsondoc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind enumerates node types in a document tree.
type Kind int

const (
	KindNull Kind = iota
	KindObject
	KindArray
	KindString
	KindNumber
	KindBool
)

var (
	ErrSyntax        = errors.New("jsondoc: invalid json")
	ErrTrailingData  = errors.New("jsondoc: trailing data after document")
	ErrPathNotFound  = errors.New("jsondoc: path not found")
	ErrNotAScalar    = errors.New("jsondoc: node is not a scalar")
	ErrNilNode       = errors.New("jsondoc: nil node")
	ErrEmptyDocument = errors.New("jsondoc: empty document")
)

// Field is one object entry, kept in document order.
type Field struct {
	Key   string
	Value *Node
}

// Node is a single value in the tree.
type Node struct {
	kind    Kind
	fields  []Field
	items   []*Node
	str     string
	num     json.Number
	boolean bool
}

// Parse decodes data into a tree. Numbers keep their literal form.
func Parse(data []byte) (*Node, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrEmptyDocument
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()

	node, err := parseValue(decoder)
	if err != nil {
		return nil, err
	}
	if decoder.More() {
		return nil, ErrTrailingData
	}
	return node, nil
}

func parseValue(decoder *json.Decoder) (*Node, error) {
	token, err := decoder.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return parseToken(decoder, token)
}

func parseToken(decoder *json.Decoder, token json.Token) (*Node, error) {
	switch value := token.(type) {
	case json.Delim:
		switch value {
		case '{':
			return parseObject(decoder)
		case '[':
			return parseArray(decoder)
		default:
			return nil, fmt.Errorf("%w: unexpected %q", ErrSyntax, value)
		}
	case string:
		return &Node{kind: KindString, str: value}, nil
	case json.Number:
		return &Node{kind: KindNumber, num: value}, nil
	case bool:
		return &Node{kind: KindBool, boolean: value}, nil
	case nil:
		return &Node{kind: KindNull}, nil
	default:
		return nil, fmt.Errorf("%w: unexpected token %v", ErrSyntax, token)
	}
}

func parseObject(decoder *json.Decoder) (*Node, error) {
	node := &Node{kind: KindObject}
	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
		}
		key, ok := keyToken.(string)
		if !ok {
			return nil, fmt.Errorf("%w: object key %v", ErrSyntax, keyToken)
		}
		value, err := parseValue(decoder)
		if err != nil {
			return nil, err
		}
		node.fields = append(node.fields, Field{Key: key, Value: value})
	}
	// consume '}'
	if _, err := decoder.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return node, nil
}

func parseArray(decoder *json.Decoder) (*Node, error) {
	node := &Node{kind: KindArray}
	for decoder.More() {
		item, err := parseValue(decoder)
		if err != nil {
			return nil, err
		}
		node.items = append(node.items, item)
	}
	// consume ']'
	if _, err := decoder.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return node, nil
}

// Kind reports the node's type.
func (n *Node) Kind() Kind {
	if n == nil {
		return KindNull
	}
	return n.kind
}

// Fields returns object entries in document order. Nil for non-objects.
func (n *Node) Fields() []Field {
	if n == nil {
		return nil
	}
	return n.fields
}

// Items returns array entries. Nil for non-arrays.
func (n *Node) Items() []*Node {
	if n == nil {
		return nil
	}
	return n.items
}

// StringValue returns the scalar string for string nodes.
func (n *Node) StringValue() (string, bool) {
	if n == nil || n.kind != KindString {
		return "", false
	}
	return n.str, true
}

// Serialize renders the tree as compact JSON, preserving object key order
// and number literals.
func (n *Node) Serialize() ([]byte, error) {
	if n == nil {
		return nil, ErrNilNode
	}
	var buf bytes.Buffer
	if err := n.write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (n *Node) write(buf *bytes.Buffer) error {
	switch n.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(n.boolean))
	case KindNumber:
		buf.WriteString(n.num.String())
	case KindString:
		encoded, err := json.Marshal(n.str)
		if err != nil {
			return err
		}
		buf.Write(encoded)
	case KindObject:
		buf.WriteByte('{')
		for i, field := range n.fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(field.Key)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := field.Value.write(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case KindArray:
		buf.WriteByte('[')
		for i, item := range n.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.write(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	}
	return nil
}

// Walk visits every node depth first. Labels are dotted paths with array
// indexes as decimal segments ("sections.0.image"); the root label is "".
func (n *Node) Walk(fn func(label string, node *Node) error) error {
	if n == nil {
		return ErrNilNode
	}
	return n.walk("", fn)
}

func (n *Node) walk(label string, fn func(string, *Node) error) error {
	if err := fn(label, n); err != nil {
		return err
	}
	switch n.kind {
	case KindObject:
		for _, field := range n.fields {
			if err := field.Value.walk(childLabel(label, field.Key), fn); err != nil {
				return err
			}
		}
	case KindArray:
		for i, item := range n.items {
			if err := item.walk(childLabel(label, strconv.Itoa(i)), fn); err != nil {
				return err
			}
		}
	}
	return nil
}

func childLabel(parent, segment string) string {
	if parent == "" {
		return segment
	}
	return parent + "." + segment
}

// Lookup resolves a dotted path produced by Walk.
func (n *Node) Lookup(path string) (*Node, error) {
	if n == nil {
		return nil, ErrNilNode
	}
	if path == "" {
		return n, nil
	}
	current := n
	for _, segment := range strings.Split(path, ".") {
		next, err := current.child(segment)
		if err != nil {
			return nil, err
		}
		current = next
	}
	return current, nil
}

func (n *Node) child(segment string) (*Node, error) {
	switch n.kind {
	case KindObject:
		for _, field := range n.fields {
			if field.Key == segment {
				return field.Value, nil
			}
		}
	case KindArray:
		index, err := strconv.Atoi(segment)
		if err == nil && index >= 0 && index < len(n.items) {
			return n.items[index], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrPathNotFound, segment)
}

// SetString replaces the scalar at path with value. The target must be a
// string, number, bool or null node; containers cannot be overwritten.
func (n *Node) SetString(path, value string) error {
	target, err := n.Lookup(path)
	if err != nil {
		return err
	}
	switch target.kind {
	case KindObject, KindArray:
		return fmt.Errorf("%w: %q", ErrNotAScalar, path)
	}
	target.kind = KindString
	target.str = value
	target.num = ""
	target.boolean = false
	return nil
}

// imageHints are the label fragments the editor treats as image fields.
var imageHints = []string{"image", "icon", "background", "banner"}

// IsImageLabel reports whether the final segment of a dotted label names
// an image-bearing field.
func IsImageLabel(label string) bool {
	segment := label
	if idx := strings.LastIndexByte(label, '.'); idx >= 0 {
		segment = label[idx+1:]
	}
	segment = strings.ToLower(segment)
	for _, hint := range imageHints {
		if strings.Contains(segment, hint) {
			return true
		}
	}
	return false
}

// ImagePaths returns the dotted paths of every string scalar whose label
// looks like an image field, in document order.
func (n *Node) ImagePaths() []string {
	var paths []string
	_ = n.Walk(func(label string, node *Node) error {
		if node.Kind() == KindString && label != "" && IsImageLabel(label) {
			paths = append(paths, label)
		}
		return nil
	})
	return paths
}

package xmlcodec

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// EncodeError reports a value that cannot be represented as markup.
type EncodeError struct {
	Tag string
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("xmlcodec: cannot encode value for tag %q", e.Tag)
}

// DecodeError reports a malformed document.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "xmlcodec: decode: " + e.Err.Error() }

func (e *DecodeError) Unwrap() error { return e.Err }

// Encode renders v as an XML element named tag. Node children are emitted in
// insertion order; a List emits one sibling element per item, all under tag.
func Encode(tag string, v Value) ([]byte, error) {
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	if err := encodeValue(enc, tag, v); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeValue(enc *xml.Encoder, tag string, v Value) error {
	start := xml.StartElement{Name: xml.Name{Local: tag}}
	switch val := v.(type) {
	case Scalar:
		if err := enc.EncodeToken(start); err != nil {
			return err
		}
		if err := enc.EncodeToken(xml.CharData(val)); err != nil {
			return err
		}
		return enc.EncodeToken(start.End())
	case *Node:
		if err := enc.EncodeToken(start); err != nil {
			return err
		}
		var childErr error
		val.Each(func(name string, child Value) {
			if childErr == nil {
				childErr = encodeValue(enc, name, child)
			}
		})
		if childErr != nil {
			return childErr
		}
		return enc.EncodeToken(start.End())
	case List:
		for _, item := range val {
			if err := encodeValue(enc, tag, item); err != nil {
				return err
			}
		}
		return nil
	default:
		return &EncodeError{Tag: tag}
	}
}

// Decode parses an XML document and returns the root element's tag and its
// decoded value. A leaf element becomes a Scalar of its text (whitespace-only
// text decodes to an empty scalar); an
// element with children becomes a *Node keyed by child tag. When a child tag
// occurs once its entry is the decoded child itself; when it occurs more
// than once the entry is a List in document order. Callers that need list
// semantics for a possibly-singular tag must coerce the singular case.
func Decode(data []byte) (string, Value, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return "", nil, &DecodeError{Err: errors.New("no root element")}
		}
		if err != nil {
			return "", nil, &DecodeError{Err: err}
		}
		if start, ok := tok.(xml.StartElement); ok {
			v, err := decodeElement(dec, start)
			if err != nil {
				return "", nil, err
			}
			return start.Name.Local, v, nil
		}
	}
}

func decodeElement(dec *xml.Decoder, start xml.StartElement) (Value, error) {
	var text strings.Builder
	node := NewNode()
	hasChildren := false
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, &DecodeError{Err: err}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			hasChildren = true
			child, err := decodeElement(dec, t)
			if err != nil {
				return nil, err
			}
			addChild(node, t.Name.Local, child)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			if hasChildren {
				return node, nil
			}
			leaf := text.String()
			// Whitespace-only text comes from pretty-printed empty
			// elements and decodes to an empty scalar. Text with any
			// non-whitespace content is kept exactly as sent.
			if strings.TrimSpace(leaf) == "" {
				leaf = ""
			}
			return Scalar(leaf), nil
		}
	}
}

// addChild inserts a decoded child, turning the entry into a List on the
// second occurrence of a tag.
func addChild(node *Node, tag string, child Value) {
	existing, ok := node.Get(tag)
	if !ok {
		node.Set(tag, child)
		return
	}
	if l, ok := existing.(List); ok {
		node.Set(tag, append(l, child))
		return
	}
	node.Set(tag, List{existing, child})
}

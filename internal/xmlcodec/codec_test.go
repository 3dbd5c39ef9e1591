package xmlcodec

import (
	"errors"
	"strings"
	"testing"
)

// equalValue compares two values structurally, including key order for nodes.
func equalValue(a, b Value) bool {
	switch av := a.(type) {
	case Scalar:
		bv, ok := b.(Scalar)
		return ok && av == bv
	case List:
		bv, ok := b.(List)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !equalValue(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *Node:
		bv, ok := b.(*Node)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		ak, bk := av.Keys(), bv.Keys()
		for i := range ak {
			if ak[i] != bk[i] {
				return false
			}
			x, _ := av.Get(ak[i])
			y, _ := bv.Get(bk[i])
			if !equalValue(x, y) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func TestEncodeOrderPreserved(t *testing.T) {
	n := NewNode()
	n.Set("Zeta", Scalar("1"))
	n.Set("Alpha", Scalar("2"))
	n.Set("Mike", Scalar("3"))

	out, err := Encode("request", n)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	want := "<request><Zeta>1</Zeta><Alpha>2</Alpha><Mike>3</Mike></request>"
	if string(out) != want {
		t.Errorf("Encode() = %s, want %s", out, want)
	}
}

func TestEncodeNested(t *testing.T) {
	phones := NewNode()
	phones.Set("Phone", Scalar("0412345678"))
	n := NewNode()
	n.Set("Content", Scalar("hi"))
	n.Set("Phones", phones)

	out, err := Encode("request", n)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	want := "<request><Content>hi</Content><Phones><Phone>0412345678</Phone></Phones></request>"
	if string(out) != want {
		t.Errorf("Encode() = %s, want %s", out, want)
	}
}

func TestEncodeRepeatedSiblings(t *testing.T) {
	phones := NewNode()
	phones.Set("Phone", List{Scalar("0412345678"), Scalar("0487654321")})
	n := NewNode()
	n.Set("Phones", phones)

	out, err := Encode("request", n)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	want := "<request><Phones><Phone>0412345678</Phone><Phone>0487654321</Phone></Phones></request>"
	if string(out) != want {
		t.Errorf("Encode() = %s, want %s", out, want)
	}
}

func TestEncodeEscapesText(t *testing.T) {
	n := NewNode()
	n.Set("Content", Scalar("a < b & c"))

	out, err := Encode("request", n)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if !strings.Contains(string(out), "a &lt; b &amp; c") {
		t.Errorf("Encode() = %s, want escaped text", out)
	}
}

func TestEncodeNilValue(t *testing.T) {
	n := NewNode()
	n.Set("Bad", nil)

	_, err := Encode("request", n)
	var encErr *EncodeError
	if !errors.As(err, &encErr) {
		t.Fatalf("Encode() error = %v, want *EncodeError", err)
	}
	if encErr.Tag != "Bad" {
		t.Errorf("EncodeError.Tag = %q, want %q", encErr.Tag, "Bad")
	}
}

func TestDecodeSingularChild(t *testing.T) {
	tag, v, err := Decode([]byte("<a><b>1</b></a>"))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if tag != "a" {
		t.Errorf("tag = %q, want %q", tag, "a")
	}
	node, ok := v.(*Node)
	if !ok {
		t.Fatalf("value = %T, want *Node", v)
	}
	b, _ := node.Get("b")
	if s, ok := b.(Scalar); !ok || s != "1" {
		t.Errorf("b = %#v, want Scalar(1)", b)
	}
}

func TestDecodeRepeatedChildren(t *testing.T) {
	_, v, err := Decode([]byte("<a><b>1</b><b>2</b></a>"))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	node := v.(*Node)
	b, _ := node.Get("b")
	l, ok := b.(List)
	if !ok {
		t.Fatalf("b = %T, want List", b)
	}
	if len(l) != 2 || l[0] != Scalar("1") || l[1] != Scalar("2") {
		t.Errorf("b = %#v, want [1 2]", l)
	}
}

func TestDecodeEmptyLeaf(t *testing.T) {
	_, v, err := Decode([]byte("<a><b></b></a>"))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	b, _ := v.(*Node).Get("b")
	if s, ok := b.(Scalar); !ok || s != "" {
		t.Errorf("b = %#v, want empty Scalar", b)
	}
}

func TestDecodeIgnoresDeclarationAndWhitespace(t *testing.T) {
	doc := "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<response>\n  <Index>40007</Index>\n</response>\n"
	tag, v, err := Decode([]byte(doc))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if tag != "response" {
		t.Errorf("tag = %q, want %q", tag, "response")
	}
	idx, _ := v.(*Node).Get("Index")
	if s, ok := idx.(Scalar); !ok || s != "40007" {
		t.Errorf("Index = %#v, want Scalar(40007)", idx)
	}
}

func TestDecodePreservesLeafWhitespace(t *testing.T) {
	_, v, err := Decode([]byte("<a><b> hi </b><c>  </c></a>"))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	node := v.(*Node)
	if b, _ := node.Get("b"); b != Scalar(" hi ") {
		t.Errorf("b = %#v, want Scalar(\" hi \") with padding intact", b)
	}
	// Whitespace-only text is pretty-printing, not content.
	if c, _ := node.Get("c"); c != Scalar("") {
		t.Errorf("c = %#v, want empty Scalar", c)
	}
}

func TestDecodeMalformed(t *testing.T) {
	for _, doc := range []string{"", "<a><b></a>", "not xml at all <"} {
		_, _, err := Decode([]byte(doc))
		var decErr *DecodeError
		if !errors.As(err, &decErr) {
			t.Errorf("Decode(%q) error = %v, want *DecodeError", doc, err)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	inner := NewNode()
	inner.Set("Phone", Scalar("0412345678"))
	v := NewNode()
	v.Set("Index", Scalar("-1"))
	v.Set("Phones", inner)
	v.Set("Content", Scalar(" padded content "))
	v.Set("Sca", Scalar(""))

	out, err := Encode("request", v)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	tag, got, err := Decode(out)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if tag != "request" {
		t.Errorf("tag = %q, want %q", tag, "request")
	}
	if !equalValue(got, v) {
		t.Errorf("round trip mismatch: got %#v, want %#v", got, v)
	}
}

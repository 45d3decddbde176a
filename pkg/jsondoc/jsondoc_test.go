package jsondoc

import (
	"errors"
	"reflect"
	"testing"
)

func mustParse(t *testing.T, input string) *Node {
	t.Helper()
	node, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("parse %q: %v", input, err)
	}
	return node
}

func TestRoundTripIsByteIdentical(t *testing.T) {
	inputs := []string{
		`{}`,
		`[]`,
		`{"a":[1,"x",{"b":true}]}`,
		`{"title":"Freight","count":3,"ratio":0.5,"flag":false,"none":null}`,
		`{"z":1,"a":2,"m":{"y":[],"b":"keep order"}}`,
		`{"price":1.50,"big":12345678901234567890}`,
	}
	for _, input := range inputs {
		node := mustParse(t, input)
		out, err := node.Serialize()
		if err != nil {
			t.Fatalf("serialize %q: %v", input, err)
		}
		if string(out) != input {
			t.Fatalf("round trip changed document:\n in:  %s\n out: %s", input, out)
		}
	}
}

func TestParseRejectsBadInput(t *testing.T) {
	if _, err := Parse([]byte("   ")); !errors.Is(err, ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}
	if _, err := Parse([]byte(`{"a":`)); !errors.Is(err, ErrSyntax) {
		t.Fatalf("expected ErrSyntax, got %v", err)
	}
	if _, err := Parse([]byte(`{} {}`)); !errors.Is(err, ErrTrailingData) {
		t.Fatalf("expected ErrTrailingData, got %v", err)
	}
}

func TestWalkLabels(t *testing.T) {
	node := mustParse(t, `{"hero":{"items":[{"icon":"a.svg"},{"icon":"b.svg"}]}}`)

	var labels []string
	err := node.Walk(func(label string, n *Node) error {
		if n.Kind() == KindString {
			labels = append(labels, label)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	want := []string{"hero.items.0.icon", "hero.items.1.icon"}
	if !reflect.DeepEqual(labels, want) {
		t.Fatalf("labels = %v, want %v", labels, want)
	}
}

func TestLookupAndSetString(t *testing.T) {
	node := mustParse(t, `{"hero":{"background_image":"old.jpg","depth":2}}`)

	if err := node.SetString("hero.background_image", "https://cdn.test/new.jpg"); err != nil {
		t.Fatalf("set string: %v", err)
	}
	out, err := node.Serialize()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	want := `{"hero":{"background_image":"https://cdn.test/new.jpg","depth":2}}`
	if string(out) != want {
		t.Fatalf("document = %s, want %s", out, want)
	}

	if err := node.SetString("hero.missing", "x"); !errors.Is(err, ErrPathNotFound) {
		t.Fatalf("expected ErrPathNotFound, got %v", err)
	}
	if err := node.SetString("hero", "x"); !errors.Is(err, ErrNotAScalar) {
		t.Fatalf("expected ErrNotAScalar, got %v", err)
	}
}

func TestImagePaths(t *testing.T) {
	node := mustParse(t, `{"banner":"top.png","body":"text","cards":[{"icon":"c.svg","label":"x"}],"meta":{"og_image":"og.png"}}`)

	got := node.ImagePaths()
	want := []string{"banner", "cards.0.icon", "meta.og_image"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("image paths = %v, want %v", got, want)
	}

	if IsImageLabel("hero.subtitle") {
		t.Fatal("subtitle must not read as an image label")
	}
	if !IsImageLabel("hero.BackgroundImage") {
		t.Fatal("case-insensitive hint match expected")
	}
}

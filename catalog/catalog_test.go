package catalog

import "testing"

func TestLoadEmbeddedMenu(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Len() == 0 {
		t.Fatal("embedded menu is empty")
	}

	item, ok := c.Lookup("taco1")
	if !ok {
		t.Fatal("taco1 missing from embedded menu")
	}
	if item.Price <= 0 {
		t.Fatalf("taco1 price = %v", item.Price)
	}
}

func TestLookupUnknownID(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, ok := c.Lookup("nope"); ok {
		t.Fatal("unknown id should not resolve")
	}
}

func TestCategoryOrderIsAuthoredOrder(t *testing.T) {
	data := []byte(`
categories:
  - key: b
    name: B
    items:
      - {id: x, name: X, price: 1}
  - key: a
    name: A
    items:
      - {id: y, name: Y, price: 2}
`)
	c, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	cats := c.Categories()
	if len(cats) != 2 || cats[0].Key != "b" || cats[1].Key != "a" {
		t.Fatalf("category order not preserved: %+v", cats)
	}
}

func TestDuplicateIDFirstCategoryWins(t *testing.T) {
	data := []byte(`
categories:
  - key: first
    name: First
    items:
      - {id: dup, name: From First, price: 10}
  - key: second
    name: Second
    items:
      - {id: dup, name: From Second, price: 20}
`)
	c, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	item, ok := c.Lookup("dup")
	if !ok {
		t.Fatal("dup should resolve")
	}
	if item.Name != "From First" || item.Price != 10 {
		t.Fatalf("expected first occurrence to win, got %+v", item)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse([]byte("{not yaml:")); err == nil {
		t.Fatal("expected parse error")
	}
}

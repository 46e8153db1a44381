package logstore

import "testing"

func TestKeydirSetGetRemove(t *testing.T) {
	kd := newKeydir()

	if _, ok := kd.get("a"); ok {
		t.Fatal("get on empty keydir should miss")
	}

	kd.set("a", 10)
	offset, ok := kd.get("a")
	if !ok || offset != 10 {
		t.Fatalf("get(a) = (%d, %v), want (10, true)", offset, ok)
	}

	kd.set("a", 40)
	offset, ok = kd.get("a")
	if !ok || offset != 40 {
		t.Fatalf("overwritten get(a) = (%d, %v), want (40, true)", offset, ok)
	}

	kd.remove("a")
	if _, ok := kd.get("a"); ok {
		t.Fatal("get after remove should miss")
	}

	if kd.len() != 0 {
		t.Fatalf("len() = %d, want 0", kd.len())
	}
}

func TestKeydirKeys(t *testing.T) {
	kd := newKeydir()
	kd.set("a", 0)
	kd.set("b", 10)
	kd.set("c", 20)

	keys := kd.keys()
	if len(keys) != 3 {
		t.Fatalf("keys() returned %d keys, want 3", len(keys))
	}

	seen := map[string]bool{}
	for _, k := range keys {
		seen[k] = true
	}
	for _, want := range []string{"a", "b", "c"} {
		if !seen[want] {
			t.Errorf("keys() missing %q", want)
		}
	}
}

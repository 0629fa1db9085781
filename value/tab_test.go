package value

import (
	"testing"
)

func TestTab_SetGet(t *testing.T) {
	tab := NewTab()
	tab.Set(IntVal(1), SymVal("one"))
	tab.Set(SymVal("k"), IntVal(2))
	tab.Set(BoolVal(true), Nil)

	if tab.Len() != 3 {
		t.Fatalf("Len = %d, want 3", tab.Len())
	}

	if v, ok := tab.Get(IntVal(1)); !ok || !Equal(v, SymVal("one")) {
		t.Errorf("Get(1) = %v, %v", v, ok)
	}
	if v, ok := tab.Get(SymVal("k")); !ok || !Equal(v, IntVal(2)) {
		t.Errorf("Get(k) = %v, %v", v, ok)
	}
	if _, ok := tab.Get(IntVal(2)); ok {
		t.Error("Get of missing key should report false")
	}

	// Int and float keys are distinct even with the same numeric value.
	tab.Set(FloatVal(1), SymVal("flo-one"))
	if v, _ := tab.Get(IntVal(1)); !Equal(v, SymVal("one")) {
		t.Error("float key clobbered int key")
	}

	// Replacement keeps length stable.
	tab.Set(IntVal(1), SymVal("uno"))
	if tab.Len() != 4 {
		t.Errorf("Len after replace = %d, want 4", tab.Len())
	}
	if v, _ := tab.Get(IntVal(1)); !Equal(v, SymVal("uno")) {
		t.Error("replacement did not take")
	}
}

func TestTab_HeapKeyIdentity(t *testing.T) {
	tab := NewTab()
	a1 := NewArr(IntVal(1))
	a2 := NewArr(IntVal(1))

	tab.Set(ArrVal(a1), IntVal(10))
	tab.Set(ArrVal(a2), IntVal(20))

	if tab.Len() != 2 {
		t.Fatalf("structurally equal arrays should be distinct keys, Len = %d", tab.Len())
	}
	if v, _ := tab.Get(ArrVal(a1)); !Equal(v, IntVal(10)) {
		t.Error("identity lookup failed")
	}
}

func TestTab_Delete(t *testing.T) {
	tab := NewTabPairs(IntVal(1), SymVal("a"), IntVal(2), SymVal("b"), IntVal(3), SymVal("c"))

	if !tab.Delete(IntVal(2)) {
		t.Fatal("Delete of present key should report true")
	}
	if tab.Delete(IntVal(2)) {
		t.Fatal("Delete of absent key should report false")
	}
	if tab.Len() != 2 {
		t.Fatalf("Len = %d, want 2", tab.Len())
	}
	if v, ok := tab.Get(IntVal(3)); !ok || !Equal(v, SymVal("c")) {
		t.Error("surviving entry lost after delete")
	}
}

func TestTab_Each(t *testing.T) {
	tab := NewTabPairs(IntVal(1), IntVal(10), IntVal(2), IntVal(20))

	var sum int32
	tab.Each(func(k, v Value) bool {
		i, _ := v.Int()
		sum += i
		return true
	})
	if sum != 30 {
		t.Errorf("sum = %d, want 30", sum)
	}

	count := 0
	tab.Each(func(k, v Value) bool {
		count++
		return false
	})
	if count != 1 {
		t.Errorf("early stop visited %d entries", count)
	}
}

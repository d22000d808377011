package runtime

import (
	"reflect"
	"testing"
)

func TestEnvironmentGetReturnsCopy(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("xs", QExpr(Long(1), Long(2)))

	got := env.Get("xs").(*QExprValue)
	got.Add(Long(3))

	again := env.Get("xs")
	if !Equal(again, QExpr(Long(1), Long(2))) {
		t.Fatalf("mutating a fetched value leaked into the scope: %s", Render(again))
	}
}

func TestEnvironmentUnbound(t *testing.T) {
	env := NewEnvironment(NewEnvironment(nil))
	v := env.Get("missing")
	errVal, ok := v.(*ErrorValue)
	if !ok || errVal.Code != UnboundSymbol {
		t.Fatalf("expected UnboundSymbol, got %s", Render(v))
	}
}

func TestEnvironmentParentLookupAndShadowing(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("a", Long(1))
	local := NewEnvironment(global)

	if !Equal(local.Get("a"), Long(1)) {
		t.Fatalf("expected lookup through parent")
	}
	local.Define("a", Long(5))
	if !Equal(local.Get("a"), Long(5)) || !Equal(global.Get("a"), Long(1)) {
		t.Fatalf("local define must shadow without touching parent")
	}
}

func TestEnvironmentDefineGlobalWalksToRoot(t *testing.T) {
	global := NewEnvironment(nil)
	middle := NewEnvironment(global)
	inner := NewEnvironment(middle)

	inner.DefineGlobal("g", Long(7))
	if _, ok := inner.values["g"]; ok {
		t.Fatalf("global define leaked into inner scope")
	}
	if !Equal(global.Get("g"), Long(7)) {
		t.Fatalf("expected binding in root scope")
	}
}

func TestEnvironmentKeysKeepDefinitionOrder(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("b", Long(1))
	env.Define("a", Long(2))
	env.Define("b", Long(3))

	if got, want := env.Keys(), []string{"b", "a"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("keys: want %v, got %v", want, got)
	}
	if !Equal(env.Get("b"), Long(3)) {
		t.Fatalf("last write must win")
	}
}

func TestEnvironmentCloneSharesParentOnly(t *testing.T) {
	global := NewEnvironment(nil)
	env := NewEnvironment(global)
	env.Define("xs", QExpr(Long(1)))

	clone := env.Clone()
	if clone.Parent() != global {
		t.Fatalf("clone must keep the same parent reference")
	}
	env.Destroy()
	if !Equal(clone.Get("xs"), QExpr(Long(1))) {
		t.Fatalf("clone must own independent bindings")
	}
}

func TestEnvironmentSetParentRejectsCycle(t *testing.T) {
	a := NewEnvironment(nil)
	b := NewEnvironment(a)
	if err := a.SetParent(b); err == nil {
		t.Fatalf("expected cycle to be rejected")
	}
	if err := a.SetParent(a); err == nil {
		t.Fatalf("expected self-parent to be rejected")
	}
	if a.Parent() != nil {
		t.Fatalf("rejected link must leave parent unchanged")
	}
	c := NewEnvironment(nil)
	if err := c.SetParent(b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Root() != a {
		t.Fatalf("root should be a")
	}
}

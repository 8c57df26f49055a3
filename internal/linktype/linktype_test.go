package linktype

import (
	"errors"
	"strings"
	"testing"
)

func noopConstruct(map[string]string) (string, error) { return "", nil }

func TestRegister_OverwriteReplacesWholesale(t *testing.T) {
	r := New()
	r.Register("file", []ComponentDecl{{Key: "path", Arg: "path", Required: true}}, noopConstruct)
	r.Register("file", []ComponentDecl{{Key: "url", Arg: "url"}}, noopConstruct)

	def, ok := r.Lookup("file")
	if !ok {
		t.Fatal("file not registered")
	}
	if len(def.Components) != 1 || def.Components[0].Key != "url" {
		t.Errorf("components = %+v, want the replacement set only", def.Components)
	}
	if _, ok := def.Component("path"); ok {
		t.Error("prior declaration set must be gone")
	}
}

func TestRegistry_NamedHandlers(t *testing.T) {
	r := New()
	r.RegisterConstructor("MakeFileLink", noopConstruct)
	if _, ok := r.Constructor("MakeFileLink"); !ok {
		t.Error("constructor lookup failed")
	}
	if _, ok := r.Constructor("Missing"); ok {
		t.Error("unexpected constructor")
	}

	defer func() {
		if recover() == nil {
			t.Error("duplicate registration should panic")
		}
	}()
	r.RegisterConstructor("MakeFileLink", noopConstruct)
}

func TestEffectiveValidator_FallsBackToLegacy(t *testing.T) {
	legacy := func(string, string, string) error { return errors.New("legacy") }
	semantic := func(string, string, string) error { return errors.New("semantic") }

	d := ComponentDecl{Validate: legacy}
	if err := d.EffectiveValidator()("", "", ""); err == nil || err.Error() != "legacy" {
		t.Errorf("fallback = %v", err)
	}

	d.ValidateSemantic = semantic
	if err := d.EffectiveValidator()("", "", ""); err == nil || err.Error() != "semantic" {
		t.Errorf("semantic = %v", err)
	}

	var empty ComponentDecl
	if empty.EffectiveValidator() != nil {
		t.Error("no validators should resolve to nil")
	}
}

func TestCheckInteractions_RequiredMissing(t *testing.T) {
	decls := []ComponentDecl{
		{Key: "path", Arg: "arg-path", Required: true},
		{Key: "search", Arg: "arg-search"},
	}

	_, err := CheckInteractions("t", map[string]string{"arg-search": "x"}, decls)
	var ie *InteractionError
	if !errors.As(err, &ie) {
		t.Fatalf("err = %v", err)
	}
	if ie.Key != "path" || ie.Arg != "arg-path" {
		t.Errorf("error names %q/%q, want path/arg-path", ie.Key, ie.Arg)
	}
	if !strings.Contains(ie.Error(), ":path") || !strings.Contains(ie.Error(), "arg-path") {
		t.Errorf("message should name component and argument: %q", ie.Error())
	}
}

func TestCheckInteractions_ShadowWarningIsSoft(t *testing.T) {
	decls := []ComponentDecl{
		{Key: "search", Arg: "search", ShadowedBy: []string{"lines"}},
		{Key: "lines", Arg: "lines"},
	}

	warnings, err := CheckInteractions("t", map[string]string{"search": "a", "lines": "1-2"}, decls)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("warnings = %d, want 1", len(warnings))
	}
	if warnings[0].Key != "search" || !strings.Contains(warnings[0].Message, "inert") {
		t.Errorf("warning = %+v", warnings[0])
	}
}

func TestCheckInteractions_RequiresRelation(t *testing.T) {
	decls := []ComponentDecl{
		{Key: "member", Arg: "member", Requires: []string{"path"}},
		{Key: "path", Arg: "path"},
	}

	if _, err := CheckInteractions("t", map[string]string{"member": "f"}, decls); err == nil {
		t.Error("unmet requires should be fatal")
	}
	if _, err := CheckInteractions("t", map[string]string{"member": "f", "path": "p"}, decls); err != nil {
		t.Errorf("met requires should pass: %v", err)
	}
}

func TestCheckInteractions_ConflictIsAsymmetrySafe(t *testing.T) {
	// A lists B in conflicts, B does not list A; presenting both still raises.
	decls := []ComponentDecl{
		{Key: "a", Arg: "arg-a", Conflicts: []string{"b"}},
		{Key: "b", Arg: "arg-b"},
	}

	_, err := CheckInteractions("t", map[string]string{"arg-a": "1", "arg-b": "2"}, decls)
	var ie *InteractionError
	if !errors.As(err, &ie) {
		t.Fatalf("err = %v", err)
	}
	if ie.Arg != "arg-a" || ie.OtherArg != "arg-b" {
		t.Errorf("conflict should name both arguments: %+v", ie)
	}
}

func TestCheckInteractions_WarningsPreservedBeforeFatal(t *testing.T) {
	decls := []ComponentDecl{
		{Key: "search", Arg: "search", ShadowedBy: []string{"lines"}},
		{Key: "lines", Arg: "lines"},
		{Key: "member", Arg: "member", Requires: []string{"path"}},
		{Key: "path", Arg: "path"},
	}

	present := map[string]string{"search": "a", "lines": "1-2", "member": "f"}
	warnings, err := CheckInteractions("t", present, decls)
	if err == nil {
		t.Fatal("expected requires failure")
	}
	if len(warnings) != 1 {
		t.Errorf("warnings before fatal = %d, want 1", len(warnings))
	}
}

func TestCheckInteractions_DanglingRequiresIsLazyFailure(t *testing.T) {
	// The referenced key does not exist in the declaration set at all;
	// that is a configuration error surfaced now, not at registration.
	decls := []ComponentDecl{
		{Key: "a", Arg: "a", Requires: []string{"ghost"}},
	}
	if _, err := CheckInteractions("t", map[string]string{"a": "1"}, decls); err == nil {
		t.Error("dangling requires reference should fail at validation time")
	}
}

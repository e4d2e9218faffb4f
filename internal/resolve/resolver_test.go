package resolve

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/squintql/squint/internal/schema"
)

// bookModel builds the schema used throughout: Book with leaf isbn, number
// pages, analyzed title, and embedded author (analyzed name, date born).
func bookModel() *schema.Schema {
	return &schema.Schema{
		Entities: map[string]*schema.EntityDefinition{
			"Book": {Properties: map[string]*schema.PropertyDefinition{
				"isbn":  {Type: schema.PropertyTypeString},
				"pages": {Type: schema.PropertyTypeNumber},
				"title": {Type: schema.PropertyTypeString, Analyzed: true},
				"author": {Type: schema.PropertyTypeEmbedded, Properties: map[string]*schema.PropertyDefinition{
					"name": {Type: schema.PropertyTypeString, Analyzed: true},
					"born": {Type: schema.PropertyTypeDate},
				}},
			}},
			"Magazine": {Properties: map[string]*schema.PropertyDefinition{
				"issue": {Type: schema.PropertyTypeNumber},
			}},
		},
	}
}

func TestRegisterEntityAlias(t *testing.T) {
	r := New(bookModel())

	if err := r.RegisterEntityAlias("b", "Book"); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if !r.IsEntityAlias("b") {
		t.Error("expected 'b' to be an entity alias")
	}
	if got := r.TargetEntity(); got != "Book" {
		t.Errorf("target entity = %q, want Book", got)
	}

	// Identical registration is an idempotent no-op; the duplicate check
	// compares type names case-insensitively.
	if err := r.RegisterEntityAlias("b", "Book"); err != nil {
		t.Errorf("identical registration failed: %v", err)
	}
	if err := r.RegisterEntityAlias("b", "BOOK"); err != nil {
		t.Errorf("case-insensitive identical registration failed: %v", err)
	}
}

func TestRegisterEntityAlias_Conflict(t *testing.T) {
	r := New(bookModel())
	if err := r.RegisterEntityAlias("b", "Book"); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	err := r.RegisterEntityAlias("b", "Magazine")
	var conflict *ConflictingAliasError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictingAliasError, got %v", err)
	}
	if conflict.Alias != "b" || conflict.Bound != "Book" || conflict.Requested != "Magazine" {
		t.Errorf("unexpected conflict fields: %+v", conflict)
	}
	if !strings.Contains(err.Error(), "'b'") {
		t.Errorf("error should name the alias: %s", err)
	}
}

func TestRegisterEntityAlias_UnknownEntity(t *testing.T) {
	r := New(bookModel())
	err := r.RegisterEntityAlias("n", "Newspaper")
	var unknown *UnknownEntityError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownEntityError, got %v", err)
	}
	if unknown.Entity != "Newspaper" {
		t.Errorf("error should carry the entity name, got %q", unknown.Entity)
	}

	// Entity type names are looked up case-sensitively.
	if err := r.RegisterEntityAlias("b", "book"); err == nil {
		t.Error("expected lowercase 'book' to be unknown")
	}
}

func TestRegisterEntityAlias_MultipleTargets(t *testing.T) {
	r := New(bookModel())
	if err := r.RegisterEntityAlias("b", "Book"); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	// A second distinct entity type is rejected under any alias.
	err := r.RegisterEntityAlias("m", "Magazine")
	var multi *MultipleTargetTypesError
	if !errors.As(err, &multi) {
		t.Fatalf("expected MultipleTargetTypesError, got %v", err)
	}
	if multi.Current != "Book" || multi.Requested != "Magazine" {
		t.Errorf("unexpected error fields: %+v", multi)
	}

	// A second alias for the same type is fine.
	if err := r.RegisterEntityAlias("bk", "Book"); err != nil {
		t.Errorf("second alias for target type failed: %v", err)
	}
}

func TestScopeTransitions(t *testing.T) {
	r := New(bookModel())

	if r.Status() != StatusNone {
		t.Fatalf("initial status = %v, want none", r.Status())
	}

	r.PushFromScope("b")
	if r.Status() != StatusDefiningFrom || r.CurrentAlias() != "b" {
		t.Errorf("after from push: status=%v alias=%q", r.Status(), r.CurrentAlias())
	}
	r.PopScope()
	if r.Status() != StatusNone || r.CurrentAlias() != "" {
		t.Errorf("after pop: status=%v alias=%q", r.Status(), r.CurrentAlias())
	}

	r.PushSelectScope()
	if r.Status() != StatusDefiningSelect {
		t.Errorf("after select push: status=%v", r.Status())
	}
	r.PopScope()
	if r.Status() != StatusNone {
		t.Errorf("after pop: status=%v", r.Status())
	}
}

func TestResolveQualifiedRoot(t *testing.T) {
	r := New(bookModel())
	if err := r.RegisterEntityAlias("b", "Book"); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	ref, err := r.ResolveQualifiedRoot("b")
	if err != nil {
		t.Fatalf("resolution failed: %v", err)
	}
	if !ref.Root {
		t.Error("root reference should be flagged Root")
	}
	indexed, ok := ref.Type.(*IndexedEntity)
	if !ok {
		t.Fatalf("expected IndexedEntity descriptor, got %T", ref.Type)
	}
	if indexed.IndexedEntity() != "Book" {
		t.Errorf("indexed entity = %q, want Book", indexed.IndexedEntity())
	}

	if _, err := r.ResolveQualifiedRoot("z"); err != nil {
		var unknown *UnknownAliasError
		if !errors.As(err, &unknown) {
			t.Fatalf("expected UnknownAliasError, got %v", err)
		}
	} else {
		t.Error("expected error for unregistered alias")
	}
}

func TestResolveUnqualifiedRoot_UnknownAlias(t *testing.T) {
	r := New(bookModel())
	_, err := r.ResolveUnqualifiedRoot("nope")
	var unknown *UnknownAliasError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownAliasError, got %v", err)
	}
	if unknown.Alias != "nope" {
		t.Errorf("error should carry the alias, got %q", unknown.Alias)
	}
}

func TestResolveUnqualifiedProperty(t *testing.T) {
	r := New(bookModel())
	if err := r.RegisterEntityAlias("b", "Book"); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	// A bare property resolves against the single target type.
	ref, err := r.ResolveUnqualifiedProperty("isbn")
	if err != nil {
		t.Fatalf("resolution failed: %v", err)
	}
	if _, ok := ref.Type.(LeafProperty); !ok {
		t.Errorf("expected LeafProperty descriptor, got %T", ref.Type)
	}
	if ref.Root {
		t.Error("property reference must not be flagged Root")
	}

	// An entity alias wins over property interpretation.
	ref, err = r.ResolveUnqualifiedProperty("b")
	if err != nil {
		t.Fatalf("resolution failed: %v", err)
	}
	if _, ok := ref.Type.(*IndexedEntity); !ok {
		t.Errorf("expected IndexedEntity descriptor, got %T", ref.Type)
	}
}

func TestResolveUnqualifiedProperty_NoTarget(t *testing.T) {
	r := New(bookModel())
	_, err := r.ResolveUnqualifiedProperty("isbn")
	var unknown *UnknownAliasError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownAliasError with no target registered, got %v", err)
	}
}

func TestNoSuchProperty(t *testing.T) {
	r := New(bookModel())
	if err := r.RegisterEntityAlias("b", "Book"); err != nil {
		t.Fatalf("registration failed: %v", err)
	}
	root, err := r.ResolveQualifiedRoot("b")
	if err != nil {
		t.Fatalf("root resolution failed: %v", err)
	}
	path := NewPropertyPath(root)

	// Missing property fails at first reference, as an intermediary...
	_, err = r.ResolveIntermediary(path, "publisher")
	var noSuch *NoSuchPropertyError
	if !errors.As(err, &noSuch) {
		t.Fatalf("expected NoSuchPropertyError, got %v", err)
	}
	if noSuch.Property != "publisher" {
		t.Errorf("error should carry the property name, got %q", noSuch.Property)
	}

	// ...and as a terminus.
	if _, err := r.ResolveTerminus(path, "publisher"); err == nil {
		t.Error("expected terminus resolution to fail")
	}
}

// The concrete walk: Book aliased b, then select-scope resolution of b,
// b.isbn, b.author, and b.author.name.
func TestSelectScopeWalk(t *testing.T) {
	r := New(bookModel())
	if err := r.RegisterEntityAlias("b", "Book"); err != nil {
		t.Fatalf("registration failed: %v", err)
	}
	r.PushFromScope("b")
	r.PopScope()
	r.PushSelectScope()
	defer r.PopScope()

	root, err := r.ResolveUnqualifiedRoot("b")
	if err != nil {
		t.Fatalf("root resolution failed: %v", err)
	}
	if _, ok := root.Type.(*IndexedEntity); !ok || !root.Root {
		t.Fatalf("expected Root IndexedEntity, got %T Root=%v", root.Type, root.Root)
	}

	// b.isbn resolves to a leaf.
	path := NewPropertyPath(root)
	leaf, err := r.ResolveTerminus(path, "isbn")
	if err != nil {
		t.Fatalf("terminus resolution failed: %v", err)
	}
	if _, ok := leaf.Type.(LeafProperty); !ok {
		t.Errorf("expected LeafProperty for isbn, got %T", leaf.Type)
	}
	path.Append(leaf)
	if err := r.PathCompleted(path); err != nil {
		t.Errorf("leaf projection rejected: %v", err)
	}

	// b.author alone cannot be projected.
	path = NewPropertyPath(root)
	emb, err := r.ResolveTerminus(path, "author")
	if err != nil {
		t.Fatalf("terminus resolution failed: %v", err)
	}
	path.Append(emb)
	err = r.PathCompleted(path)
	var projErr *EmbeddedProjectionError
	if !errors.As(err, &projErr) {
		t.Fatalf("expected EmbeddedProjectionError, got %v", err)
	}
	if projErr.Path != "author" {
		t.Errorf("error path = %q, want author", projErr.Path)
	}

	// b.author.name succeeds despite being analyzed: scope is select.
	path = NewPropertyPath(root)
	mid, err := r.ResolveIntermediary(path, "author")
	if err != nil {
		t.Fatalf("intermediary resolution failed: %v", err)
	}
	path.Append(mid)
	name, err := r.ResolveTerminus(path, "name")
	if err != nil {
		t.Fatalf("terminus resolution failed: %v", err)
	}
	if _, ok := name.Type.(LeafProperty); !ok {
		t.Errorf("expected LeafProperty for name, got %T", name.Type)
	}
	path.Append(name)
	if err := r.PathCompleted(path); err != nil {
		t.Errorf("leaf projection rejected: %v", err)
	}
}

func TestAnalyzedPropertyRestriction(t *testing.T) {
	r := New(bookModel())
	if err := r.RegisterEntityAlias("b", "Book"); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	root, err := r.ResolveQualifiedRoot("b")
	if err != nil {
		t.Fatalf("root resolution failed: %v", err)
	}

	// Outside select scope, an analyzed leaf cannot be referenced.
	path := NewPropertyPath(root)
	_, err = r.ResolveTerminus(path, "title")
	var analyzed *AnalyzedPropertyError
	if !errors.As(err, &analyzed) {
		t.Fatalf("expected AnalyzedPropertyError, got %v", err)
	}
	if analyzed.Entity != "Book" || analyzed.Property != "title" {
		t.Errorf("unexpected error fields: %+v", analyzed)
	}

	// The identical reference inside select scope succeeds.
	r.PushSelectScope()
	defer r.PopScope()
	ref, err := r.ResolveTerminus(NewPropertyPath(root), "title")
	if err != nil {
		t.Fatalf("select-scope resolution failed: %v", err)
	}
	if _, ok := ref.Type.(LeafProperty); !ok {
		t.Errorf("expected LeafProperty, got %T", ref.Type)
	}
}

func TestEmbeddedIntermediaryIsNeverLeaf(t *testing.T) {
	r := New(bookModel())
	if err := r.RegisterEntityAlias("b", "Book"); err != nil {
		t.Fatalf("registration failed: %v", err)
	}
	root, err := r.ResolveQualifiedRoot("b")
	if err != nil {
		t.Fatalf("root resolution failed: %v", err)
	}

	path := NewPropertyPath(root)
	mid, err := r.ResolveIntermediary(path, "author")
	if err != nil {
		t.Fatalf("intermediary resolution failed: %v", err)
	}
	emb, ok := mid.Type.(*EmbeddedEntity)
	if !ok {
		t.Fatalf("expected EmbeddedEntity descriptor, got %T", mid.Type)
	}
	if got := emb.Path(); !reflect.DeepEqual(got, []string{"author"}) {
		t.Errorf("embedded path = %v, want [author]", got)
	}
	if emb.IndexedEntity() != "Book" {
		t.Errorf("indexed entity = %q, want Book", emb.IndexedEntity())
	}
}

func TestJoinAlias(t *testing.T) {
	r := New(bookModel())
	if err := r.RegisterEntityAlias("b", "Book"); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	// join b.author a
	r.PushFromScope("a")
	root, err := r.ResolveUnqualifiedRoot("b")
	if err != nil {
		t.Fatalf("root resolution failed: %v", err)
	}
	path := NewPropertyPath(root)
	author, err := r.ResolveTerminus(path, "author")
	if err != nil {
		t.Fatalf("terminus resolution failed: %v", err)
	}
	path.Append(author)
	r.RegisterJoinAlias("a", path)
	r.PopScope()

	// a now resolves as a root over the embedded author.
	r.PushSelectScope()
	defer r.PopScope()
	aRoot, err := r.ResolveUnqualifiedRoot("a")
	if err != nil {
		t.Fatalf("join alias root resolution failed: %v", err)
	}
	if !aRoot.Root {
		t.Error("join alias root should be flagged Root")
	}
	emb, ok := aRoot.Type.(*EmbeddedEntity)
	if !ok {
		t.Fatalf("expected EmbeddedEntity descriptor, got %T", aRoot.Type)
	}
	if !reflect.DeepEqual(emb.Path(), []string{"author"}) {
		t.Errorf("join alias path = %v, want [author]", emb.Path())
	}

	// a.name resolves through the alias and expands physically.
	aPath := NewPropertyPath(aRoot)
	name, err := r.ResolveTerminus(aPath, "name")
	if err != nil {
		t.Fatalf("terminus through join alias failed: %v", err)
	}
	aPath.Append(name)
	physical, err := r.PhysicalPath(aPath)
	if err != nil {
		t.Fatalf("physical path failed: %v", err)
	}
	if !reflect.DeepEqual(physical, []string{"author", "name"}) {
		t.Errorf("physical path = %v, want [author name]", physical)
	}
}

func TestJoinAlias_EmptyPathNeverStored(t *testing.T) {
	r := New(bookModel())
	if err := r.RegisterEntityAlias("b", "Book"); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	r.RegisterJoinAlias("a", NewPropertyPath())
	r.RegisterJoinAlias("a", nil)

	_, err := r.ResolveUnqualifiedRoot("a")
	var unknown *UnknownAliasError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownAliasError after empty-path registration, got %v", err)
	}
}

func TestJoinAlias_FirstBindingWins(t *testing.T) {
	r := New(bookModel())
	if err := r.RegisterEntityAlias("b", "Book"); err != nil {
		t.Fatalf("registration failed: %v", err)
	}
	root, err := r.ResolveQualifiedRoot("b")
	if err != nil {
		t.Fatalf("root resolution failed: %v", err)
	}

	first := NewPropertyPath(root)
	author, err := r.ResolveTerminus(first, "author")
	if err != nil {
		t.Fatalf("terminus resolution failed: %v", err)
	}
	first.Append(author)
	r.RegisterJoinAlias("a", first)

	// Rebinding is a silent no-op.
	second := NewPropertyPath(root)
	isbn, err := r.ResolveTerminus(second, "isbn")
	if err != nil {
		t.Fatalf("terminus resolution failed: %v", err)
	}
	second.Append(isbn)
	r.RegisterJoinAlias("a", second)

	aRoot, err := r.ResolveUnqualifiedRoot("a")
	if err != nil {
		t.Fatalf("join alias resolution failed: %v", err)
	}
	emb, ok := aRoot.Type.(*EmbeddedEntity)
	if !ok {
		t.Fatalf("expected EmbeddedEntity descriptor, got %T", aRoot.Type)
	}
	if !reflect.DeepEqual(emb.Path(), []string{"author"}) {
		t.Errorf("join alias kept %v, want the first binding [author]", emb.Path())
	}
}

func TestNotSupportedOperations(t *testing.T) {
	r := New(bookModel())

	_, err := r.ResolveIndexOperation("tags", "0")
	var notSupported *NotSupportedError
	if !errors.As(err, &notSupported) {
		t.Fatalf("expected NotSupportedError, got %v", err)
	}
	if !strings.Contains(err.Error(), "tags[0]") {
		t.Errorf("error should name the subscripted property: %s", err)
	}

	_, err = r.ResolveUnqualifiedPropertySource("author")
	if !errors.As(err, &notSupported) {
		t.Fatalf("expected NotSupportedError, got %v", err)
	}
	if !strings.Contains(err.Error(), "author") {
		t.Errorf("error should name the property: %s", err)
	}
}

func TestPropertyPathNames(t *testing.T) {
	model := bookModel()
	r := New(model)
	if err := r.RegisterEntityAlias("b", "Book"); err != nil {
		t.Fatalf("registration failed: %v", err)
	}
	root, err := r.ResolveQualifiedRoot("b")
	if err != nil {
		t.Fatalf("root resolution failed: %v", err)
	}

	path := NewPropertyPath(root)
	mid, err := r.ResolveIntermediary(path, "author")
	if err != nil {
		t.Fatalf("intermediary resolution failed: %v", err)
	}
	path.Append(mid)
	name, err := r.ResolveTerminus(path, "name")
	if err != nil {
		t.Fatalf("terminus resolution failed: %v", err)
	}
	path.Append(name)

	if got := path.NodeNamesWithoutAlias(); !reflect.DeepEqual(got, []string{"author", "name"}) {
		t.Errorf("names without alias = %v, want [author name]", got)
	}
	if got := path.String(); got != "author.name" {
		t.Errorf("path string = %q, want author.name", got)
	}
	if path.First().Name != "b" || path.Last().Name != "name" {
		t.Errorf("first/last = %q/%q", path.First().Name, path.Last().Name)
	}
}

package sqlext

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
)

// Entity is implemented by row types that can be the target of a
// polymorphic reference.
type Entity interface {
	// PolymorphicKind returns the canonical type name stored in the
	// reference's type column.
	PolymorphicKind() string

	// PolymorphicID returns the entity's identifier, stored in the
	// reference's id column.
	PolymorphicID() int64
}

// Ref is the persisted column pair of a polymorphic reference: a
// type discriminator and a foreign key. Embed it in a row struct and
// map its fields to the <name>_type and <name>_id columns.
//
// The two columns are always written together: a reference is either
// empty (both NULL) or holds both a kind and an identifier.
type Ref struct {
	Type sql.NullString
	ID   sql.NullInt64
}

// Empty reports whether the reference is unset.
func (r Ref) Empty() bool {
	return !r.Type.Valid || !r.ID.Valid
}

// LoadFunc loads an entity of one target kind by its identifier.
// A load for an identifier that does not resolve to an existing row
// should return sql.ErrNoRows (or an error wrapping it).
type LoadFunc func(ctx context.Context, querier Querier, id int64) (Entity, error)

// TargetSpec declares one target kind of a polymorphic association.
type TargetSpec struct {
	// Kind is the canonical type name stored in the type column.
	Kind string

	// Load retrieves the entity for this kind by identifier.
	Load LoadFunc
}

// An Association is a declared polymorphic association: a named
// (type, id) column pair together with the closed set of target
// kinds that may be referenced through it.
//
// Declare an association once, at package initialization time, and
// obtain typed accessors for it with AccessorFor. All accessors of
// an association read and write the same underlying column pair, so
// at any instant at most one typed accessor returns a value.
type Association struct {
	name    string
	kinds   []string
	targets map[string]TargetSpec
}

// Declare declares a polymorphic association with the given target
// kinds. It returns an error if no targets are supplied, a target is
// incomplete, or two targets declare the same kind.
func Declare(name string, targets ...TargetSpec) (*Association, error) {
	if name == "" {
		return nil, newError(KindOther, "association name cannot be empty")
	}
	if len(targets) == 0 {
		return nil, newError(KindOther, "association requires at least one target", "association", name)
	}
	assoc := &Association{
		name:    name,
		targets: make(map[string]TargetSpec, len(targets)),
	}
	for _, target := range targets {
		if target.Kind == "" {
			return nil, newError(KindOther, "target kind cannot be empty", "association", name)
		}
		if target.Load == nil {
			return nil, newError(KindOther, "target requires a load function", "association", name, "kind", target.Kind)
		}
		if _, ok := assoc.targets[target.Kind]; ok {
			return nil, newError(KindOther, "duplicate target kind", "association", name, "kind", target.Kind)
		}
		assoc.targets[target.Kind] = target
		assoc.kinds = append(assoc.kinds, target.Kind)
	}
	return assoc, nil
}

// Name returns the association's name.
func (a *Association) Name() string {
	return a.name
}

// Kinds returns the declared target kinds, in declaration order.
func (a *Association) Kinds() []string {
	kinds := make([]string, len(a.kinds))
	copy(kinds, a.kinds)
	return kinds
}

// Get is the base accessor read: it loads whatever entity the
// reference currently points at, regardless of kind. It returns
// (nil, nil) for an empty reference. A reference holding a kind that
// was not declared for this association is a schema error.
func (a *Association) Get(sess *Session, ref Ref) (Entity, error) {
	if ref.Empty() {
		return nil, nil
	}
	target, ok := a.targets[ref.Type.String]
	if !ok {
		return nil, newError(KindSchema, "unknown polymorphic kind",
			"association", a.name, "kind", ref.Type.String)
	}
	return a.load(sess, target, ref.ID.Int64)
}

// Set is the base accessor write: it re-targets the reference to
// whatever kind the entity actually is. Setting nil clears the
// reference unconditionally. An entity whose kind was not declared
// for this association is rejected and the reference left unchanged.
func (a *Association) Set(ref *Ref, entity Entity) error {
	if isNilEntity(entity) {
		a.Clear(ref)
		return nil
	}
	kind := entity.PolymorphicKind()
	if _, ok := a.targets[kind]; !ok {
		return newError(KindTypeMismatch, "kind not declared for association",
			"association", a.name, "kind", kind)
	}
	ref.Type = sql.NullString{String: kind, Valid: true}
	ref.ID = sql.NullInt64{Int64: entity.PolymorphicID(), Valid: true}
	return nil
}

// Clear unconditionally empties the reference, clearing the type and
// id columns together.
func (a *Association) Clear(ref *Ref) {
	ref.Type = sql.NullString{}
	ref.ID = sql.NullInt64{}
}

func (a *Association) load(sess *Session, target TargetSpec, id int64) (Entity, error) {
	entity, err := target.Load(sess.context, sess.querier, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// a dangling id is an error, not an empty reference
			return nil, wrapError(KindNotFound, err, "cannot load polymorphic reference",
				"association", a.name, "kind", target.Kind, "id", id)
		}
		return nil, err
	}
	return entity, nil
}

// An Accessor reads and writes one declared kind of a polymorphic
// association. All accessors of an association share the same
// underlying column pair.
type Accessor[T Entity] struct {
	assoc  *Association
	target TargetSpec
}

// AccessorFor returns the typed accessor for one declared kind of
// the association.
func AccessorFor[T Entity](assoc *Association, kind string) (*Accessor[T], error) {
	target, ok := assoc.targets[kind]
	if !ok {
		return nil, newError(KindSchema, "kind not declared for association",
			"association", assoc.name, "kind", kind)
	}
	return &Accessor[T]{assoc: assoc, target: target}, nil
}

// Get returns the referenced entity if the reference currently holds
// this accessor's kind. If the reference is empty, or holds a
// different kind, Get returns the zero value and no error. An
// identifier that does not resolve to an existing row is an error of
// kind KindNotFound.
func (a *Accessor[T]) Get(sess *Session, ref Ref) (T, error) {
	var zero T
	if ref.Empty() || ref.Type.String != a.target.Kind {
		return zero, nil
	}
	entity, err := a.assoc.load(sess, a.target, ref.ID.Int64)
	if err != nil {
		return zero, err
	}
	typed, ok := entity.(T)
	if !ok {
		return zero, newError(KindTypeMismatch, "load function returned wrong type",
			"association", a.assoc.name, "kind", a.target.Kind)
	}
	return typed, nil
}

// Set writes the reference to point at entity, validating that the
// entity's kind matches the accessor's kind; on mismatch the
// reference is left unmodified.
//
// Setting nil clears the reference, but only if the reference is
// empty or currently holds this accessor's kind: a nil set through a
// mismatched accessor must not clear another kind's reference, and
// leaves it unchanged.
func (a *Accessor[T]) Set(ref *Ref, entity T) error {
	if isNilEntity(entity) {
		if ref.Empty() || ref.Type.String == a.target.Kind {
			a.assoc.Clear(ref)
		}
		return nil
	}
	if kind := entity.PolymorphicKind(); kind != a.target.Kind {
		return newError(KindTypeMismatch, "entity kind does not match accessor",
			"association", a.assoc.name, "accessor", a.target.Kind, "entity", kind)
	}
	ref.Type = sql.NullString{String: a.target.Kind, Valid: true}
	ref.ID = sql.NullInt64{Int64: entity.PolymorphicID(), Valid: true}
	return nil
}

// Kind returns the accessor's declared kind.
func (a *Accessor[T]) Kind() string {
	return a.target.Kind
}

// isNilEntity reports whether entity is nil, including a typed nil
// pointer stored in the interface.
func isNilEntity(entity Entity) bool {
	if entity == nil {
		return true
	}
	v := reflect.ValueOf(entity)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice:
		return v.IsNil()
	}
	return false
}

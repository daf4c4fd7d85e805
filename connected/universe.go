package connected

import (
	"reflect"
	"slices"
	"sync"

	"github.com/cockroachdb/errors"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Universe is the namespace connected types are registered in. Identities
// are type names, so instances of two universes never relate to each other.
type Universe struct {
	mu       sync.RWMutex
	types    map[string]*Type
	order    []*Type
	byGoType map[reflect.Type]*Type

	schemas  *gocache.Cache
	log      *zap.Logger
	observer func(Event)
}

// Option configures a Universe.
type Option func(*Universe)

// WithLogger sets the logger used for registration, resolution and
// relationship changes. Entries are written at debug level.
func WithLogger(log *zap.Logger) Option {
	return func(u *Universe) {
		if log != nil {
			u.log = log
		}
	}
}

// WithObserver registers fn to be called after every attach and detach.
func WithObserver(fn func(Event)) Option {
	return func(u *Universe) {
		u.observer = fn
	}
}

// NewUniverse creates an empty universe.
func NewUniverse(opts ...Option) *Universe {
	u := &Universe{
		types:    make(map[string]*Type),
		byGoType: make(map[reflect.Type]*Type),
		// Resolved schemas live as long as their types.
		schemas: gocache.New(gocache.NoExpiration, 0),
		log:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(u)
	}

	return u
}

var defaultUniverse = NewUniverse()

// Default returns the process-wide universe used by the package-level Declare.
func Default() *Universe {
	return defaultUniverse
}

// Declare starts a type declaration in the default universe.
func Declare(name string) *TypeBuilder {
	return defaultUniverse.Declare(name)
}

// Lookup returns the type registered under name, or nil.
func (u *Universe) Lookup(name string) *Type {
	u.mu.RLock()
	defer u.mu.RUnlock()

	return u.types[name]
}

// LookupGoType returns the type bound to the Go type t, or nil.
func (u *Universe) LookupGoType(t reflect.Type) *Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	u.mu.RLock()
	defer u.mu.RUnlock()

	return u.byGoType[t]
}

// Types returns every registered type in registration order.
func (u *Universe) Types() []*Type {
	u.mu.RLock()
	defer u.mu.RUnlock()

	return slices.Clone(u.order)
}

func (u *Universe) register(t *Type) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if _, ok := u.types[t.name]; ok {
		return configError(t.name, "", ErrDuplicateType, "")
	}

	if t.goType != nil {
		if other, ok := u.byGoType[t.goType]; ok {
			return configError(t.name, "", errors.WithDetailf(ErrInvalidDeclaration,
				"Go type %s is already bound to %s", t.goType, other.name), "")
		}

		u.byGoType[t.goType] = t
	}

	u.types[t.name] = t
	u.order = append(u.order, t)

	u.log.Debug("connected type registered",
		zap.String("type", t.name),
		zap.String("ancestors", names(t.ancestors)),
		zap.Int("declared_fields", len(t.decls)))

	return nil
}

func (u *Universe) resolve(t *Type) (*Schema, error) {
	if v, ok := u.schemas.Get(t.name); ok {
		if s, ok := v.(*Schema); ok {
			return s, nil
		}
	}

	s, err := buildSchema(u, t)
	if err != nil {
		u.log.Debug("schema resolution failed", zap.String("type", t.name), zap.Error(err))
		return nil, err
	}

	u.schemas.Set(t.name, s, gocache.NoExpiration)
	u.log.Debug("schema resolved", zap.String("type", t.name), zap.Int("fields", s.Len()))

	return s, nil
}

func (u *Universe) notify(e Event) {
	if u.observer != nil {
		u.observer(e)
	}
}

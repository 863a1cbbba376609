package recoder

import (
	"sync"

	"github.com/recoderlab/recoder/engine"
)

// Catalog lists the encodings the conversion engine supports. Enumeration
// runs once and the grouped names are cached for the life of the catalog;
// concurrent first callers are serialized by the one-time guard and later
// reads are lock-free.
type Catalog struct {
	once   sync.Once
	enum   func(yield func(group []string) bool)
	groups [][]string
}

// NewCatalog returns a catalog backed by the engine's encoding registry.
func NewCatalog() *Catalog {
	return &Catalog{enum: engine.Encodings}
}

// ListEncodings returns the supported encodings grouped by underlying
// encoding. The first name in each group is the canonical name, the rest
// are its aliases. The grouping is computed on first use and every call
// returns the same cached value; callers must not mutate it.
func (c *Catalog) ListEncodings() [][]string {
	c.once.Do(func() {
		c.enum(func(group []string) bool {
			c.groups = append(c.groups, group)
			return true
		})
	})
	return c.groups
}

// CanonicalName resolves name to its canonical form. Names the engine does
// not recognize are returned unchanged.
func (c *Catalog) CanonicalName(name string) string {
	if canon, ok := engine.Canonical(name); ok {
		return canon
	}
	return name
}

var defaultCatalog = NewCatalog()

// ListEncodings lists the supported encodings of the default catalog.
func ListEncodings() [][]string {
	return defaultCatalog.ListEncodings()
}

// CanonicalName canonicalizes name against the default catalog.
func CanonicalName(name string) string {
	return defaultCatalog.CanonicalName(name)
}

// Supported reports whether name resolves to a supported encoding.
func Supported(name string) bool {
	return engine.Supported(name)
}

package cache

// ScopedKeyer prefixes the keys of another Keyer, so that several
// deployments can share one Redis server.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "jugglesearch:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// A nil inner keyer means the default one.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// SearchKey returns the prefixed search key.
func (k *ScopedKeyer) SearchKey(kind string, config any) string {
	return k.prefix + k.inner.SearchKey(kind, config)
}

// GraphKey returns the prefixed graph key.
func (k *ScopedKeyer) GraphKey(pattern string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(pattern, opts)
}

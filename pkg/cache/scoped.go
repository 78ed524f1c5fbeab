package cache

// ScopedKeyer prefixes every key of an inner Keyer. The server uses it to
// keep its entries apart from anything else stored in a shared Redis.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "bracketmaker:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means
// DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

func (k *ScopedKeyer) BracketKey(opts BracketKeyOpts) string {
	return k.prefix + k.inner.BracketKey(opts)
}

func (k *ScopedKeyer) ArtifactKey(docHash, format string) string {
	return k.prefix + k.inner.ArtifactKey(docHash, format)
}

func (k *ScopedKeyer) RosterKey(csvHash string, cols [4]int) string {
	return k.prefix + k.inner.RosterKey(csvHash, cols)
}

package cache

// ScopedKeyer prefixes every key of an inner Keyer. The API server uses it
// to keep its entries apart from other users of a shared Redis:
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "lodviz:v1:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, falling back to a DefaultKeyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ChartKey returns the prefixed chart key.
func (k *ScopedKeyer) ChartKey(tableHash string, opts ChartKeyOpts) string {
	return k.prefix + k.inner.ChartKey(tableHash, opts)
}

// DownsampleKey returns the prefixed downsample key.
func (k *ScopedKeyer) DownsampleKey(seriesHash string, opts DownsampleKeyOpts) string {
	return k.prefix + k.inner.DownsampleKey(seriesHash, opts)
}

// StatsKey returns the prefixed stats key.
func (k *ScopedKeyer) StatsKey(valuesHash string, rule string) string {
	return k.prefix + k.inner.StatsKey(valuesHash, rule)
}

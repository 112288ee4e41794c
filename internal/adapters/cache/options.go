package cache

const defaultMaxSize = 128

type options struct {
	maxSize int
}

// Option configures a Cache.
type Option func(*options)

// WithMaxSize bounds the number of entries. Zero or negative disables caching.
func WithMaxSize(size int) Option {
	return func(o *options) {
		o.maxSize = size
	}
}

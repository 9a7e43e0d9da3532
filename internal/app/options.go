package app

import (
	"github.com/jsamuelsen11/boardstate/internal/platform/idgen"
	"github.com/jsamuelsen11/boardstate/internal/store"
)

// Option configures the domain stores.
type Option func(*options)

type options struct {
	newID     idgen.Func
	storeOpts []store.Option
}

func newOptions(opts []Option) options {
	o := options{newID: idgen.New}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithIDGenerator replaces the UUID generator used for new entities.
func WithIDGenerator(fn idgen.Func) Option {
	return func(o *options) {
		if fn != nil {
			o.newID = fn
		}
	}
}

// WithStoreOptions passes opts to every store.Create call.
func WithStoreOptions(opts ...store.Option) Option {
	return func(o *options) { o.storeOpts = append(o.storeOpts, opts...) }
}

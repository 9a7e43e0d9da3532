package app

import (
	"github.com/jsamuelsen11/boardstate/internal/domain/product"
	"github.com/jsamuelsen11/boardstate/internal/platform/idgen"
	"github.com/jsamuelsen11/boardstate/internal/ports"
	"github.com/jsamuelsen11/boardstate/internal/state"
	"github.com/jsamuelsen11/boardstate/internal/store"
)

// ProductStoreName is the durable slot of the product store.
const ProductStoreName = "product-store"

// ProductActions are the catalog mutations.
type ProductActions struct {
	set   state.Setter[product.State]
	newID idgen.Func
}

// AddProduct appends a new product.
func (a ProductActions) AddProduct(name string, price float64, description string) {
	id := a.newID()
	a.set(func(s product.State) product.State {
		products := make([]product.Product, 0, len(s.Products)+1)
		products = append(products, s.Products...)
		s.Products = append(products, product.Product{
			ID:          id,
			Name:        name,
			Price:       price,
			Description: description,
		})
		return s
	})
}

// RemoveProduct deletes the product with the given id. Absent ids are a no-op.
func (a ProductActions) RemoveProduct(id string) {
	a.set(func(s product.State) product.State {
		products := make([]product.Product, 0, len(s.Products))
		for _, p := range s.Products {
			if p.ID != id {
				products = append(products, p)
			}
		}
		s.Products = products
		return s
	})
}

// UpdateProduct merges patch into the product with the given id. Other
// products are untouched and absent ids are a no-op.
func (a ProductActions) UpdateProduct(id string, patch product.Patch) {
	a.set(func(s product.State) product.State {
		products := make([]product.Product, len(s.Products))
		for i, p := range s.Products {
			if p.ID == id {
				p = patch.Apply(p)
			}
			products[i] = p
		}
		s.Products = products
		return s
	})
}

var _ ports.ProductCatalog = (*ProductStore)(nil)

// ProductStore is the persisted product catalog.
type ProductStore struct {
	*store.Handle[product.State, ProductActions]
	ProductActions
}

// NewProductStore builds the product store with an empty catalog. It performs
// no I/O.
func NewProductStore(storage ports.DurableStorage, opts ...Option) *ProductStore {
	o := newOptions(opts)
	h := store.Create(ProductStoreName, product.Initial(),
		func(set state.Setter[product.State]) ProductActions {
			return ProductActions{set: set, newID: o.newID}
		},
		storage, o.storeOpts...)
	return &ProductStore{Handle: h, ProductActions: h.Actions()}
}

// Product returns the product with the given id.
func (s *ProductStore) Product(id string) (product.Product, bool) {
	for _, p := range s.State().Products {
		if p.ID == id {
			return p, true
		}
	}
	return product.Product{}, false
}

package ports

import (
	"github.com/jsamuelsen11/boardstate/internal/domain/product"
	"github.com/jsamuelsen11/boardstate/internal/domain/task"
	"github.com/jsamuelsen11/boardstate/internal/domain/user"
	"github.com/jsamuelsen11/boardstate/internal/state"
)

// Observable is a store that can be read and watched.
type Observable[S any] interface {
	// State returns the current snapshot. Callers must not mutate it.
	State() S

	// Subscribe registers fn for every committed change.
	Subscribe(fn state.Listener[S]) (unsubscribe func())
}

// TaskBoard is the task store as seen by inbound adapters.
type TaskBoard interface {
	Observable[task.BoardState]

	AddTask(title, description string)
	DragTask(id *string)
	RemoveTask(id string)
	UpdateTask(id string, status task.Status)
	Task(id string) (task.Task, bool)
}

// UserDirectory is the user store as seen by inbound adapters.
type UserDirectory interface {
	Observable[user.State]

	AddUser(name, email string)
	RemoveUser(id string)
	SetCurrentUser(id *string)
	CurrentUser() (user.User, bool)
}

// ProductCatalog is the product store as seen by inbound adapters.
type ProductCatalog interface {
	Observable[product.State]

	AddProduct(name string, price float64, description string)
	RemoveProduct(id string)
	UpdateProduct(id string, patch product.Patch)
	Product(id string) (product.Product, bool)
}

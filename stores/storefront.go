// Package stores holds the storefront's client-side state: catalog, cart,
// orders and the signed-in user.
package stores

import (
	"context"
	"fmt"

	"github.com/Kariqs/amexan-storefront/api"
	"github.com/Kariqs/amexan-storefront/logging"
	"github.com/Kariqs/amexan-storefront/storage"
)

type Deps struct {
	Client   *api.Client
	Storage  storage.Storage
	Uploader AvatarUploader
}

// Storefront owns one instance of every store for the lifetime of the
// process.
type Storefront struct {
	Catalog *CatalogStore
	Cart    *CartStore
	Orders  *OrderStore
	User    *UserStore

	client *api.Client
}

func NewStorefront(deps Deps) *Storefront {
	cart := NewCartStore(deps.Storage)
	sf := &Storefront{
		Catalog: NewCatalogStore(deps.Client),
		Cart:    cart,
		Orders:  NewOrderStore(deps.Client, cart, deps.Storage),
		User:    NewUserStore(deps.Client, deps.Uploader, deps.Storage),
		client:  deps.Client,
	}
	deps.Client.SetUnauthorizedHandler(sf.User.DropSession)
	return sf
}

// Initialize restores persisted state and the previous session, if any.
func (s *Storefront) Initialize(ctx context.Context) error {
	log := logging.FromCtx(ctx)
	for name, restore := range map[string]func(context.Context) error{
		"cart":   s.Cart.Restore,
		"orders": s.Orders.Restore,
		"user":   s.User.Restore,
	} {
		if err := restore(ctx); err != nil {
			return fmt.Errorf("restore %s: %w", name, err)
		}
	}
	if err := s.User.Initialize(ctx); err != nil {
		return fmt.Errorf("initialize session: %w", err)
	}
	log.Info("storefront state restored",
		"cart_items", s.Cart.TotalItems(),
		"signed_in", s.User.IsAuthenticated())
	return nil
}

// Logout ends the session and resets user-scoped state. The cart is kept as
// a guest cart.
func (s *Storefront) Logout(ctx context.Context) {
	s.User.Logout(ctx)
	s.Reset()
}

// Reset drops order state tied to the previous user.
func (s *Storefront) Reset() {
	s.Orders.Reset()
}

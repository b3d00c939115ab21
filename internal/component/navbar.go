package component

import (
	"context"

	"github.com/Rrens/code-search-web/internal/domain"
)

// Navbar is the shell around every signed-in page
type Navbar struct {
	User *domain.User

	auth AuthAPI
	ls   domain.LocalStorage
}

// NewNavbar creates the shell for one browser's storage area
func NewNavbar(auth AuthAPI, ls domain.LocalStorage) *Navbar {
	return &Navbar{auth: auth, ls: ls}
}

// Load reads the cached profile. A missing or unreadable profile leaves User nil.
func (n *Navbar) Load(ctx context.Context) {
	user, err := n.auth.CurrentUser(ctx, n.ls)
	if err != nil {
		n.User = nil
		return
	}
	n.User = user
}

// Logout forgets the browser's credentials
func (n *Navbar) Logout(ctx context.Context) error {
	n.User = nil
	return n.auth.Logout(ctx, n.ls)
}

package cartControllers

import (
	"encoding/gob"

	"github.com/gin-contrib/sessions"
)

// SessionCartKey is the session key of the guest cart map. The session is
// the store of record for anonymous carts; it is only cleared once a merge
// has been committed.
const SessionCartKey = "cart"

func init() {
	gob.Register(GuestCart{})
}

// GuestCartFromSession reads the anonymous cart, returning an empty cart
// when none has been stored yet.
func GuestCartFromSession(session sessions.Session) GuestCart {
	if v := session.Get(SessionCartKey); v != nil {
		if cart, ok := v.(GuestCart); ok {
			return cart
		}
	}
	return GuestCart{}
}

// SaveGuestCart writes the anonymous cart back to the session.
func SaveGuestCart(session sessions.Session, cart GuestCart) error {
	session.Set(SessionCartKey, cart)
	return session.Save()
}

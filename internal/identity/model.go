// Package identity implements the users service: account registration,
// login, and profile management. It owns the users database and publishes
// user events for the analytics service.
package identity

import "time"

// User is the stored account. HashedPassword never leaves this package.
type User struct {
	ID             int64
	Username       string
	Email          string
	HashedPassword string
	CreatedAt      time.Time
}

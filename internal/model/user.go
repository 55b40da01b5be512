package model

// UserSummary is the read-only projection of a row in the `users` table.
// Users are owned by the upstream authentication system; this service
// only joins against them to show who made a booking.
//
// Fields:
//  ID    – users.id, also the `sub` claim of the bearer token.
//  Name  – display name.
//  Email – contact email.
//  Phone – contact phone (may be empty).
type UserSummary struct {
	ID    uint64 `json:"id"`              // users.id
	Name  string `json:"name"`            // users.name
	Email string `json:"email"`           // users.email
	Phone string `json:"phone,omitempty"` // users.phone
}

package models

import "time"

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleHouseAdmin Role = "house_admin"
	RoleUser       Role = "user"
)

type User struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	Role        Role    `json:"role"`
	ApartmentID *string `json:"apartment_id"`
	HouseID     *string `json:"house_id"`
}

type House struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	Description *string `json:"description"`
}

// Profile is the expanded record behind GET /users/profile. The backend
// joins in display fields the plain User record does not carry.
type Profile struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	Role            Role      `json:"role"`
	ApartmentID     *string   `json:"apartment_id"`
	ApartmentNumber *string   `json:"apartment_number"`
	HouseID         *string   `json:"house_id"`
	HouseName       *string   `json:"house_name"`
	CreatedAt       time.Time `json:"created_at"`
}

// Session is everything the client persists locally after a login. The
// push token lives beside it in the store but has its own lifecycle and
// survives logout.
type Session struct {
	Token       string  `json:"token"`
	UserID      string  `json:"user_id"`
	Username    string  `json:"username"`
	Role        Role    `json:"role"`
	ApartmentID *string `json:"apartment_id"`
}

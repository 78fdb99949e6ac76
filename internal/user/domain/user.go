package domain

import "time"

type ID string

// User is the directory-owned account record. PasswordHash is derived via
// bcrypt and never leaves the process in API responses.
type User struct {
	ID           ID
	Name         string
	Email        string
	PasswordHash string
	DOB          time.Time
	CreatedAt    time.Time
}

// Public is the externally visible view of a user record.
type Public struct {
	ID        ID        `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	DOB       string    `json:"dob"`
	CreatedAt time.Time `json:"created_at"`
}

func (u User) Public() Public {
	return Public{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		DOB:       u.DOB.Format("2006-01-02"),
		CreatedAt: u.CreatedAt,
	}
}

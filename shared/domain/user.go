package domain

import "time"

// User is a registered account. PassHash is always the hasher output.
type User struct {
	Id        UserId
	Name      UserName
	Email     Email
	PassHash  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type UserCreationData struct {
	Name     UserName
	Email    Email
	PassHash string
}

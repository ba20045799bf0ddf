package domain

// Principal is the identity established from a verified bearer token.
// It only ever lives in a request context.
type Principal struct {
	Id    UserId
	Email Email
}

type Credentials struct {
	Email    Email
	Password Password
}

type SignupData struct {
	Name     UserName
	Email    Email
	Password Password
}

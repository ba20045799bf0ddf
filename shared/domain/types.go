package domain

type (
	Email    = string
	Password = string
	UserId   = string
	UserName = string

	BlogId       = string
	BlogTitle    = string
	BlogContent  = string
	BlogCategory = string
)

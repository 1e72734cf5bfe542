package domain

type User struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Status      string `json:"status"`
	Image       string `json:"image"`
	Language    string `json:"language"`
	LastLogin   int64  `json:"last_login"`
	Online      bool   `json:"online"`
	Permissions any    `json:"permissions,omitempty"`
	PublicKey   string `json:"public_key"`
	Companies   any    `json:"companies,omitempty"`
}

func (u User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.LastName
	}
}

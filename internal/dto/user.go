package dto

type SignInRequest struct {
	Phone string `json:"phone"`
	Name  string `json:"name,omitempty"`
}

type UserView struct {
	ID     string `json:"id"`
	Phone  string `json:"phone"`
	Name   string `json:"name"`
	Status string `json:"status"`
	Online bool   `json:"online"`
}

type SignInResponse struct {
	UserView
	Token string `json:"token"`
}

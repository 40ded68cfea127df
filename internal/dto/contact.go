package dto

type AddContactRequest struct {
	ContactID string `json:"contact_id"`
}

type ContactActionResponse struct {
	Success bool `json:"success"`
}

package dtos

// Response is the envelope every endpoint answers with.
type Response struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"Message,omitempty"`
	Data    any    `json:"Data,omitempty"`
	Token   string `json:"Token,omitempty"`
}

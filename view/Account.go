package view

type Account struct {
	UserId       string  `json:"userId"`
	Account      string  `json:"account"`
	Company      string  `json:"company"`
	ConnectedId  string  `json:"connectedId"`
	Principal    float64 `json:"principal"`
	PrePrincipal float64 `json:"prePrincipal"`
}

type AddAccountRequest struct {
	Account         string `json:"account" validate:"required"`
	Company         string `json:"company" validate:"required"`
	AccountPassword string `json:"accountPassword" validate:"required"`
}

type AddAccountResponse struct {
	Message     string `json:"message"`
	Account     string `json:"account"`
	Company     string `json:"company"`
	ConnectedId string `json:"connectedId"`
	Success     bool   `json:"success"`
}

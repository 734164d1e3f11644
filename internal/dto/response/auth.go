package response

type TokenResponse struct {
	Token string `json:"token"`
}

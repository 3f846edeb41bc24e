package auth

// Required fields are checked by the service so that the error messages
// match the documented ones exactly.
type VerifyRequest struct {
	PaysheetNumber string `json:"paysheet_number"`
	Email          string `json:"email"`
}

type FirstLoginRequest struct {
	PaysheetNumber string `json:"paysheet_number"`
	Email          string `json:"email"`
	Password       string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CheckRequest struct {
	PaysheetNumber string `json:"paysheet_number"`
}

type VerifyResponse struct {
	Verified       bool   `json:"verified"`
	Name           string `json:"name"`
	PaysheetNumber string `json:"paysheet_number"`
}

type CheckResponse struct {
	Exists     bool   `json:"exists"`
	FirstLogin bool   `json:"first_login"`
	Name       string `json:"name"`
}

type SessionResponse struct {
	Message string     `json:"message"`
	Token   string     `json:"token"`
	User    PublicUser `json:"user"`
}

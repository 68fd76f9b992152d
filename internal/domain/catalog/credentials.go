package catalog

// Credentials are submitted to both the login and the register endpoints.
type Credentials struct {
	Username string `json:"username" validate:"required,min=3" label:"Username"`
	Password string `json:"password" validate:"required,min=6" label:"Password"`
}

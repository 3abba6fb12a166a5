package dto

// Campos del formulario de acceso. En modo login solo se envían los dos primeros.
const (
	FieldUsername  = "username"
	FieldPassword  = "password"
	FieldFirstname = "firstname"
	FieldLastname  = "lastname"
	FieldCountry   = "country"
)

// AuthFields conjunto de campos del formulario de login/registro.
var AuthFields = []string{FieldUsername, FieldPassword, FieldFirstname, FieldLastname, FieldCountry}

// LoginRequest entrada de POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse salida de POST /auth/login. El token no se persiste en el cliente.
type LoginResponse struct {
	Token    string `json:"token,omitempty"`
	Username string `json:"username,omitempty"`
	Message  string `json:"message,omitempty"`
}

// RegisterRequest entrada de POST /auth/register.
type RegisterRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Country   string `json:"country"`
}

// RegisterRequestFromForm copia los valores del formulario de registro.
func RegisterRequestFromForm(values map[string]string) RegisterRequest {
	return RegisterRequest{
		Username:  values[FieldUsername],
		Password:  values[FieldPassword],
		Firstname: values[FieldFirstname],
		Lastname:  values[FieldLastname],
		Country:   values[FieldCountry],
	}
}

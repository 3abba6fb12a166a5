package dto

import "github.com/jhoicas/admin-console/internal/domain/entity"

// UserFields conjunto de campos del modal de usuario.
var UserFields = []string{FieldUsername, FieldPassword, FieldFirstname, FieldLastname, FieldCountry}

// UserPayload cuerpo de POST/PUT /api/usuarios (sin id).
// Password vacío se omite: en una actualización significa "sin cambios".
type UserPayload struct {
	Username  string `json:"username"`
	Password  string `json:"password,omitempty"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Country   string `json:"country"`
}

// UserPayloadFromForm copia los valores del modal de usuario.
func UserPayloadFromForm(values map[string]string) UserPayload {
	return UserPayload{
		Username:  values[FieldUsername],
		Password:  values[FieldPassword],
		Firstname: values[FieldFirstname],
		Lastname:  values[FieldLastname],
		Country:   values[FieldCountry],
	}
}

// UserFormValues vuelca un usuario al modal de edición. La contraseña nunca se precarga.
func UserFormValues(u entity.User) map[string]string {
	return map[string]string{
		FieldUsername:  u.Username,
		FieldPassword:  "",
		FieldFirstname: u.Firstname,
		FieldLastname:  u.Lastname,
		FieldCountry:   u.Country,
	}
}

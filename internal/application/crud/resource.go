// Package crud implementa los paneles de usuarios y productos: modal de
// alta/edición, borrado con confirmación y listado paginado.
package crud

import (
	"context"

	"github.com/jhoicas/admin-console/internal/application/dto"
	"github.com/jhoicas/admin-console/internal/application/form"
	"github.com/jhoicas/admin-console/internal/application/ports"
	"github.com/jhoicas/admin-console/internal/domain/entity"
)

// Messages textos de alerta y confirmación de un recurso.
type Messages struct {
	Created       string
	Updated       string
	Deleted       string
	ConfirmDelete string
}

// Resource adapta un tipo del backend al panel genérico.
type Resource[T any] interface {
	// Name nombre corto para logs y el indicador de actividad ("usuario").
	Name() string
	Messages() Messages
	Fields() []string
	Required(mode form.Mode) []string
	FormValues(rec T) map[string]string
	ID(rec T) int64
	// Items extrae la colección del último resultado del dashboard.
	Items(data dto.DashboardData) []T

	Create(ctx context.Context, values map[string]string) error
	Update(ctx context.Context, id int64, values map[string]string) error
	Delete(ctx context.Context, id int64) error
}

// Users recurso /api/usuarios.
type Users struct {
	API ports.ResourceAPI
}

var _ Resource[entity.User] = Users{}

func (Users) Name() string { return "usuario" }

func (Users) Messages() Messages {
	return Messages{
		Created:       "Usuario creado exitosamente",
		Updated:       "Usuario actualizado exitosamente",
		Deleted:       "Usuario eliminado exitosamente",
		ConfirmDelete: "¿Estás seguro de que quieres eliminar este usuario?",
	}
}

func (Users) Fields() []string { return dto.UserFields }

// Required la contraseña solo es obligatoria al crear.
func (Users) Required(mode form.Mode) []string {
	if mode == form.ModeCreate {
		return []string{dto.FieldUsername, dto.FieldPassword, dto.FieldFirstname, dto.FieldLastname, dto.FieldCountry}
	}
	return []string{dto.FieldUsername, dto.FieldFirstname, dto.FieldLastname, dto.FieldCountry}
}

func (Users) FormValues(u entity.User) map[string]string { return dto.UserFormValues(u) }

func (Users) ID(u entity.User) int64 { return u.ID }

func (Users) Items(data dto.DashboardData) []entity.User { return data.Usuarios }

func (r Users) Create(ctx context.Context, values map[string]string) error {
	return r.API.CreateUser(ctx, dto.UserPayloadFromForm(values))
}

func (r Users) Update(ctx context.Context, id int64, values map[string]string) error {
	return r.API.UpdateUser(ctx, id, dto.UserPayloadFromForm(values))
}

func (r Users) Delete(ctx context.Context, id int64) error {
	return r.API.DeleteUser(ctx, id)
}

// Products recurso /api/productos. Precio y stock se convierten antes de enviar.
type Products struct {
	API ports.ResourceAPI
}

var _ Resource[entity.Product] = Products{}

func (Products) Name() string { return "producto" }

func (Products) Messages() Messages {
	return Messages{
		Created:       "Producto creado exitosamente",
		Updated:       "Producto actualizado exitosamente",
		Deleted:       "Producto eliminado exitosamente",
		ConfirmDelete: "¿Estás seguro de que quieres eliminar este producto?",
	}
}

func (Products) Fields() []string { return dto.ProductFields }

func (Products) Required(form.Mode) []string {
	return []string{dto.FieldNombre, dto.FieldCategoria, dto.FieldPrecio, dto.FieldStock}
}

func (Products) FormValues(p entity.Product) map[string]string { return dto.ProductFormValues(p) }

func (Products) ID(p entity.Product) int64 { return p.ID }

func (Products) Items(data dto.DashboardData) []entity.Product { return data.Productos }

func (r Products) Create(ctx context.Context, values map[string]string) error {
	in, err := dto.ProductPayloadFromForm(values)
	if err != nil {
		return err
	}
	return r.API.CreateProduct(ctx, in)
}

func (r Products) Update(ctx context.Context, id int64, values map[string]string) error {
	in, err := dto.ProductPayloadFromForm(values)
	if err != nil {
		return err
	}
	return r.API.UpdateProduct(ctx, id, in)
}

func (r Products) Delete(ctx context.Context, id int64) error {
	return r.API.DeleteProduct(ctx, id)
}

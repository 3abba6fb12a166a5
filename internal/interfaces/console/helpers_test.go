package console_test

import (
	"fmt"

	"github.com/jhoicas/admin-console/internal/application/dto"
)

func sandboxUser(i int) dto.UserPayload {
	return dto.UserPayload{
		Username:  fmt.Sprintf("extra%02d", i),
		Password:  "x",
		Firstname: "Extra",
		Lastname:  fmt.Sprint(i),
		Country:   "Chile",
	}
}

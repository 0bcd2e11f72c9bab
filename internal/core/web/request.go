package web

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"ticket-sales/internal/core/access"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const principalKey = "principal"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// BindJSON decodes the body into dst and validates it.
func BindJSON(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return ErrInvalidBody
	}
	return Validate(dst)
}

// Validate runs struct validation and converts failures into a 400.
func Validate(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ErrInvalidBody
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		fields[fe.Field()] = rule
	}
	return ValidationError(fields)
}

// ParamID parses a positive integer path parameter.
func ParamID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, NewError(fiber.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

// RayID returns the request id set by the requestid middleware.
func RayID(c *fiber.Ctx) string {
	rayID, _ := c.Locals("requestid").(string)
	return rayID
}

// SetPrincipal stores the authenticated caller on the request.
func SetPrincipal(c *fiber.Ctx, p access.Principal) {
	c.Locals(principalKey, p)
}

// CurrentPrincipal returns the authenticated caller or a 401 if there is none.
func CurrentPrincipal(c *fiber.Ctx) (access.Principal, error) {
	p, ok := c.Locals(principalKey).(access.Principal)
	if !ok {
		return access.Principal{}, NewError(fiber.StatusUnauthorized, "Authentication credentials were not provided")
	}
	return p, nil
}

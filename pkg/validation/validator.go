package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"courier-console/pkg/apperrors"
)

// Validator — обертка над go-playground/validator: формы не уходят на
// сервер, пока структурно невалидны, ошибки собираются по полям для
// инлайн-вывода.
type Validator struct {
	validator *validator.Validate
}

// New создает и настраивает валидатор.
func New() *Validator {
	v := validator.New()

	// Регистрируем кастомные правила (из файла rules.go).
	// Если правило не зарегистрировалось — паникуем: консоль без
	// валидации стартовать не должна.
	if err := registerRules(v); err != nil {
		panic("ошибка регистрации валидаторов: " + err.Error())
	}
	registerStructRules(v)

	return &Validator{validator: v}
}

// Validate возвращает nil либо *apperrors.InvalidInputError с картой
// поле -> сообщения.
func (cv *Validator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return apperrors.NewInvalidInputError("валидация не выполнена: %v", err)
	}

	fields := map[string][]string{}
	for _, fe := range validationErrors {
		fields[fe.Field()] = append(fields[fe.Field()], messageFor(fe))
	}
	return &apperrors.InvalidInputError{
		Message: "form is not valid",
		Fields:  fields,
	}
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "min":
		if fe.Kind().String() == "slice" {
			return fmt.Sprintf("Select at least %s item(s)", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "custom_email":
		return "Invalid email format"
	case "intl_phone":
		return "Invalid phone number"
	case "eqfield":
		return "Passwords do not match"
	case "nefield":
		return "New password must differ from the old one"
	case "client_office":
		return "Office is required for clients"
	case "client_branches":
		return "Select at least one branch for clients"
	case "excluded_without_role":
		return "Only clients can be assigned to an office"
	default:
		return fmt.Sprintf("Invalid value (%s)", fe.Tag())
	}
}

package validation

import (
	"database/sql/driver"
	"reflect"
	"regexp"
	"strings"

	"github.com/aarondl/null/v8"
	"github.com/go-playground/validator/v10"

	"courier-console/internal/dto"
)

// registerRules регистрирует теги, которые мы используем в struct tags
func registerRules(v *validator.Validate) error {
	if err := v.RegisterValidation("custom_email", isGoodEmailFormat); err != nil {
		return err
	}
	if err := v.RegisterValidation("intl_phone", isIntlPhoneNumber); err != nil {
		return err
	}

	// null.String и прочие null-типы валидируем по их внутреннему
	// значению, а не по структуре-обертке.
	v.RegisterCustomTypeFunc(extractNullValue,
		null.String{}, null.Int{}, null.Bool{}, null.Time{})

	return nil
}

// registerStructRules — межполевые правила, которые нельзя выразить тегами.
func registerStructRules(v *validator.Validate) {
	v.RegisterStructValidation(validateUserFormClientFields, dto.UserForm{})
}

// isGoodEmailFormat - проверка email
func isGoodEmailFormat(fl validator.FieldLevel) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(fl.Field().String())
}

// isIntlPhoneNumber - номер в международном формате: +код и 7-14 цифр
func isIntlPhoneNumber(fl validator.FieldLevel) bool {
	re := regexp.MustCompile(`^\+\d{7,15}$`)
	return re.MatchString(strings.TrimSpace(fl.Field().String()))
}

// validateUserFormClientFields: офис и филиалы обязательны для клиента
// и запрещены для остальных ролей.
func validateUserFormClientFields(sl validator.StructLevel) {
	form := sl.Current().Interface().(dto.UserForm)

	if form.HasClientRole() {
		if form.Office == nil {
			sl.ReportError(form.Office, "Office", "Office", "client_office", "")
		}
		if len(form.Branches) == 0 {
			sl.ReportError(form.Branches, "Branches", "Branches", "client_branches", "")
		}
		return
	}

	// Не-клиент: привязка к офису не имеет смысла, считаем ошибкой ввода.
	if form.Office != nil {
		sl.ReportError(form.Office, "Office", "Office", "excluded_without_role", "")
	}
	if len(form.Branches) > 0 {
		sl.ReportError(form.Branches, "Branches", "Branches", "excluded_without_role", "")
	}
}

// extractNullValue достает значение из driver.Valuer (null.String и т.д.)
func extractNullValue(field reflect.Value) interface{} {
	if valuer, ok := field.Interface().(driver.Valuer); ok {
		val, err := valuer.Value()
		if err == nil {
			return val
		}
	}
	return nil
}

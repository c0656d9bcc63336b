package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/pkg/apperr"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

var validate *validator.Validate

func init() {
	validate = validator.New()
	register(validate)

	if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
		register(engine)
	}
}

func register(v *validator.Validate) {
	v.RegisterTagNameFunc(jsonFieldName)
	for tag, fn := range map[string]validator.Func{
		"notblank":     notBlank,
		"password":     password,
		"email_strict": emailStrict,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register validation %q: %v", tag, err))
		}
	}
}

// Struct validates v with the same rules gin applies to request bodies.
func Struct(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		return Translate(err)
	}
	return nil
}

// Translate flattens binding and validation errors into one 422 error.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	if e := apperr.From(err); e != nil {
		return e
	}

	var messages []string

	var verrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var timeErr *time.ParseError
	switch {
	case errors.As(err, &verrs):
		for _, fe := range verrs {
			messages = append(messages, fieldMessage(fe))
		}
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if i := strings.LastIndex(field, "."); i >= 0 {
			field = field[i+1:]
		}
		messages = append(messages, fmt.Sprintf("Поле '%s' имеет неверный тип данных", field))
	case errors.As(err, &timeErr):
		messages = append(messages, "Неверный формат даты. Используйте YYYY-MM-DD")
	default:
		messages = append(messages, apperr.ErrValidation.Detail)
	}

	return apperr.ErrValidation.WithDetail(strings.Join(dedupe(messages), "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	if strings.Contains(field, "[") {
		base := field[:strings.Index(field, "[")]
		return fmt.Sprintf("%s должен содержать только положительные целые числа!", base)
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Поле '%s' обязательно для заполнения", field)
	case "notblank":
		return fmt.Sprintf("Поле '%s' не может быть пустым", field)
	case "password":
		s, _ := fe.Value().(string)
		if problem := PasswordProblem(s); problem != "" {
			return problem
		}
		return "Некорректный пароль"
	case "email_strict", "email":
		return "Некорректный формат email адреса"
	case "datetime":
		return "Неверный формат даты. Используйте YYYY-MM-DD"
	case "gt":
		if fe.Param() == "0" {
			return fmt.Sprintf("Поле '%s' должно быть положительным!", field)
		}
		return fmt.Sprintf("Поле '%s' должно быть больше %s", field, fe.Param())
	case "gte", "min":
		return fmt.Sprintf("Поле '%s' должно быть больше или равно %s", field, fe.Param())
	case "lt":
		return fmt.Sprintf("Поле '%s' должно быть меньше %s", field, fe.Param())
	case "lte", "max":
		return fmt.Sprintf("Поле '%s' должно быть меньше или равно %s", field, fe.Param())
	case "unique":
		return fmt.Sprintf("Поле '%s' содержит повторяющиеся значения", field)
	}
	return fmt.Sprintf("Поле '%s' не прошло проверку '%s'", field, fe.Tag())
}

// DateRange parses an optional date_from/date_to pair. Both empty yields nils;
// only one of them, a bad format or from >= to is a 422.
func DateRange(from, to string) (*domain.Date, *domain.Date, error) {
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if from == "" && to == "" {
		return nil, nil, nil
	}
	if from == "" || to == "" {
		return nil, nil, apperr.ErrValidation.WithDetail("Укажите обе даты: date_from и date_to")
	}

	df, err := domain.ParseDate(from)
	if err != nil {
		return nil, nil, apperr.ErrValidation.WithDetail("Неверный формат даты. Используйте YYYY-MM-DD")
	}
	dt, err := domain.ParseDate(to)
	if err != nil {
		return nil, nil, apperr.ErrValidation.WithDetail("Неверный формат даты. Используйте YYYY-MM-DD")
	}
	if !df.Before(dt) {
		return nil, nil, apperr.ErrInvalidDateRange
	}
	return &df, &dt, nil
}

// PasswordProblem returns the first rule the password breaks, or "".
func PasswordProblem(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Пароль не может быть пустым"
	}
	n := len([]rune(s))
	if n < 8 {
		return "Пароль должен содержать минимум 8 символов"
	}
	if n > 100 {
		return "Пароль должен содержать максимум 100 символов"
	}

	var upper, lower, digit, space bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsSpace(r):
			space = true
		}
	}
	switch {
	case !upper:
		return "Пароль должен содержать хотя бы одну заглавную букву"
	case !lower:
		return "Пароль должен содержать хотя бы одну строчную букву"
	case !digit:
		return "Пароль должен содержать хотя бы одну цифру"
	case space:
		return "Пароль не должен содержать пробелы"
	}
	return ""
}

func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.String:
		return strings.TrimSpace(field.String()) != ""
	case reflect.Ptr:
		if field.IsNil() {
			return true
		}
		return field.Elem().Kind() != reflect.String || strings.TrimSpace(field.Elem().String()) != ""
	}
	return true
}

func password(fl validator.FieldLevel) bool {
	return PasswordProblem(fl.Field().String()) == ""
}

func emailStrict(fl validator.FieldLevel) bool {
	return emailPattern.MatchString(strings.TrimSpace(fl.Field().String()))
}

func jsonFieldName(f reflect.StructField) string {
	for _, tagName := range []string{"json", "form"} {
		name := strings.SplitN(f.Tag.Get(tagName), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

package apperr

import (
	"errors"
	"net/http"
)

// Error is a domain error that knows its HTTP status and machine code.
type Error struct {
	Status int
	Code   string
	Detail string
}

func (e *Error) Error() string { return e.Detail }

func New(status int, code, detail string) *Error {
	return &Error{Status: status, Code: code, Detail: detail}
}

// WithDetail returns a copy of e with a different message and the same code.
func (e *Error) WithDetail(detail string) *Error {
	return &Error{Status: e.Status, Code: e.Code, Detail: detail}
}

// Is matches on code so WithDetail copies still satisfy errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// From unwraps err into an *Error, or nil when err carries none.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

var (
	ErrObjectNotFound   = New(http.StatusNotFound, "OBJECT_NOT_FOUND", "Объект не найден!")
	ErrHotelNotFound    = New(http.StatusNotFound, "HOTEL_NOT_FOUND", "Отель не найден!")
	ErrRoomNotFound     = New(http.StatusNotFound, "ROOM_NOT_FOUND", "Номер не найден!")
	ErrFacilityNotFound = New(http.StatusNotFound, "FACILITY_NOT_FOUND", "Удобство не найдено!")
	ErrImageNotFound    = New(http.StatusNotFound, "IMAGE_NOT_FOUND", "Изображение не найдено!")

	ErrObjectExists   = New(http.StatusConflict, "OBJECT_EXISTS", "Похожий объект уже существует!")
	ErrHotelExists    = New(http.StatusConflict, "HOTEL_EXISTS", "Отель с таким названием и адресом уже существует!")
	ErrRoomExists     = New(http.StatusConflict, "ROOM_EXISTS", "Такой номер уже существует в этом отеле!")
	ErrFacilityExists = New(http.StatusConflict, "FACILITY_EXISTS", "Удобство с таким названием уже существует!")
	ErrUserExists     = New(http.StatusConflict, "USER_EXISTS", "Пользователь с такой почтой уже существует!")
	ErrAllRoomsBooked = New(http.StatusConflict, "ALL_ROOMS_BOOKED", "Не осталось свободных номеров!")
	ErrHotelHasRooms  = New(http.StatusConflict, "HOTEL_HAS_ROOMS", "Невозможно удалить отель, у которого есть номера!")
	ErrRoomHasBooking = New(http.StatusConflict, "ROOM_HAS_BOOKINGS", "Невозможно удалить номер, у которого есть бронирования!")

	ErrValidation         = New(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Некорректные данные запроса!")
	ErrInvalidJSON        = New(http.StatusUnprocessableEntity, "INVALID_JSON", "Неверный формат JSON данных!")
	ErrFacilityTitleEmpty = New(http.StatusUnprocessableEntity, "FACILITY_TITLE_EMPTY", "Название удобства не может быть пустым!")
	ErrInvalidDateRange   = New(http.StatusUnprocessableEntity, "INVALID_DATE_RANGE", "Дата заезда не может быть позже даты выезда!")
	ErrPastDate           = New(http.StatusUnprocessableEntity, "PAST_DATE", "Дата не может быть в прошлом!")
	ErrInvalidPeriod      = New(http.StatusUnprocessableEntity, "INVALID_BOOKING_PERIOD", "Некорректный период бронирования!")

	ErrIncorrectToken       = New(http.StatusUnauthorized, "INCORRECT_TOKEN", "Некорректный токен!")
	ErrTokenExpired         = New(http.StatusUnauthorized, "TOKEN_EXPIRED", "Токен доступа истёк!")
	ErrNoAccessToken        = New(http.StatusUnauthorized, "NO_ACCESS_TOKEN", "Вы не предоставили токен доступа!")
	ErrEmailNotRegistered   = New(http.StatusUnauthorized, "EMAIL_NOT_REGISTERED", "Пользователь с таким email не зарегистрирован!")
	ErrIncorrectPassword    = New(http.StatusUnauthorized, "INCORRECT_PASSWORD", "Пароль неверный!")
	ErrAlreadyAuthenticated = New(http.StatusUnauthorized, "ALREADY_AUTHENTICATED", "Вы уже вошли в систему!")
	ErrNotAuthenticated     = New(http.StatusUnauthorized, "NOT_AUTHENTICATED", "Вы не в системе, выход невозможен!")

	ErrFileRequired      = New(http.StatusBadRequest, "FILE_REQUIRED", "Файл не передан!")
	ErrEmptyFile         = New(http.StatusBadRequest, "EMPTY_FILE", "Файл пустой!")
	ErrInvalidImage      = New(http.StatusBadRequest, "INVALID_IMAGE", "Файл не является корректным изображением!")
	ErrFileTooLarge      = New(http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "Файл слишком большой! Максимальный размер 5 МБ")
	ErrUnsupportedFormat = New(http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", "Неподдерживаемый формат файла! Разрешены: jpeg, png, webp")

	ErrInternal = New(http.StatusInternalServerError, "INTERNAL_ERROR", "Внутренняя ошибка сервера")
)

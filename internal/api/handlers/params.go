package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// ErrInvalidPathParam параметр пути отсутствует или не является положительным числом
var ErrInvalidPathParam = errors.New("invalid path parameter")

// PathID извлекает положительный ID из параметра пути
func PathID(r *http.Request, name string) (int64, error) {
	value, ok := mux.Vars(r)[name]
	if !ok {
		return 0, ErrInvalidPathParam
	}

	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidPathParam
	}
	return id, nil
}

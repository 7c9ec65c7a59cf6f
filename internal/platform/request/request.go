// Copyright (c) 2026 Kuramono. All rights reserved.

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/tsukihara/kuramono/internal/platform/apperr"
	"github.com/tsukihara/kuramono/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Index retrieves a named URL parameter as a non-negative integer.

Returns:
  - int: Parsed index
  - error: apperr.ValidationError if the parameter is not a non-negative integer
*/
func Index(request *http.Request, name string) (int, error) {
	raw := chi.URLParam(request, name)

	index, err := strconv.Atoi(raw)
	if err != nil || index < 0 {
		return 0, apperr.ValidationError("Parameter '" + name + "' must be a non-negative integer")
	}

	return index, nil
}

package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"
)

const maxBodySize = 1 << 20

var (
	errRequestBodyInvalidJSON = func(err string) *Error {
		return NewError(http.StatusBadRequest, fmt.Sprintf("request body is not valid JSON: %s", err))
	}
	errRequestBodyParameterInvalidType = func(name, expectedType string) *Error {
		return NewError(http.StatusBadRequest, fmt.Sprintf("the parameter '%s' could not be assigned to the required type (%s)", name, expectedType))
	}
	errRequestBodyParameterMissing = func(name string) *Error {
		return NewError(http.StatusBadRequest, fmt.Sprintf("the parameter '%s' is required", name))
	}
	errRequestBodyParameterTooLong = func(name string, max int) *Error {
		return NewError(http.StatusBadRequest, fmt.Sprintf("the parameter '%s' must not be longer than %d characters", name, max))
	}
)

// UnmarshalBody parses and decodes a JSON request body and performs validations on it.
//
// Fields of the target struct may be annotated with the following tags:
//   - required:"true" rejects nil pointers and strings that are empty after trimming whitespace
//   - maxlen:"n" rejects strings longer than n characters
func UnmarshalBody[T any](request *http.Request) (*T, []*Error, error) {
	body, err := io.ReadAll(io.LimitReader(request.Body, maxBodySize))
	if err != nil {
		return nil, nil, err
	}

	target := new(T)
	if err := json.Unmarshal(body, target); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, []*Error{errRequestBodyParameterInvalidType(typeErr.Field, typeErr.Type.String())}, nil
		}
		return nil, []*Error{errRequestBodyInvalidJSON(err.Error())}, nil
	}

	errs, err := validateStruct("", target)
	if err != nil {
		return nil, nil, err
	}
	return target, errs, nil
}

func validateStruct(fieldPrefix string, val any) ([]*Error, error) {
	typ := reflect.TypeOf(val)
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil, errors.New("illegal call to validateStruct with non-struct parameter")
	}
	ref := reflect.ValueOf(val)
	if ref.Kind() == reflect.Pointer {
		ref = ref.Elem()
	}

	var errs []*Error

	for i := 0; i < typ.NumField(); i++ {
		// Retrieve the validation requirements
		fieldDef := typ.Field(i)
		required := strings.EqualFold(fieldDef.Tag.Get("required"), "true")
		maxLen, err := strconv.Atoi(fieldDef.Tag.Get("maxlen"))
		if err != nil {
			maxLen = -1
		}

		fieldName := fieldPrefix + getFieldName(fieldDef)

		// Perform all validations on the field
		field := ref.Field(i)
		if field.Kind() == reflect.Pointer {
			if field.IsNil() {
				if required {
					errs = append(errs, errRequestBodyParameterMissing(fieldName))
				}
				continue
			}
			field = field.Elem()
		}

		switch field.Kind() {
		case reflect.String:
			str := field.String()
			if required && strings.TrimSpace(str) == "" {
				errs = append(errs, errRequestBodyParameterMissing(fieldName))
			}
			if maxLen >= 0 && utf8.RuneCountInString(str) > maxLen {
				errs = append(errs, errRequestBodyParameterTooLong(fieldName, maxLen))
			}
		case reflect.Struct:
			subErrs, err := validateStruct(fieldName+".", field.Interface())
			if err != nil {
				return nil, err
			}
			errs = append(errs, subErrs...)
		}
	}

	return errs, nil
}

func getFieldName(def reflect.StructField) string {
	jsonVal, ok := def.Tag.Lookup("json")
	if !ok || jsonVal == "-" {
		return def.Name
	}
	name, _, _ := strings.Cut(jsonVal, ",")
	return name
}

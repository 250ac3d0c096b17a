// Package httpx holds the request parsing shared by the record handlers.
package httpx

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ParseID reads a UUID path parameter.
func ParseID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

// QueryUUID reads an optional UUID query parameter.
func QueryUUID(c echo.Context, name string) (*uuid.UUID, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return &id, nil
}

// QueryBool reads an optional boolean query parameter.
func QueryBool(c echo.Context, name string) (*bool, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name+": expected true or false")
	}
	return &b, nil
}

// ReadBody returns the raw request body. The body must be a JSON object.
func ReadBody(c echo.Context) ([]byte, error) {
	body, err := readTrimmed(c)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 || body[0] != '{' {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "request body must be a JSON object")
	}
	return body, nil
}

func readTrimmed(c echo.Context) ([]byte, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return nil, he
		}
		return nil, echo.NewHTTPError(http.StatusBadRequest, "could not read request body")
	}
	return bytes.TrimSpace(body), nil
}

// Decode unmarshals body onto dst. Fields absent from body keep their current
// values in dst, which is what a partial update relies on.
func Decode(body []byte, dst interface{}) error {
	if err := json.Unmarshal(body, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return echo.NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("invalid value for %s: expected %s", typeErr.Field, typeErr.Type))
		}
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body: "+err.Error())
	}
	return nil
}

// Bind reads the body and decodes it onto dst.
func Bind(c echo.Context, dst interface{}) error {
	body, err := ReadBody(c)
	if err != nil {
		return err
	}
	return Decode(body, dst)
}

// BindOptional is Bind for endpoints whose body may be omitted. An empty or
// whitespace-only body leaves dst untouched, whatever Content-Length says.
func BindOptional(c echo.Context, dst interface{}) error {
	body, err := readTrimmed(c)
	if err != nil || len(body) == 0 {
		return err
	}
	if body[0] != '{' {
		return echo.NewHTTPError(http.StatusBadRequest, "request body must be a JSON object")
	}
	return Decode(body, dst)
}

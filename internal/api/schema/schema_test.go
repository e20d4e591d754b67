package schema

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	Name   *string `json:"name" required:"true" maxlen:"5"`
	Note   string  `json:"note"`
	Nested struct {
		Route string `json:"route" required:"true"`
	} `json:"nested"`
}

func TestUnmarshalBody(t *testing.T) {
	request := func(body string) *http.Request {
		return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	}

	t.Run("valid body", func(t *testing.T) {
		payload, errs, err := UnmarshalBody[testPayload](request(`{"name":"abc","nested":{"route":"/x"}}`))
		require.NoError(t, err)
		assert.Empty(t, errs)
		assert.Equal(t, "abc", *payload.Name)
	})

	t.Run("missing and too long parameters", func(t *testing.T) {
		_, errs, err := UnmarshalBody[testPayload](request(`{"name":"abcdef","nested":{"route":"  "}}`))
		require.NoError(t, err)
		require.Len(t, errs, 2)
		assert.Contains(t, errs[0].Message, "'name'")
		assert.Contains(t, errs[1].Message, "'nested.route'")
	})

	t.Run("missing pointer parameter", func(t *testing.T) {
		_, errs, err := UnmarshalBody[testPayload](request(`{"nested":{"route":"/x"}}`))
		require.NoError(t, err)
		require.Len(t, errs, 1)
		assert.Equal(t, http.StatusBadRequest, errs[0].Code)
	})

	t.Run("invalid json", func(t *testing.T) {
		_, errs, err := UnmarshalBody[testPayload](request(`{`))
		require.NoError(t, err)
		require.Len(t, errs, 1)
	})

	t.Run("invalid type", func(t *testing.T) {
		_, errs, err := UnmarshalBody[testPayload](request(`{"name":1}`))
		require.NoError(t, err)
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0].Message, "name")
	})
}

func TestWriter(t *testing.T) {
	var hooked error
	writer := &Writer{InternalErrorHook: func(err error) { hooked = err }}

	t.Run("data envelope", func(t *testing.T) {
		rec := httptest.NewRecorder()
		writer.WriteData(rec, []string{"a"})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"success","data":["a"]}`, rec.Body.String())
	})

	t.Run("error envelope", func(t *testing.T) {
		rec := httptest.NewRecorder()
		writer.WriteErrors(rec, NewError(http.StatusBadRequest, "a"), NewError(http.StatusBadRequest, "b"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var response Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, StatusError, response.Status)
		assert.Equal(t, "a; b", response.Message)
	})

	t.Run("internal errors are hooked", func(t *testing.T) {
		rec := httptest.NewRecorder()
		writer.WriteInternalError(rec, errors.New("boom"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.EqualError(t, hooked, "boom")
		assert.JSONEq(t, `{"status":"error","message":"an internal error occurred"}`, rec.Body.String())
	})
}

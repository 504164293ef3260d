package utils

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFormRequest(values url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/v1/sales", strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestIsFormRequest(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		expected    bool
	}{
		{name: "formulário urlencoded", contentType: "application/x-www-form-urlencoded", expected: true},
		{name: "multipart com boundary", contentType: "multipart/form-data; boundary=abc", expected: true},
		{name: "json", contentType: "application/json", expected: false},
		{name: "sem cabeçalho", contentType: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.contentType != "" {
				r.Header.Set("Content-Type", tt.contentType)
			}
			assert.Equal(t, tt.expected, IsFormRequest(r))
		})
	}
}

func TestFormHelpers(t *testing.T) {
	r := newFormRequest(url.Values{
		"product":  {"7"},
		"quantity": {"abc"},
		"category": {"   "},
		"name":     {"  Widget "},
	})

	assert.Equal(t, 7, FormInt(r, "product"))
	assert.Equal(t, 0, FormInt(r, "quantity"))
	assert.Equal(t, 0, FormInt(r, "ausente"))
	assert.Equal(t, "Widget", FormString(r, "name"))
	assert.Nil(t, FormOptionalString(r, "category"))
	require.NotNil(t, FormOptionalString(r, "name"))
}

func TestMoney(t *testing.T) {
	assert.Equal(t, 30.0, Money(decimal.RequireFromString("30.00")))
	assert.Equal(t, 10.13, Money(decimal.RequireFromString("10.125")))
	assert.Equal(t, 0.0, Money(decimal.Zero))
}

func TestGenerateID(t *testing.T) {
	id, err := GenerateID()
	require.NoError(t, err)
	assert.Len(t, id, 12)
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, WriteJSON(rec, http.StatusCreated, map[string]int{"id": 1}))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":1}`, rec.Body.String())
}

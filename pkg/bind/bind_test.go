package bind_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/revoshop/pkg/bind"
)

type addItem struct {
	ProductID int `json:"product_id" validate:"required,gte=1"`
	Qty       int `json:"qty"`
}

type summary struct {
	Coupon string `json:"coupon"`
}

func post(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestJSONDecodesAndValidates(t *testing.T) {
	var in addItem
	errs, err := bind.JSON(post(`{"product_id": 3, "qty": 2}`), &in)
	require.NoError(t, err)
	assert.Nil(t, errs)
	assert.Equal(t, addItem{ProductID: 3, Qty: 2}, in)

	errs, err = bind.JSON(post(`{"qty": 2}`), &addItem{})
	require.NoError(t, err)
	assert.Contains(t, errs, "product_id")
}

func TestJSONEmptyBodyIsEmptyObject(t *testing.T) {
	var in summary
	errs, err := bind.JSON(post(""), &in)
	require.NoError(t, err)
	assert.Nil(t, errs)
	assert.Equal(t, "", in.Coupon)
}

func TestJSONMalformedAndOversized(t *testing.T) {
	_, err := bind.JSON(post(`{"product_id":`), &addItem{})
	assert.ErrorContains(t, err, "invalid JSON")

	big := `{"coupon":"` + strings.Repeat("A", 70<<10) + `"}`
	_, err = bind.JSON(post(big), &summary{})
	assert.ErrorContains(t, err, "too large")
}

package order

import (
	"strings"
	"testing"

	"github.com/corray333/tutti-amici/internal/service/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validOrder = `{
	"items": [
		{"menu_item_id": "65f0c0ffee", "name": "Margherita", "price": 12.5, "quantity": 2},
		{"menu_item_id": "65f0beef", "name": "Cola", "price": 2, "quantity": 1, "notes": "no ice"}
	],
	"subtotal": 27,
	"tax": 2.7,
	"total": 29.7,
	"customer": {"name": "Ada", "phone": "+39 055 000000"}
}`

func TestDecodeValidOrder(t *testing.T) {
	o, err := Decode(strings.NewReader(validOrder))
	require.NoError(t, err)

	require.Len(t, o.Items, 2)
	assert.Equal(t, "65f0c0ffee", o.Items[0].MenuItemID)
	assert.Equal(t, 2, o.Items[0].Quantity)
	assert.Nil(t, o.Items[0].Notes)
	require.NotNil(t, o.Items[1].Notes)
	assert.Equal(t, "no ice", *o.Items[1].Notes)
	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, "Ada", o.Customer.Name)
	assert.Nil(t, o.Customer.Address)
	assert.Nil(t, o.Notes)
}

func TestDecodeAcceptsAnyStatus(t *testing.T) {
	body := `{"items":[],"subtotal":0,"tax":0,"total":0,"status":"on the moon","customer":{"name":"Bo","phone":"1"}}`

	o, err := Decode(strings.NewReader(body))
	require.NoError(t, err)

	assert.Equal(t, "on the moon", o.Status)
	assert.Empty(t, o.Items)
}

func TestDecodeDoesNotCheckTotals(t *testing.T) {
	body := `{"items":[],"subtotal":10,"tax":1,"total":500,"customer":{"name":"Bo","phone":"1"}}`

	o, err := Decode(strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, 500.0, o.Total)
}

func TestDecodeRejectsInvalidOrders(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		fields []string
	}{
		{
			name:   "zero quantity",
			body:   `{"items":[{"menu_item_id":"a","name":"x","price":1,"quantity":0}],"subtotal":1,"tax":0,"total":1,"customer":{"name":"Bo","phone":"1"}}`,
			fields: []string{"items[0].quantity"},
		},
		{
			name:   "second item invalid",
			body:   `{"items":[{"menu_item_id":"a","name":"x","price":1,"quantity":1},{"menu_item_id":"b","name":"y","price":-2,"quantity":-1}],"subtotal":1,"tax":0,"total":1,"customer":{"name":"Bo","phone":"1"}}`,
			fields: []string{"items[1].price", "items[1].quantity"},
		},
		{
			name:   "negative money",
			body:   `{"items":[],"subtotal":-1,"tax":-1,"total":-1,"customer":{"name":"Bo","phone":"1"}}`,
			fields: []string{"subtotal", "tax", "total"},
		},
		{
			name:   "missing customer and items",
			body:   `{"subtotal":1,"tax":0,"total":1}`,
			fields: []string{"items", "customer"},
		},
		{
			name:   "customer without phone",
			body:   `{"items":[],"subtotal":1,"tax":0,"total":1,"customer":{"name":"Bo"}}`,
			fields: []string{"customer.phone"},
		},
		{
			name:   "fractional quantity",
			body:   `{"items":[{"menu_item_id":"a","name":"x","price":1,"quantity":1.5}],"subtotal":1,"tax":0,"total":1,"customer":{"name":"Bo","phone":"1"}}`,
			fields: []string{"items.quantity"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.body))

			var verr *validation.Error
			require.ErrorAs(t, err, &verr)

			got := make([]string, len(verr.Violations))
			for i, v := range verr.Violations {
				got[i] = v.Field
			}
			assert.ElementsMatch(t, tt.fields, got)
		})
	}
}

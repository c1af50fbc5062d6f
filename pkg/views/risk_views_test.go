package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_CanonicalFieldsPassThrough(t *testing.T) {
	in := OrderInput{
		PaymentMethod: "COD",
		Amount:        1500,
		Pincode:       "560001",
		State:         "Karnataka",
		CustomerType:  CustomerNew,
	}

	o := in.Normalize()
	assert.Equal(t, "COD", o.PaymentMethod)
	assert.Equal(t, 1500.0, o.Amount)
	assert.Equal(t, "560001", o.Pincode)
	assert.Equal(t, CustomerNew, o.CustomerType)
}

func TestNormalize_VariantFields(t *testing.T) {
	in := OrderInput{
		PaymentMode: "COD",
		TotalAmount: 2500,
		ShippingAddress: &ShippingInput{
			Pincode: "800001",
			State:   "Bihar",
			Address: "12 Gandhi Maidan",
		},
	}

	o := in.Normalize()
	assert.Equal(t, "COD", o.PaymentMethod)
	assert.Equal(t, 2500.0, o.Amount)
	assert.Equal(t, "800001", o.Pincode)
	assert.Equal(t, "Bihar", o.State)
	assert.Equal(t, "12 Gandhi Maidan", o.Address)
}

func TestNormalize_CanonicalWinsOverVariant(t *testing.T) {
	in := OrderInput{
		PaymentMethod:   "Prepaid",
		PaymentMode:     "COD",
		Amount:          100,
		TotalAmount:     999,
		Pincode:         "560001",
		ShippingAddress: &ShippingInput{Pincode: "800001"},
	}

	o := in.Normalize()
	assert.Equal(t, "Prepaid", o.PaymentMethod)
	assert.Equal(t, 100.0, o.Amount)
	assert.Equal(t, "560001", o.Pincode)
}

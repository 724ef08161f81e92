package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundPrice(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{9.999, 10.00},
		{9.994, 9.99},
		{2.675, 2.67},
		{0, 0},
		{12.5, 12.5},
		{19.999999, 20.00},
		{-2.344, -2.34},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, RoundPrice(tt.in), 1e-9, "RoundPrice(%v)", tt.in)
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "10.00 €", FormatPrice(9.999))
	assert.Equal(t, "3.50 €", FormatPrice(3.5))
}

func TestCombine(t *testing.T) {
	assert.NoError(t, Combine(nil, nil))

	e1 := errors.New("listener")
	err := Combine(nil, e1)
	assert.ErrorIs(t, err, e1)
}

func TestRecover(t *testing.T) {
	var got any
	func() {
		defer func() { got = Recover("job") }()
		panic("boom")
	}()
	assert.Equal(t, "boom", got)
}

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.005, 1.01},
		{1.015, 1.02},
		{970.004, 970.00},
		{-1.555, -1.56},
		{0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Round2(tt.in))
	}
}

func TestLineTotal(t *testing.T) {
	tests := []struct {
		quantity  int
		unitPrice float64
		want      float64
	}{
		{2, 450.00, 900.00},
		{2, 35.00, 70.00},
		{3, 0.10, 0.30},
		{0, 99.99, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LineTotal(tt.quantity, tt.unitPrice))
	}
}

func TestSumAmounts(t *testing.T) {
	// 经典浮点误差用例：0.1 + 0.2
	assert.Equal(t, 0.30, SumAmounts(0.1, 0.2))
	assert.Equal(t, 970.00, SumAmounts(900.00, 70.00))
	assert.Equal(t, 0.00, SumAmounts())
}

func TestAddSubAmount(t *testing.T) {
	assert.Equal(t, 664.00, SubAmount(1164.00, 500.00))
	assert.Equal(t, 1164.00, AddAmount(970.00, 194.00))
	assert.Equal(t, 0.00, SubAmount(0.3, AddAmount(0.1, 0.2)))
}

func TestApplyMarginPercent(t *testing.T) {
	tests := []struct {
		base    float64
		percent float64
		want    float64
	}{
		{970.00, 20, 194.00},
		{361.50, 0, 0},
		{100.00, 12.5, 12.50},
		{0.30, 10, 0.03},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ApplyMarginPercent(tt.base, tt.percent))
	}
}

func TestIsValidAmount(t *testing.T) {
	assert.True(t, IsValidAmount(0))
	assert.True(t, IsValidAmount(100.5))
	assert.False(t, IsValidAmount(-1))

	assert.True(t, IsPositiveAmount(0.01))
	assert.False(t, IsPositiveAmount(0))
	assert.False(t, IsPositiveAmount(-0.01))
}

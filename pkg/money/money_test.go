package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/autoparts-ledger/pkg/money"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestRound_MitadLejosDeCero(t *testing.T) {
	cases := map[string]string{
		"1.005":   "1.01",
		"-1.005":  "-1.01",
		"2.344":   "2.34",
		"2.345":   "2.35",
		"100":     "100",
		"0.004":   "0",
		"-0.0049": "0",
	}
	for in, want := range cases {
		assert.True(t, d(want).Equal(money.Round(d(in))), "Round(%s) debe ser %s", in, want)
	}
}

func TestRound_Idempotente(t *testing.T) {
	for _, s := range []string{"0.125", "-3.335", "99.999", "1234.5678", "0"} {
		once := money.Round(d(s))
		assert.True(t, once.Equal(money.Round(once)), "Round(Round(%s)) == Round(%s)", s, s)
	}
}

func TestFromFloat_CorrigeErrorBinario(t *testing.T) {
	assert.Equal(t, "0.30", money.Format(money.FromFloat(0.1+0.2)))
	assert.Equal(t, "1.01", money.Format(money.FromFloat(1.005)))
	assert.Equal(t, "150.00", money.Format(money.FromFloat(150)))
}

func TestAdd_EsRoundDeLaSuma(t *testing.T) {
	pairs := [][2]string{{"0.105", "0.2"}, {"10.004", "0.001"}, {"-5.555", "1.111"}}
	for _, p := range pairs {
		a, b := d(p[0]), d(p[1])
		assert.True(t, money.Round(a.Add(b)).Equal(money.Add(a, b)))
	}
}

func TestSubMul(t *testing.T) {
	assert.Equal(t, "15000.00", money.Format(money.Sub(d("20000"), d("5000"))))
	assert.Equal(t, "300.00", money.Format(money.MulInt(d("150"), 2)))
	assert.Equal(t, "12.35", money.Format(money.Mul(d("2.47"), d("5"))))
	assert.Equal(t, "6.01", money.Format(money.Sum(d("1.005"), d("2"), d("3"))))
}

func TestEnsureNonNegative(t *testing.T) {
	assert.True(t, money.EnsureNonNegative(d("-50")).IsZero())
	assert.True(t, d("12.35").Equal(money.EnsureNonNegative(d("12.345"))))
}

func TestEqual_ToleranciaMedioCentavo(t *testing.T) {
	assert.True(t, money.Equal(d("100"), d("100.004")))
	assert.True(t, money.Equal(d("100"), d("99.9951")))
	assert.False(t, money.Equal(d("100"), d("100.005")))
	assert.False(t, money.Equal(d("100"), d("100.01")))
}

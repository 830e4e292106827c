package uniswapv2

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		a, b, c string
		want    string
	}{
		{
			name: "small reserves",
			a:    "278237260324",
			b:    "48739336800000000",
			c:    "2421143007360000000000",
			want: "40371",
		},
		{
			name: "weth usdt pools",
			a:    "21974048225209905743260320346616836",
			b:    "3656567056833261232090410051780886244321400",
			c:    "5695044903851427321606039983813668974109621848721",
			want: "1543173",
		},
		{
			// positive root of t² + 338318t − 169 is about 0.0005
			name: "unit leading coefficient",
			a:    "1",
			b:    "338318",
			c:    "169",
			want: "0",
		},
		{
			name: "zero constant term",
			a:    "7",
			b:    "11",
			c:    "0",
			want: "0",
		},
		{
			// t² − 4 = 0
			name: "no linear term",
			a:    "1",
			b:    "0",
			c:    "4",
			want: "2",
		},
		{
			// 2t² + 3t − 5 = 0 has roots 1 and −2.5
			name: "exact integer root",
			a:    "2",
			b:    "3",
			c:    "5",
			want: "1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Solve(Coefficients{A: bi(tt.a), B: bi(tt.b), NegC: bi(tt.c)})
			require.NoError(t, err)
			require.Equal(t, tt.want, got.Dec())
		})
	}
}

func TestSolve_Saturates(t *testing.T) {
	t.Parallel()

	// t² − 2^300 = 0 has root 2^150.
	negC := new(big.Int).Lsh(big.NewInt(1), 300)
	got, err := Solve(Coefficients{A: big.NewInt(1), B: big.NewInt(0), NegC: negC})
	require.NoError(t, err)
	require.Equal(t, MaxUint128, got)
}

func TestSolve_Errors(t *testing.T) {
	t.Parallel()

	_, err := Solve(Coefficients{A: big.NewInt(0), B: big.NewInt(1), NegC: big.NewInt(1)})
	require.ErrorIs(t, err, ErrDivisionByZero)

	_, err = Solve(Coefficients{A: big.NewInt(1), B: big.NewInt(-1), NegC: big.NewInt(1)})
	require.ErrorIs(t, err, ErrInvalidCoefficients)

	_, err = Solve(Coefficients{A: big.NewInt(1), NegC: big.NewInt(1)})
	require.ErrorIs(t, err, ErrInvalidCoefficients)

	wide := new(big.Int).Lsh(big.NewInt(1), 512)
	_, err = Solve(Coefficients{A: big.NewInt(1), B: big.NewInt(1), NegC: wide})
	require.ErrorIs(t, err, ErrOverflow)
}

func TestSolve_RootIsFloor(t *testing.T) {
	t.Parallel()

	c := Coefficients{A: bi("278237260324"), B: bi("48739336800000000"), NegC: bi("2421143007360000000000")}
	root, err := Solve(c)
	require.NoError(t, err)

	eval := func(t *big.Int) *big.Int {
		v := new(big.Int).Mul(c.A, t)
		v.Mul(v, t)
		v.Add(v, new(big.Int).Mul(c.B, t))
		return v.Sub(v, c.NegC)
	}

	r := root.ToBig()
	require.LessOrEqual(t, eval(r).Sign(), 0)
	require.Positive(t, eval(new(big.Int).Add(r, big.NewInt(1))).Sign())
}

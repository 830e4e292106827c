// Command arbcalc sizes the arbitrage between two pools given their raw
// reserves:
//
//	arbcalc [-fee 30] ax ay bx by
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/fleshka4/gofi/internal/dexmath"
	"github.com/fleshka4/gofi/internal/uniswapv2"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "arbcalc:", err)
		os.Exit(1)
	}
}

func run(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("arbcalc", flag.ContinueOnError)
	fs.SetOutput(w)
	fee := fs.Uint("fee", uniswapv2.DefaultFeeBP, "pool fee in basis points")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 4 {
		return errors.New("usage: arbcalc [-fee 30] ax ay bx by")
	}

	var v [4]*uint256.Int
	for i, s := range fs.Args() {
		n, err := uint256.FromDecimal(s)
		if err != nil {
			return errors.Wrapf(err, "reserve %q", s)
		}
		v[i] = n
	}
	a := uniswapv2.Reserves{X: v[0], Y: v[1]}
	b := uniswapv2.Reserves{X: v[2], Y: v[3]}

	cheapA, cheapB := a.Cheaper(b), b.Cheaper(a)
	printPool(w, "a", a, cheapA)
	printPool(w, "b", b, cheapB)

	switch {
	case cheapB:
		a, b = b, a
		fmt.Fprintln(w, "buying in b, selling in a")
	case !cheapA:
		fmt.Fprintln(w, "same price, no arbitrage")
		return nil
	}

	coef, err := uniswapv2.Derive(a, b, uint32(*fee))
	switch {
	case uniswapv2.IsNoArbitrage(err):
		fmt.Fprintln(w, err)
		return nil
	case err != nil:
		return err
	}
	fmt.Fprintf(w, "A=%s\nB=%s\n-C=%s\n", coef.A, coef.B, coef.NegC)

	trade, err := uniswapv2.Simulate(a, b, uint32(*fee))
	switch {
	case uniswapv2.IsNoArbitrage(err):
		fmt.Fprintln(w, err)
		return nil
	case err != nil:
		return err
	}
	fmt.Fprintf(w, "input:        %s\n", trade.Input.Dec())
	fmt.Fprintf(w, "intermediate: %s\n", trade.Intermediate.Dec())
	fmt.Fprintf(w, "output:       %s\n", trade.Output.Dec())
	fmt.Fprintf(w, "profit:       %s\n", trade.Profit.Dec())
	return nil
}

func printPool(w io.Writer, name string, r uniswapv2.Reserves, cheap bool) {
	mark := ""
	if cheap {
		mark = " CHEAP"
	}
	fmt.Fprintf(w, "pool %s: x=%s y=%s price=%.6f%s\n", name, r.X.Dec(), r.Y.Dec(), dexmath.Scale(r.Y, r.X), mark)
}

package main

import (
	"fmt"
	"os"

	calc "github.com/rpgo/mortgage-projector/internal/calculation"
	"github.com/rpgo/mortgage-projector/internal/config"
	"github.com/rpgo/mortgage-projector/internal/domain"
)

// compare_variants prints the long-horizon and stop-at-payoff runs of one scenario side
// by side as CSV, aligned on label.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: compare_variants <config-file>")
		return
	}
	p := config.NewInputParser()
	cfg, err := p.LoadFromFile(os.Args[1])
	if err != nil {
		panic(err)
	}
	in, err := p.ParseRawInput(cfg.RawInput())
	if err != nil {
		panic(err)
	}

	engine := calc.NewEngine()
	var runs []*domain.Projection
	for _, v := range []domain.Variant{domain.VariantLongHorizon, domain.VariantStopAtPayoff} {
		opts, err := domain.OptionsForVariant(v)
		if err != nil {
			panic(err)
		}
		res, err := engine.Simulate(in, opts)
		if err != nil {
			panic(err)
		}
		runs = append(runs, res)
	}
	long, stop := runs[0], runs[1]

	stopByLabel := make(map[string]domain.Sample, len(stop.Samples))
	for _, s := range stop.Samples {
		stopByLabel[s.Label] = s
	}

	fmt.Println("Label,Month,Balance,Long_Portfolio,Long_NetWorth,Stop_Portfolio,Stop_NetWorth")
	for _, s := range long.Samples {
		row := fmt.Sprintf("%s,%d,%s,%s,%s", s.Label, s.Month, s.BalanceRemaining.StringFixed(2),
			s.PortfolioValue.StringFixed(2), s.NetWorth.StringFixed(2))
		if o, ok := stopByLabel[s.Label]; ok {
			row += fmt.Sprintf(",%s,%s", o.PortfolioValue.StringFixed(2), o.NetWorth.StringFixed(2))
		} else {
			row += ",,"
		}
		fmt.Println(row)
	}

	fmt.Fprintf(os.Stderr, "payoff month %d, total interest %s, down payment offset %s\n",
		long.Summary.PayoffMonth, long.Summary.TotalInterest.StringFixed(2), long.Summary.DownPayment.StringFixed(2))
}

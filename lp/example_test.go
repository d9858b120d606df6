package lp_test

import (
	"fmt"

	"github.com/katalvlaran/rpq/lp"
)

// ExampleSolve minimises x + 2y over x + y ≥ 4, x ≤ 3.
func ExampleSolve() {
	sol, err := lp.Solve(&lp.Problem{
		Costs: []float64{1, 2},
		Rows:  []lp.Row{{Coefs: []float64{1, 1}, Sense: lp.GE, RHS: 4}},
		Upper: []float64{3, 10},
	}, lp.DefaultOptions())
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%s x=%.0f y=%.0f objective=%.0f\n", sol.Status, sol.X[0], sol.X[1], sol.Objective)
	// Output:
	// optimal x=3 y=1 objective=5
}

// Package rpq solves the single-machine scheduling problem 1|r_j,q_j|Cmax
// exactly, twice, and checks that both answers agree.
//
// Every job has a release time r, a processing time p and a delivery (tail)
// time q. One machine processes one job at a time without preemption, and
// the goal is the smallest makespan max_j(start_j + p_j + q_j).
//
// The same disjunctive big-M model is handed to two engine paradigms:
//
//	jobs/          Job, Set, the instance file parser, Evaluate and the Schrage heuristic
//	model/         EstimateBound (M = Σ r+p+q), Build, DecisionModel and assignment checks
//	matrix/        dense row-major storage and the Gauss-Jordan pivot
//	lp/            two-phase tableau simplex with Bland's rule
//	milp/          depth-first branch-and-bound over lp
//	cp/            bounds propagation with half-reified linear constraints
//	solver/        the LinearInteger and ConstraintPropagation adapters, SolveAll, Escalate
//	report/        human-readable report and the cross-check of the optima
//	observability/ solve metrics for Prometheus
//	cmd/rpq        command-line front end
//
// Quick start:
//
//	set, _ := jobs.FromTriples([][3]int{{0, 1, 9}, {0, 1, 0}})
//	m, _ := model.BuildFromJobs(set)
//	results, _ := solver.SolveAll(ctx, m,
//		solver.NewLinearInteger(), solver.NewConstraintPropagation())
//	_, err := report.New(os.Stdout, nil).Report(results) // objective=10 twice
//
// Install the command:
//
//	go install github.com/katalvlaran/rpq/cmd/rpq@latest
package rpq

// Command rpq solves a single-machine RPQ instance with both engines and
// cross-checks their optima.
//
// Usage:
//
//	rpq solve jobs.txt --time-limit 30s --engines linear-integer,constraint-propagation
//	rpq bound jobs.txt
//
// Every flag can also be set through the environment with the RPQ_ prefix,
// e.g. RPQ_TIME_LIMIT=1m or RPQ_LOG_FORMAT=json.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

package jobs

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Parse reads an instance in the whitespace-delimited format:
//
//	n
//	r_1 p_1 q_1
//	...
//	r_n p_n q_n
//
// Jobs get ids 0..n-1 in line order. Blank lines are skipped anywhere.
// Only the first token of the count line is read, so headers such as
// "24 3" are accepted.
//
// Errors (all match ErrMalformedInstance):
//   - missing or non-numeric count, count < 1 (ErrEmptyInstance for 0);
//   - a data line without exactly three integers;
//   - fewer or more data lines than announced;
//   - invalid parameters (see New).
func Parse(r io.Reader) (*Set, error) {
	var (
		sc      = bufio.NewScanner(r)
		lineNo  int
		count   = -1
		triples [][3]int
	)
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if count < 0 {
			n, err := strconv.Atoi(fields[0])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: bad job count %q", ErrMalformedInstance, lineNo, sc.Text())
			}
			if n == 0 {
				return nil, ErrEmptyInstance
			}
			if n < 0 {
				return nil, fmt.Errorf("%w: line %d: negative job count %d", ErrMalformedInstance, lineNo, n)
			}
			count = n
			triples = make([][3]int, 0, n)
			continue
		}
		if len(triples) == count {
			return nil, fmt.Errorf("%w: line %d: more data lines than the announced %d jobs", ErrMalformedInstance, lineNo, count)
		}
		if len(fields) != 3 {
			return nil, fmt.Errorf("%w: line %d: want 3 values, got %d", ErrMalformedInstance, lineNo, len(fields))
		}
		var t [3]int
		for k, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: bad value %q", ErrMalformedInstance, lineNo, f)
			}
			t[k] = v
		}
		triples = append(triples, t)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("jobs: read instance: %w", err)
	}
	if count < 0 {
		return nil, ErrEmptyInstance
	}
	if len(triples) != count {
		return nil, fmt.Errorf("%w: announced %d jobs, found %d", ErrMalformedInstance, count, len(triples))
	}

	return FromTriples(triples)
}

// Load opens path and parses it with Parse.
func Load(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("jobs: open instance: %w", err)
	}
	defer f.Close()

	set, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return set, nil
}

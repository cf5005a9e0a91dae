// Package scheduler dispatches transform tasks to a bounded worker pool.
//
// A pool runs exactly as many long-lived workers as its configured limit;
// workers pull from a shared channel until it drains, so uneven task
// durations never idle the pool the way lockstep batching would. A failure
// or panic inside one task becomes a Failure outcome and leaves sibling
// tasks untouched. Process returns only after every task has an outcome.
package scheduler

// Package batch generates reports for many students concurrently.
//
// Each job is built on its own painters, so the only state shared between
// goroutines is the result slice. Concurrency is bounded with
// errgroup.SetLimit; a failure for one student is recorded in its Outcome
// and does not stop the rest of the batch. Only context cancellation aborts
// the run.
package batch

// Package retry retries connection attempts that fail for transient reasons.
//
// An Executor pairs an ErrorClassifier, which decides whether a failure is
// worth another attempt, with a BackoffStrategy, which decides how long to
// wait. Both PostgreSQL and MySQL classifiers are provided. SQLite opens a
// local file and is never retried.
//
//	executor := retry.NewExecutor(retry.NewMySQLErrorClassifier(), retry.DefaultBackoff())
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return db.PingContext(ctx)
//	})
//
// Executor instances are safe for concurrent use. WithOnRetry returns a copy,
// so callers can attach their own callback without sharing state.
package retry

// Package journal persists an audit trail of gated submissions.
//
// Each submission through the gate is recorded as one Entry: what was
// submitted, how long the caller waited for admission, and how the work
// ended. The journal records outcomes only; it never stores quota state, so
// restarting a process always starts rate accounting fresh.
//
// Storage is a single SQLite database in WAL mode. A cron-driven Scheduler
// can prune entries past a retention horizon:
//
//	j, err := journal.Open("data/journal.db")
//	defer j.Close()
//
//	sched := journal.NewScheduler(j, "0 3 * * *", 90*24*time.Hour)
//	sched.Start(ctx)
package journal

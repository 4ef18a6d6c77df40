// Package scheduler triggers the periodic sync runs: a daily full
// reconciliation and an hourly availability refresh by default.
package scheduler

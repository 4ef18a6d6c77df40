// Package reconcile converges the content store to the external record
// set.
//
// A full sync diffs the external and internal sets keyed by stable ID:
// known records are updated in place, unknown ones are created, and
// internal leftovers go private. Updates clear every mapped field before
// writing so stale values never survive a dropped source field. Failures
// are isolated per record; every record commits in its own unit of work.
//
// A narrower availability sub-flow refreshes only the rendered sale status
// control, skipping entities whose tracked subset is unchanged.
package reconcile

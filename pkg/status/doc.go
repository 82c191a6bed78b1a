/*
Package status describes what happened to each term during a run.

🎯 Purpose:
- Outcome: copied, not found, exists, failed
- Summary: per-run counts printed when a run ends
- FormatFileOperation: the fixed-width console line for one file

The package does no I/O of its own; pkg/log owns the console and the mutex.
*/
package status

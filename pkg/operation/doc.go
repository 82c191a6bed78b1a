/*
Package operation implements the locate-then-copy runs of filefetch.

	+-------------+        +-------------+
	|   letters   |        |   collect   |
	| (one root)  |        | (per root)  |
	+------+------+        +------+------+
	       |                      |
	       |               +------+------+
	       |               |   Runner    |
	       |               | (errgroup)  |
	       |               +------+------+
	       |                      |
	+------+----------------------+------+
	|      locate  ->  CopyFile          |
	|  (latest / first per directory)    |
	+------------------------------------+

🎯 Purpose:
- Runs the paired search/rename batch into one named folder
- Runs the per-term collection across every configured source root
- Copies without ever overwriting an existing file

🔄 Flow:
1. Pre-flight checks (folder name, term counts) abort before anything is written
2. Each term is located under a source root
3. Matches are copied into the target with CopyFile
4. Every outcome is reported through pkg/log and counted in the run summary

⚡ Failure handling:
Per-file problems (no match, name taken, I/O errors) are reported and the run
moves on. Only pre-flight aborts and interrupts come back as errors. A
collect task never cancels its siblings.

🔍 Example:

	runner := operation.NewRunner(zerolog.Ctx(ctx), cfg.Workers)
	summary, err := operation.Collect(ctx, cfg, runner, []string{"invoice"})
	if err != nil {
		return err
	}
	fmt.Println(summary)
*/
package operation

/*
Package brand stamps a boilerplate block, usually a license or copyright
header, into a list of files.

	+-------------+      +-------------+      +-------------+
	| Boilerplate | ---> |  Skip regex | ---> |   Files     |
	| ($(Year))   |      | (?i) match  |      | top/bottom  |
	+-------------+      +-------------+      +-------------+

🔄 Flow:
1. Read the boilerplate once and replace every $(Year) with the local year
2. Compile the skip pattern, or the boilerplate itself when none is given
3. For each file, in order: read it, skip it if the pattern matches
   anywhere, otherwise rewrite it with the boilerplate prepended or appended
4. Report branded and skipped files through Result

⚠️ The default skip pattern is the boilerplate compiled as a regular
expression, not escaped. A boilerplate containing "(c)" therefore does not
match its own literal text, and such files are branded again on every run.
Pass an explicit SkipWhenHas for those boilerplates.

Failures are not isolated per file. The first error stops the run and
leaves earlier files branded.

🔍 Example:

	mgr := status.New(".", &logger)
	res := brand.New(mgr, mgr).Execute(ctx, brand.Options{
		Files:           []string{"a.js", "b.js"},
		FromBoilerplate: "HEADER.txt",
	})
	if !res.Success {
		return res.Err
	}
*/
package brand

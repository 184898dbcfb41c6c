// Package output provides formatters for presenting task results in
// table, JSON, and YAML formats.
//
// All formatters implement the Formatter interface and are created
// through NewFormatter with functional options:
//
//	formatter := output.NewFormatter(output.FormatTable,
//	    output.WithNoColor(noColor),
//	    output.WithWide(wide),
//	)
//	err := formatter.FormatResults(os.Stdout, results)
//
// The table formatter renders a minimal kubectl-style table with a
// summary line; colors are applied only when writing to a TTY and not
// suppressed with WithNoColor.
package output

/*
Package cli provides command-line interface utilities for Perch.

The cli package includes output formatters, typed command errors, and
signal handling helpers used by the perch command.

Output Formatting:

Command results render as text or JSON:

	formatter, err := cli.NewFormatter(cli.FormatJSON)
	if err != nil {
		return err
	}
	if err := formatter.FormatTo(os.Stdout, result); err != nil {
		return err
	}

Text formatting goes through fmt's %v verb, so result types that implement
fmt.Stringer control their own text rendering.

Errors:

Commands wrap failures in ConfigError (bad configuration) or CommandError
(execution failure). CommandError unwraps, so errors.Is and errors.As see
through it.

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx := cli.SetupSignalHandler()
	// Use ctx for operations that should be cancelled on shutdown

or, when the caller wants the signal value itself:

	sig := <-cli.WaitForShutdown()
*/
package cli

// Package log builds the [log/slog] handlers used by headercheck.
//
// Three formats are supported: [FormatJSON], [FormatLogfmt], and [FormatText].
// The text format is rendered by [charm.land/log/v2] and is styled when
// written to a terminal. Levels are named ([LevelError], [LevelWarn],
// [LevelInfo], [LevelDebug]) so they can be taken from flags directly.
//
// Typical usage registers a [Config] on the root command and installs the
// handler before running:
//
//	cfg := log.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//	cfg.RegisterCompletions(rootCmd)
//
//	err := cfg.Install(os.Stderr)
//
// While a progress view owns the terminal, log output is routed through a
// [Publisher] instead, and the view renders the lines it receives:
//
//	pub := log.NewPublisher()
//	err := cfg.Install(pub)
//
//	sub := pub.Subscribe()
//	for line := range sub.C() {
//		// Hand line to the view.
//	}
package log

package plate

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Generate a project from a template"
	MsgDescribeShort   = "List the options a template declares"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages"

	// Status messages
	MsgVersionFormat = "plate version %s\n  commit: %s\n  built:  %s\n"
	MsgManWritten    = "Man pages written to %s"

	// Error messages
	MsgErrVerbose = "--verbose expects a number, got %q"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity of subcommands (-v INFO, -vv DEBUG, -vvv TRACE). Generation takes --verbose N"

	// Describe footer
	MsgDescribeKeys = "Suggestions naming one of these keys are filled from the environment: %s."
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/describe-long.txt
	msgDescribeLongRaw string
	MsgDescribeLong    = strings.TrimSpace(msgDescribeLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)

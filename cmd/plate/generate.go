package plate

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/plate/pkg/config"
	"github.com/arthur-debert/plate/pkg/errors"
	"github.com/arthur-debert/plate/pkg/filesystem"
	"github.com/arthur-debert/plate/pkg/generate"
	"github.com/arthur-debert/plate/pkg/logging"
	"github.com/arthur-debert/plate/pkg/options"
	"github.com/arthur-debert/plate/pkg/prompt"
	"github.com/arthur-debert/plate/pkg/shell"
	"github.com/arthur-debert/plate/pkg/ui"
)

// Options consumed by plate itself rather than by the template
const (
	answersOption = "answers"
	verboseOption = "verbose"
)

func wantsHelp(args []string) bool {
	for _, arg := range args {
		if arg == "-h" || arg == "--help" {
			return true
		}
	}
	return false
}

func runGenerate(cmd *cobra.Command, console *ui.Console, args []string) error {
	if wantsHelp(args) {
		return cmd.Help()
	}

	console.Welcome()

	set, err := options.Parse(args)
	if err != nil {
		return err
	}

	verbosity := 0
	if raw, ok := set.Take(verboseOption); ok {
		verbosity, err = strconv.Atoi(raw)
		if err != nil {
			return errors.Newf(errors.ErrOptionParse, MsgErrVerbose, raw).
				WithDetail("option", verboseOption)
		}
	}
	setupLogger(verbosity)
	logger := logging.GetLogger("cmd.generate")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fs := filesystem.NewOS()
	if path, ok := set.Take(answersOption); ok {
		answers, err := options.LoadAnswers(fs, path)
		if err != nil {
			return err
		}
		set.Merge(answers)
	}

	logger.Info().
		Bool("force", set.Force()).
		Strs("options", set.Names()).
		Msg("Starting generation")

	prompter := prompt.NewConsolePrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	generator := generate.New(generate.Deps{
		FS:     fs,
		Runner: shell.NewBashRunner(),
		Solver: options.NewCommandLineSolver(set, prompter),
		Config: cfg,
		Step:   console.Step,
	})

	result, err := generator.Run(cmd.Context())
	if err != nil {
		return err
	}

	logger.Info().
		Str("destination", result.Destination).
		Interface("values", result.Values).
		Strs("omitted", result.Omitted).
		Msg("Generation finished")

	console.Success()
	return nil
}

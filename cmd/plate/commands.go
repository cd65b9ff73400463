package plate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/plate/internal/version"
	"github.com/arthur-debert/plate/pkg/config"
	"github.com/arthur-debert/plate/pkg/descriptor"
	"github.com/arthur-debert/plate/pkg/errors"
	"github.com/arthur-debert/plate/pkg/filesystem"
	"github.com/arthur-debert/plate/pkg/logging"
	"github.com/arthur-debert/plate/pkg/shell"
	"github.com/arthur-debert/plate/pkg/suggestions"
	"github.com/arthur-debert/plate/pkg/template"
	"github.com/arthur-debert/plate/pkg/ui"
)

func newDescribeCmd(console *ui.Console) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <template>",
		Short: MsgDescribeShort,
		Long:  MsgDescribeLong,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			acquirer := template.NewAcquirer(filesystem.NewOS(), shell.NewBashRunner(), cfg, console.Step)

			d, err := describeTemplate(cmd.Context(), acquirer, args[0])
			if err != nil {
				return err
			}
			console.Markdown(describeMarkdown(d, args[0]))
			return nil
		},
	}
}

// describeMarkdown is the rule table followed by the suggestion keys that are
// filled from the environment.
func describeMarkdown(d *descriptor.Descriptor, ref string) string {
	keys := make([]string, len(suggestions.Keys))
	for i, key := range suggestions.Keys {
		keys[i] = "`" + key + "`"
	}
	return descriptor.Markdown(d, ref) + "\n" +
		fmt.Sprintf(MsgDescribeKeys, strings.Join(keys, ", ")) + "\n"
}

// describeTemplate opens ref without generating anything. Remote templates
// are downloaded next to a throwaway destination.
func describeTemplate(ctx context.Context, acquirer *template.Acquirer, ref string) (*descriptor.Descriptor, error) {
	logger := logging.GetLogger("cmd.describe")

	tmp, err := os.MkdirTemp("", "plate-describe-")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileWrite, "could not create a temporary folder")
	}
	defer func() {
		if err := os.RemoveAll(tmp); err != nil {
			logger.Warn().Err(err).Str("path", tmp).Msg("Could not remove temporary folder")
		}
	}()

	tpl, err := acquirer.Open(ctx, ref, filepath.Join(tmp, "project"))
	if err != nil {
		return nil, err
	}
	defer tpl.Close()

	return tpl.Descriptor, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "man [dir]",
		Short: MsgManShort,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			if err := os.MkdirAll(dir, 0755); err != nil {
				return errors.Wrapf(err, errors.ErrFileWrite, "could not create %s", dir)
			}

			if err := doc.GenManTree(cmd.Root(), ManHeader(version.Version), dir); err != nil {
				return errors.Wrapf(err, errors.ErrFileWrite, "could not write man pages to %s", dir)
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgManWritten+"\n", dir)
			return nil
		},
	}
}

// ManHeader is the header of the generated man pages
func ManHeader(release string) *doc.GenManHeader {
	return &doc.GenManHeader{
		Title:   "PLATE",
		Section: "1",
		Source:  "plate " + release,
		Manual:  "plate manual",
	}
}

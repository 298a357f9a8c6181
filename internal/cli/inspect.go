package cli

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/matzehuels/mekko/pkg/pipeline"
)

func (c *CLI) inspectCommand() *cobra.Command {
	var (
		plain bool
		lang  string
		opts  pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "inspect [dataset]",
		Short: "Browse a chart layout in the terminal",
		Long: `Browse a chart layout in the terminal.

Shows every column with its width share and stack totals, and the segments
of the selected column. Use --plain to print all columns without the
interactive view.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Source = args[0]
			return c.runInspect(cmd.Context(), opts, lang, plain)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print tables instead of the interactive view")
	cmd.Flags().StringVar(&lang, "lang", "", "BCP 47 language for numbers")
	bindLayoutFlags(cmd, &opts)
	return cmd
}

func (c *CLI) runInspect(ctx context.Context, opts pipeline.Options, lang string, plain bool) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	if lang == "" {
		lang = cfg.Render.Language
	}
	tag := language.English
	if lang != "" {
		if tag, err = language.Parse(lang); err != nil {
			return fmt.Errorf("invalid language %q: %w", lang, err)
		}
	}

	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger
	opts.Fetcher = fetcher(runner)

	d, _, err := runner.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return fmt.Errorf("load %s: %w", opts.Source, err)
	}
	l, _, err := runner.LayoutWithCacheInfo(ctx, d, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	title := d.Title
	if title == "" {
		title = d.Name
	}
	m := newInspectModel(title, l, tag)

	if plain {
		fmt.Println(StyleTitle.Render(title))
		m.height = len(l.Categories)
		fmt.Println(m.categoryTable())
		for cat := range l.Categories {
			fmt.Println(StyleDim.Render(fmt.Sprint(l.Categories[cat].Value)))
			fmt.Println(m.segmentTable(cat))
		}
		return nil
	}

	_, err = tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zjrosen/choicekit/internal/catalog"
	"github.com/zjrosen/choicekit/internal/choices"
	"github.com/zjrosen/choicekit/internal/config"
	"github.com/zjrosen/choicekit/internal/presentation"
	"github.com/zjrosen/choicekit/internal/ui/picker"
)

var (
	setsKind    string
	lookupValue string
	lookupName  string
	lookupLabel string
	pickCurrent string
	pickHeight  int
)

var setsListCmd = &cobra.Command{
	Use:   "sets:list",
	Short: "List all choice sets",
	Long: `List every choice set in the catalog with its kind, entry count and
empty label.

Examples:
  # All sets
  choicekit sets:list

  # Only integer sets, as JSON
  choicekit sets:list --kind integer -f json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		formatter, err := newFormatter(cmd)
		if err != nil {
			return err
		}

		descriptors := sets.List()
		if cmd.Flags().Changed("kind") {
			kind, err := parseKind(setsKind)
			if err != nil {
				return err
			}
			descriptors = sets.GetByKind(kind)
		}
		return formatter.FormatSetSummaries(presentation.FromDescriptors(descriptors))
	},
}

var setsShowCmd = &cobra.Command{
	Use:   "sets:show NAME",
	Short: "Show the entries of a choice set",
	Long: `Show every entry of a choice set: name, stored value and label. A set with
an empty label lists it first.

Examples:
  choicekit sets:show Fruit
  choicekit sets:show MoonLanding -f yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := sets.Get(args[0])
		if err != nil {
			return err
		}
		formatter, err := newFormatter(cmd)
		if err != nil {
			return err
		}
		return formatter.FormatSet(presentation.FromDescriptor(d))
	},
}

var setsLookupCmd = &cobra.Command{
	Use:   "sets:lookup NAME",
	Short: "Find one entry of a choice set",
	Long: `Find an entry of a choice set by stored value, by name, or by label.
Exactly one of --value, --name or --label is required. Values are matched
in text form, so integer values are given as digits.

Examples:
  choicekit sets:lookup Fruit --value 2
  choicekit sets:lookup Fruit --name PEACH
  choicekit sets:lookup Fruit --label 桃子`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		by, raw, err := lookupFlag(cmd)
		if err != nil {
			return err
		}
		d, err := sets.Get(args[0])
		if err != nil {
			return err
		}
		entry, err := d.Resolve(raw, by)
		if err != nil {
			return err
		}
		formatter, err := newFormatter(cmd)
		if err != nil {
			return err
		}
		return formatter.FormatEntry(d.Name, presentation.FromDescribedEntry(entry, d.Kind))
	},
}

var setsPickCmd = &cobra.Command{
	Use:   "sets:pick NAME",
	Short: "Pick an entry interactively",
	Long: `Open an interactive picker over a choice set and print the stored value of
the chosen entry. The picker draws on stderr, so the value can be captured:

  fruit=$(choicekit sets:pick Fruit)

Choosing the empty label prints an empty line. Cancelling exits non-zero.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := sets.Get(args[0])
		if err != nil {
			return err
		}

		res, err := picker.Run(cmd.Context(), d,
			picker.WithInput(cmd.InOrStdin()),
			picker.WithOutput(cmd.ErrOrStderr()),
			picker.WithSelectedValue(pickCurrent),
			picker.WithHeight(pickHeight),
		)
		if err != nil {
			return err
		}

		if res.Empty {
			_, err = fmt.Fprintln(cmd.OutOrStdout())
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), res.Entry.ValueText)
		return err
	},
}

var setsRegisterCmd = &cobra.Command{
	Use:   "sets:register FILE",
	Short: "Add a catalog file to the config",
	Long: `Check that a YAML catalog file loads on top of the current catalog, then
add it to catalog_files in the config file in use. Comments and other
settings in the config are preserved.

Catalog file format:
  sets:
    - name: Size
      kind: text          # text (default) or integer
      empty: "(none)"     # optional empty label
      entries:
        - {name: SMALL, value: S, label: Small}
        - {name: LARGE, value: L}`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}
		loaded, err := catalog.LoadYAML(os.DirFS(filepath.Dir(path)), filepath.Base(path))
		if err != nil {
			return err
		}

		// A listed file is already merged into sets; merging it again would
		// clash with itself.
		changed := false
		if !catalogFileListed(path) {
			if err := sets.Merge(loaded...); err != nil {
				return err
			}
			changed, err = config.AddCatalogFile(configFileUsed(), path, cfg.CatalogFiles)
			if err != nil {
				return err
			}
		}
		formatter, err := newFormatter(cmd)
		if err != nil {
			return err
		}
		return formatter.FormatResult(map[string]any{
			"file":       path,
			"sets":       len(loaded),
			"registered": changed,
			"config":     configFileUsed(),
		})
	},
}

func init() {
	setsListCmd.Flags().StringVar(&setsKind, "kind", "", "Filter by kind: text, integer or composite")

	setsLookupCmd.Flags().StringVar(&lookupValue, "value", "", "Stored value, in text form")
	setsLookupCmd.Flags().StringVar(&lookupName, "name", "", "Entry name")
	setsLookupCmd.Flags().StringVar(&lookupLabel, "label", "", "Display label")
	setsLookupCmd.MarkFlagsMutuallyExclusive("value", "name", "label")
	setsLookupCmd.MarkFlagsOneRequired("value", "name", "label")

	setsPickCmd.Flags().StringVar(&pickCurrent, "current", "", "Start on the entry with this value")
	setsPickCmd.Flags().IntVar(&pickHeight, "height", 0, "Visible rows (default: fit the terminal)")

	rootCmd.AddCommand(setsListCmd, setsShowCmd, setsLookupCmd, setsPickCmd, setsRegisterCmd)
}

// catalogFileListed reports whether path is already in catalog_files.
func catalogFileListed(path string) bool {
	for _, file := range cfg.CatalogFiles {
		if abs, err := filepath.Abs(file); err == nil && abs == path {
			return true
		}
	}
	return false
}

var errUnknownKind = errors.New("unknown kind")

func parseKind(s string) (choices.Kind, error) {
	switch k := choices.Kind(s); k {
	case choices.KindText, choices.KindInteger, choices.KindComposite:
		return k, nil
	default:
		return "", fmt.Errorf("%w %q (want text, integer or composite)", errUnknownKind, s)
	}
}

// lookupFlag returns the strategy and text of whichever lookup flag was set.
func lookupFlag(cmd *cobra.Command) (choices.Lookup, string, error) {
	flags := cmd.Flags()
	switch {
	case flags.Changed("value"):
		return choices.ByValue, lookupValue, nil
	case flags.Changed("name"):
		return choices.ByName, lookupName, nil
	case flags.Changed("label"):
		return choices.ByLabel, lookupLabel, nil
	default:
		return "", "", errors.New("one of --value, --name or --label is required")
	}
}

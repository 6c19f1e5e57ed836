package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"bslcheck/internal/adapter/bsl"
	"bslcheck/internal/domain"
)

var methodsJSON bool

var methodsCmd = &cobra.Command{
	Use:   "methods <module.bsl>",
	Short: "Show the methods parsed from a module",
	Long: `Parse a single module and print every method with its line range, return,
tag and directive flags. Useful to see why a check fired.

Examples:
  bslcheck methods Forms/Форма/Ext/Form/Module.bsl
  bslcheck methods ObjectModule.bsl --json`,
	Args: cobra.ExactArgs(1),
	RunE: runMethods,
}

func init() {
	rootCmd.AddCommand(methodsCmd)
	methodsCmd.Flags().BoolVar(&methodsJSON, "json", false, "output as JSON")
}

func runMethods(cmd *cobra.Command, args []string) error {
	path, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	cfg, _, err := loadConfig(filepath.Dir(path))
	if err != nil {
		return err
	}

	classifier, err := bsl.NewClassifier(cfg.Rules.Tag)
	if err != nil {
		return err
	}
	module, err := bsl.NewParser(classifier).ParseModule(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if methodsJSON {
		data, err := json.MarshalIndent(module, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if len(module.Methods) == 0 {
		fmt.Fprintln(out, "No methods found.")
		return nil
	}

	names := make([]string, 0, len(module.Methods))
	for name := range module.Methods {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return module.Methods[names[i]].Start < module.Methods[names[j]].Start
	})

	fmt.Fprintf(out, "%s: %d methods\n\n", module.Path, len(names))
	for _, name := range names {
		fmt.Fprintln(out, formatMethod(name, module.Methods[name]))
	}
	return nil
}

func formatMethod(name string, m *domain.Method) string {
	end := fmt.Sprintf("%d", m.End+1)
	if m.End == 0 {
		end = "?"
	}
	s := fmt.Sprintf("%-10s %s  L%d-%s", m.Kind, name, m.Start+1, end)
	if m.Directive != "" {
		s += "  &" + m.Directive
	}
	if m.Kind == domain.Function && !m.HasReturn {
		s += "  no-return"
	}
	if m.Tagged {
		s += "  tagged"
	}
	return s
}

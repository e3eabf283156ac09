package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rollforge/roll-api/internal/dicelang"
)

var (
	rollTimes int
	rollVars  []string
	rollLabel string
)

var rollCmd = &cobra.Command{
	Use:   "roll <expression>",
	Short: "Evaluate a dice expression",
	Long: `Evaluate a dice expression and print the result.

Examples:
  roll-api roll "4d6kh3"
  roll-api roll "d20+@str" --var str=5
  roll-api roll "2d6+3" --times 6 --label Damage`,
	Args: cobra.ExactArgs(1),
	RunE: runRoll,
}

var validateCmd = &cobra.Command{
	Use:   "validate <expression>",
	Short: "Check a dice expression without rolling",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rollCmd.Flags().IntVar(&rollTimes, "times", 1, "number of independent rolls")
	rollCmd.Flags().StringArrayVar(&rollVars, "var", nil, "variable binding, name=value (repeatable)")
	rollCmd.Flags().StringVar(&rollLabel, "label", "", "display label for the roll")
}

func runRoll(cmd *cobra.Command, args []string) error {
	variables, err := parseVariables(rollVars)
	if err != nil {
		return err
	}

	results, err := dicelang.RollMultiple(args[0], rollTimes, variables)
	if err != nil {
		return err
	}

	for _, result := range results {
		fmt.Fprintln(cmd.OutOrStdout(), dicelang.FormatRollForDisplay(result, rollLabel))
	}
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	result := dicelang.ValidateExpression(args[0])
	if !result.Valid {
		return fmt.Errorf("invalid expression: %s", result.Error)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "valid")
	return nil
}

// parseVariables turns repeated name=value flags into a binding map.
func parseVariables(pairs []string) (map[string]int, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	variables := make(map[string]int, len(pairs))
	for _, pair := range pairs {
		name, valueStr, found := strings.Cut(pair, "=")
		name = strings.TrimPrefix(strings.TrimSpace(name), "@")
		if !found || name == "" {
			return nil, fmt.Errorf("invalid variable %q, expected name=value", pair)
		}
		value, err := strconv.Atoi(strings.TrimSpace(valueStr))
		if err != nil {
			return nil, fmt.Errorf("invalid value for variable %q: %w", name, err)
		}
		variables[name] = value
	}
	return variables, nil
}

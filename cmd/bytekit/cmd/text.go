package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ssargent/bytekit/pkg/textconv"
)

// canonicalizers parse a value of one type and render it back as text
var canonicalizers = map[string]func(string) (string, error){
	"int":     roundTrip[int],
	"int64":   roundTrip[int64],
	"uint64":  roundTrip[uint64],
	"float32": roundTrip[float32],
	"float64": roundTrip[float64],
	"bool":    roundTrip[bool],
	"string":  roundTrip[string],
	"url":     roundTrip[textconv.URL],
}

func roundTrip[T any](s string) (string, error) {
	v, err := textconv.FromText[T](s)
	if err != nil {
		return "", err
	}
	return textconv.FormatText(v)
}

func canonicalText(typeName, value string) (string, error) {
	fn, ok := canonicalizers[typeName]
	if !ok {
		return "", fmt.Errorf("unknown type %q: must be one of %s", typeName, strings.Join(textTypes(), ", "))
	}
	return fn(value)
}

func textTypes() []string {
	names := make([]string, 0, len(canonicalizers))
	for name := range canonicalizers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// textCmd represents the text command
var textCmd = &cobra.Command{
	Use:   "text <value>",
	Short: "Parse a value and print its canonical text form",
	Long: `Parse a value as the given type and print it back in canonical form.
Fails if the text does not denote a value of that type.

Examples:
  bytekit text --type float32 123.4500
  bytekit text --type url http://libcinder.org`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		typeName, _ := cmd.Flags().GetString("type")
		out, err := canonicalText(typeName, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(textCmd)
	textCmd.Flags().StringP("type", "t", "string", "Value type: "+strings.Join(textTypes(), ", "))
}

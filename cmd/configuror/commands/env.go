package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/configuror/internal/errors"
	"github.com/thoreinstein/configuror/pkg/configuror"
	"github.com/thoreinstein/configuror/pkg/dotenv"
)

var (
	envDefault string
	envAs      string
)

// envConverters maps --as values to the conversion applied to the raw
// environment value.
var envConverters = map[string]func(string) (any, error){
	"string": func(s string) (any, error) { return s, nil },
	"bool":   func(s string) (any, error) { return dotenv.Bool(s), nil },
	"int":    func(s string) (any, error) { return cast.ToIntE(strings.TrimSpace(s)) },
	"float":  func(s string) (any, error) { return cast.ToFloat64E(strings.TrimSpace(s)) },
	"strings": func(s string) (any, error) {
		return dotenv.Strings(s), nil
	},
	"ints":     func(s string) (any, error) { return dotenv.Ints(s) },
	"floats":   func(s string) (any, error) { return dotenv.Floats(s) },
	"decimals": func(s string) (any, error) { return dotenv.Decimals(s) },
	"paths":    func(s string) (any, error) { return dotenv.Paths(s), nil },
}

var envConverterNames = []string{
	"string", "bool", "int", "float", "strings", "ints", "floats", "decimals", "paths",
}

func init() {
	envCmd.Flags().StringVar(&envDefault, "default", "",
		"value used when the variable is not set")
	envCmd.Flags().StringVar(&envAs, "as", "string",
		"conversion: "+strings.Join(envConverterNames, ", "))
	rootCmd.AddCommand(envCmd)
}

var envCmd = &cobra.Command{
	Use:   "env <name>",
	Short: "Print an environment variable after loading dotenv files",
	Long: `Load every source and file, which exports the keys of dotenv files
into the process environment, then print one environment variable.

--as converts the value. List conversions split on commas, semicolons,
colons and whitespace and print one item per line.`,
	Example: `  # Read a port from .env
  configuror env PORT -f .env --as int

  # Split a list
  configuror env ALLOWED_HOSTS -f .env --as strings

See Also: configuror get`,
	Args: cobra.ExactArgs(1),
	RunE: runEnv,
}

func runEnv(cmd *cobra.Command, args []string) error {
	conv, ok := envConverters[strings.ToLower(envAs)]
	if !ok {
		return errors.NewUserError(
			errors.Newf("unknown conversion %q", envAs),
			"Valid conversions: "+strings.Join(envConverterNames, ", "),
		)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	value, err := configuror.GetEnv(cfg, args[0], envDefault, conv)
	if err != nil {
		return errors.FromLoadError(err)
	}
	return printEnvValue(cmd, value)
}

func printEnvValue(cmd *cobra.Command, value any) error {
	w := cmd.OutOrStdout()
	switch v := value.(type) {
	case []string:
		printEach(w, v)
	case []int:
		printEach(w, v)
	case []float64:
		printEach(w, v)
	case []decimal.Decimal:
		printEach(w, v)
	default:
		fmt.Fprintln(w, v)
	}
	return nil
}

func printEach[T any](w io.Writer, items []T) {
	for _, item := range items {
		fmt.Fprintln(w, item)
	}
}

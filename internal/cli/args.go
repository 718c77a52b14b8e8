package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// splitArgs separates a command's own long flags from a search's driver
// vector. Driver flags are single-dash ("-n", "-x 3"), so every "--name"
// argument and "-v" belong to the command; a value-taking long flag also
// claims the next argument unless written "--name=value".
func splitArgs(flags *pflag.FlagSet, args []string) (own, driver []string) {
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "-v" || a == "-h":
			own = append(own, a)
		case strings.HasPrefix(a, "--") && len(a) > 2:
			own = append(own, a)
			name, _, hasValue := strings.Cut(a[2:], "=")
			f := flags.Lookup(name)
			if !hasValue && f != nil && f.NoOptDefVal == "" && i+1 < len(args) {
				i++
				own = append(own, args[i])
			}
		default:
			driver = append(driver, a)
		}
	}
	return own, driver
}

// parseOwnFlags parses the command's flags out of args for commands that
// disable cobra's flag parsing, and returns the driver vector. It reports
// help=true when help was requested.
func parseOwnFlags(cmd *cobra.Command, args []string) (driver []string, help bool, err error) {
	// InheritedFlags merges the root's persistent flags into cmd.Flags().
	_ = cmd.InheritedFlags()
	flags := cmd.Flags()
	own, driver := splitArgs(flags, args)
	if err := flags.Parse(own); err != nil {
		return nil, false, err
	}
	help, _ = flags.GetBool("help")
	return driver, help, nil
}

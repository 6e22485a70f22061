package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/agbru/matsteps/internal/ui"
)

// setCustomUsage configures the flag set with a colored usage function.
func setCustomUsage(fs *flag.FlagSet) {
	fs.Usage = func() {
		// Respect NO_COLOR even before app initialization
		t := ui.GetCurrentTheme()
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			t = ui.NoColorTheme
		}

		out := fs.Output()

		// Header
		fmt.Fprintf(out, "\n%sMatrix Multiplication Steps%s\n", t.Bold, t.Reset)
		fmt.Fprintf(out, "Step-by-step worked example of a 2x2 matrix product.\n\n")
		fmt.Fprintf(out, "%sUsage:%s\n  %s [flags] a b c d e f g h\n\n", t.Warning, t.Reset, fs.Name())
		fmt.Fprintf(out, "  A = [[a, b], [c, d]] and B = [[e, f], [g, h]], both row-major.\n")
		fmt.Fprintf(out, "  Put %s--%s before the values when the first one is negative.\n\n", t.Primary, t.Reset)
		fmt.Fprintf(out, "%sFlags:%s\n", t.Warning, t.Reset)

		fs.VisitAll(func(f *flag.Flag) {
			name, usage := flag.UnquoteUsage(f)
			flagSig := fmt.Sprintf("-%s", f.Name)
			if len(name) > 0 {
				flagSig += " " + name
			}

			// Print formatted flag
			fmt.Fprintf(out, "  %s%-25s%s %s", t.Primary, flagSig, t.Reset, usage)

			// Print default value if meaningful
			if f.DefValue != "" && f.DefValue != "0" && f.DefValue != "false" {
				fmt.Fprintf(out, " %s(default %s)%s", t.Secondary, f.DefValue, t.Reset)
			}
			fmt.Fprintln(out)
		})
		fmt.Fprintln(out)
	}
}

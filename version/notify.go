package version

import (
	"fmt"
	"os"

	"github.com/crosswatch-cli/crosswatch/color"
	"github.com/crosswatch-cli/crosswatch/constant"
	"github.com/crosswatch-cli/crosswatch/key"
	"github.com/crosswatch-cli/crosswatch/style"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// Notify tells the user on stderr about a newer release.
// It stays silent when stderr is not a terminal so piped output is never mixed with it.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) || !term.IsTerminal(int(os.Stderr.Fd())) {
		return
	}

	latest, err := Latest()
	if err != nil {
		return
	}

	if newer, err := Compare(latest, constant.Version); err != nil || newer <= 0 {
		return
	}

	_, _ = fmt.Fprintf(os.Stderr, "\n%s crosswatch %s is out %s\n%s\n\n",
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(latest),
		style.Faint(fmt.Sprintf("(you have %s)", constant.Version)),
		style.Faint("https://github.com/"+constant.Repository+"/releases/tag/v"+latest),
	)
}

// Command lithium reads one source program from stdin and writes its
// compiled textual SSA module to stdout (spec §6). It takes no flags
// beyond -v (verbose developer logging) and -help, following the
// teacher corpus's own preference for raw os.Args parsing over a
// flag-parsing library.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/agrif/lithium/internal/diagnostics"
	"github.com/agrif/lithium/internal/driver"
)

const usage = `usage: lithium [-v] [-help]

Reads one source program from stdin, writes its compiled textual SSA
module to stdout.
`

func main() {
	verbose := false
	for _, arg := range os.Args[1:] {
		switch arg {
		case "-v":
			verbose = true
		case "-help", "--help", "-h":
			fmt.Fprint(os.Stdout, usage)
			return
		default:
			fmt.Fprintf(os.Stderr, "lithium: unknown flag %q\n%s", arg, usage)
			os.Exit(2)
		}
	}

	log.SetFlags(0)
	log.SetOutput(os.Stderr)
	if !verbose {
		log.SetOutput(io.Discard)
	}

	log.Printf("reading source from stdin")
	src, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lithium: reading stdin: %v\n", err)
		os.Exit(1)
	}

	log.Printf("compiling %d bytes", len(src))
	out, err := driver.Compile(string(src), "main")
	if err != nil {
		fmt.Fprintln(os.Stderr, formatError(err))
		os.Exit(1)
	}

	fmt.Print(out)
}

// formatError renders err the way the driver always reports a failure:
// "<message> at line L col C", colorized when stderr is an interactive
// terminal and left plain otherwise (piped output, e.g. into a log file,
// should never carry ANSI escapes).
func formatError(err error) string {
	pos, ok := err.(diagnostics.Positioned)
	if !ok {
		return err.Error()
	}
	msg := diagnostics.Format(pos)
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return msg
	}
	const red = "\x1b[31m"
	const reset = "\x1b[0m"
	return red + msg + reset
}

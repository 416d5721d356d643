package util

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
)

// Options holds the driver's parsed command-line flags, trimmed from the
// teacher's target-triple-heavy Options down to the surface SPEC_FULL.md's
// driver actually needs: an output path, a batch thread count, verbosity,
// and an optional graphviz dump path.
type Options struct {
	Srcs    []string // Paths to source files; more than one compiles as an independent batch.
	Out     string   // Path to output file; empty means stdout.
	Threads int      // Batch thread count; 0 or 1 means sequential.
	Verbose bool     // Print one trace line per compiled file (no per-function detail).
	Dot     string   // Path to write a graphviz dump of the last compiled file's tree; empty disables it.
}

const maxThreads = 64
const appVersion = "vslc 1.0"

// ParseArgs parses command line arguments.
func ParseArgs() (Options, error) {
	opt := Options{}
	args := os.Args[1:]
	for i1 := 0; i1 < len(args); i1++ {
		switch args[i1] {
		case "-h", "--h", "-help", "--help":
			printHelp()
			os.Exit(0)
		case "-o", "-t", "-dot":
			if i1+1 >= len(args) {
				return opt, fmt.Errorf("got flag %s but no argument", args[i1])
			}
			if strings.HasPrefix(args[i1+1], "-") {
				return opt, fmt.Errorf("expected argument, got new flag %s", args[i1+1])
			}
			switch args[i1] {
			case "-o":
				opt.Out = args[i1+1]
			case "-dot":
				opt.Dot = args[i1+1]
			case "-t":
				t, err := strconv.Atoi(args[i1+1])
				if err != nil {
					return opt, fmt.Errorf("expected integer thread count, got: %s", args[i1+1])
				}
				if t < 1 || t > maxThreads {
					return opt, fmt.Errorf("thread count must be integer in range [1, %d]", maxThreads)
				}
				opt.Threads = t
			}
			i1++
		case "-v", "--v", "-version", "--version":
			fmt.Println(appVersion)
			os.Exit(0)
		case "-vb":
			opt.Verbose = true
		default:
			if strings.HasPrefix(args[i1], "-") {
				return opt, fmt.Errorf("unexpected flag: %s", args[i1])
			}
			opt.Srcs = append(opt.Srcs, args[i1])
		}
	}
	if opt.Threads == 0 {
		opt.Threads = 1
	}
	return opt, nil
}

func printHelp() {
	w := tabwriter.NewWriter(os.Stdout, 6, 1, 1, 0, 0)
	_, _ = fmt.Fprintln(w, "-h, -help\tPrints this help message and exits.")
	_, _ = fmt.Fprintln(w, "-o\tPath to the output file; stdout if omitted.")
	_, _ = fmt.Fprintf(w, "-t\tBatch thread count for compiling multiple files concurrently. Must be in range [1, %d].\n", maxThreads)
	_, _ = fmt.Fprintln(w, "-dot\tPath to write a graphviz dump of the compiled tree.")
	_, _ = fmt.Fprintln(w, "-v, -version\tPrints the compiler version and exits.")
	_, _ = fmt.Fprintln(w, "-vb\tVerbose mode: print a one-line compile trace per file.")
	_ = w.Flush()
}

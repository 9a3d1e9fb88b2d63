// Command mysorescript runs MysoreScript programs, either from a file or
// interactively. Its flags mirror the reference implementation this
// driver is grounded on: -f for a source file, -i for a REPL session, -t
// and -m to report timing and heap-usage diagnostics, -h for usage.
package main

import (
	"fmt"
	"os"

	"mysorescript/pkg/driver"
)

const cliToolVersion = "mysorescript-cli 0.0.0-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	var (
		filePath   string
		repl       bool
		timing     bool
		memory     bool
		configPath = "mysorescript.yml"
	)

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-h", "--help":
			printUsage()
			return 0
		case "--version":
			fmt.Fprintln(os.Stdout, cliToolVersion)
			return 0
		case "-i":
			repl = true
		case "-t":
			timing = true
		case "-m":
			memory = true
		case "-c":
			i++
			if i >= len(args) {
				fmt.Fprintln(os.Stderr, "mysorescript: -c requires a path")
				return 1
			}
			configPath = args[i]
		case "-f":
			i++
			if i >= len(args) {
				fmt.Fprintln(os.Stderr, "mysorescript: -f requires a path")
				return 1
			}
			filePath = args[i]
		default:
			fmt.Fprintf(os.Stderr, "mysorescript: unrecognized argument %q\n", args[i])
			printUsage()
			return 1
		}
	}

	if filePath == "" && !repl {
		printUsage()
		return 1
	}

	cfg, err := driver.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mysorescript: %v\n", err)
		return 1
	}

	session := driver.NewSession(cfg, os.Stdout, os.Stderr)
	session.Timing = timing
	session.Memory = memory

	if filePath != "" {
		if err := driver.RunFile(session, filePath); err != nil {
			fmt.Fprintf(os.Stderr, "mysorescript: %v\n", err)
			return 1
		}
	}

	if repl {
		if err := driver.RunREPL(session, os.Stdin, "mysorescript> "); err != nil {
			fmt.Fprintf(os.Stderr, "mysorescript: %v\n", err)
			return 1
		}
	}

	return 0
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `usage: mysorescript [-f file] [-i] [-t] [-m] [-c config] [-h]

  -f file   run a source file as a single batch
  -i        start an interactive session (may follow -f)
  -t        report timing for each batch on stderr
  -m        report heap usage for each batch on stderr
  -c file   load run configuration from a YAML file (default: mysorescript.yml)
  -h        show this message`)
}

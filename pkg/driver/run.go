package driver

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"runtime"
)

// RunFile parses and interprets an entire file as a single batch (§5
// Driver surface: "accepts a source file... parsed into a top-level
// statements node"). A syntax or fatal runtime error aborts the whole
// process, matching §7's "fatal at top level" rule for top-level batches.
func RunFile(s *Session, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("mysorescript: read %s: %w", path, err)
	}
	return s.RunSource(path, string(src))
}

// RunREPL feeds the session one statement batch per prompt until the
// reader hits EOF or a blank line. It does not print batch results; only
// a batch's error is written, to s.Err. Unlike file mode, a fatal
// error here aborts only the current batch (§7): the session keeps its
// globals and class table and the next prompt is unaffected.
func RunREPL(s *Session, in io.Reader, prompt string) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.Out, prompt)
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := scanner.Text()
		if line == "" {
			return nil
		}

		if err := s.RunSource("<repl>", line); err != nil {
			fmt.Fprintf(s.Err, "mysorescript: %v\n", err)
		}

		// Reproduces the reference implementation's per-prompt GC_gcollect()
		// call: MysoreScript sessions in REPL mode accumulate a batch's
		// worth of garbage every prompt, and a real collector would be
		// invoked here. Go's own collector runs on its own schedule
		// regardless, but this keeps the driver honoring the same timing
		// contract the original gives a pluggable collector.
		runtime.GC()
	}
}

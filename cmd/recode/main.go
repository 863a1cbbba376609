package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"

	"github.com/recoderlab/recoder"
)

func main() {
	var (
		from        = flag.String("from", "", "Source encoding name")
		to          = flag.String("to", "UTF-8", "Target encoding name")
		inFile      = flag.String("in", "", "Input file (default stdin)")
		outFile     = flag.String("out", "", "Output file (default stdout)")
		hexDump     = flag.Bool("hex", false, "Print output as a hex dump")
		list        = flag.Bool("list", false, "List supported encodings and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *list {
		listEncodings()
		return
	}

	if *interactive {
		if err := runInteractive(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *from == "" {
		fmt.Fprintln(os.Stderr, "Usage: recode -from <encoding> [-to <encoding>] [-in file] [-out file]")
		fmt.Fprintln(os.Stderr, "       recode -list")
		fmt.Fprintln(os.Stderr, "       recode -i  (interactive mode)")
		os.Exit(1)
	}

	if err := run(*from, *to, *inFile, *outFile, *hexDump); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func listEncodings() {
	for _, group := range recoder.ListEncodings() {
		if len(group) > 1 {
			fmt.Printf("%s (%s)\n", group[0], strings.Join(group[1:], ", "))
		} else {
			fmt.Println(group[0])
		}
	}
}

func run(from, to, inFile, outFile string, hexDump bool) error {
	// Read input
	var data []byte
	var err error
	if inFile == "" || inFile == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(inFile)
	}
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	// Convert
	out, lossy, err := recoder.Convert(from, to, data)
	if err != nil {
		return err
	}

	// Write output
	w := os.Stdout
	if outFile != "" && outFile != "-" {
		f, err := os.Create(outFile)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}

	if hexDump {
		if _, err := fmt.Fprintf(w, "% X\n", out); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	} else {
		if w == os.Stdout && term.IsTerminal(int(os.Stdout.Fd())) && !utf8.Valid(out) {
			fmt.Fprintln(os.Stderr, "warning: output is not valid UTF-8, use -hex or -out to capture it")
		}
		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}

	fmt.Fprintf(os.Stderr, "%s -> %s: %d bytes in, %d bytes out", recoder.CanonicalName(from), recoder.CanonicalName(to), len(data), len(out))
	if lossy > 0 {
		fmt.Fprintf(os.Stderr, ", %d lossy substitutions", lossy)
	}
	fmt.Fprintln(os.Stderr)

	return nil
}

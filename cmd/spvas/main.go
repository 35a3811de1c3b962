// Command spvas assembles SPIR-V assembly text into a binary module.
//
// Usage:
//
//	spvas [options] <input.spvasm>
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/gogpu/spv/spirv"
)

var (
	output      = flag.String("o", "", "output file (default: stdout)")
	versionFlag = flag.Bool("version", false, "print version")
)

func version() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			return info.Main.Version
		}
	}
	return "dev"
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if *versionFlag {
		fmt.Printf("spvas version %s\n", version())
		return
	}

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Error: no input file specified")
		usage()
		os.Exit(2)
	}

	source, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(2)
	}

	stream, err := spirv.Assemble(string(source))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Malformed assembly: %v\n", err)
		os.Exit(2)
	}

	data := spirv.Encode(stream)

	if *output != "" {
		if err := os.WriteFile(*output, data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			os.Exit(2)
		}
		fmt.Printf("Assembled %s to %s (%d bytes)\n", args[0], *output, len(data))
		return
	}
	if _, err := os.Stdout.Write(data); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: spvas [options] <input.spvasm>\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
}

// Command spvdis disassembles a SPIR-V binary module into assembly text.
//
// Usage:
//
//	spvdis [options] <input.spv>
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
		fmt.Printf("spvdis version %s\n", version())
		return
	}

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Error: no input file specified")
		usage()
		os.Exit(2)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(2)
	}

	stream, err := spirv.Decode(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Malformed SPIR-V: %v\n", err)
		os.Exit(2)
	}

	text := spirv.Disassemble(stream)

	if *output != "" {
		if err := os.WriteFile(*output, []byte(text), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			os.Exit(2)
		}
		return
	}
	fmt.Print(text)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: spvdis [options] <input.spv>\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
}

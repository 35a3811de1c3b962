// Command spvval validates a SPIR-V binary module.
//
// It always runs the library's own IR invariant checks, and additionally
// pipes the module to an external validator when one is named with
// -validator. Exit codes follow the convention shared across this toolchain:
// 0 success, 1 validation failure, 2 malformed input, 3 internal invariant
// violation.
//
// Usage:
//
//	spvval [options] <input.spv>
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/gogpu/spv/ir"
	"github.com/gogpu/spv/spirv"
	"github.com/gogpu/spv/validator"
)

var (
	validatorPath = flag.String("validator", "", "external validator executable (e.g. spirv-val); skipped if empty")
	versionFlag   = flag.Bool("version", false, "print version")
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
		fmt.Printf("spvval version %s\n", version())
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

	module, err := ir.Build(stream)
	if err != nil {
		if _, ok := err.(*ir.InvariantViolationError); ok {
			fmt.Fprintf(os.Stderr, "Internal invariant violation: %v\n", err)
			os.Exit(3)
		}
		fmt.Fprintf(os.Stderr, "Malformed SPIR-V: %v\n", err)
		os.Exit(2)
	}

	if violations := ir.Validate(module); len(violations) > 0 {
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "Validation error: %v\n", v)
		}
		os.Exit(1)
	}

	if *validatorPath != "" {
		b := validator.New(*validatorPath)
		if err := b.Validate(data); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("%s: valid\n", args[0])
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: spvval [options] <input.spv>\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
}

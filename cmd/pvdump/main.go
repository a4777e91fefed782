// pvdump - inspect pvdata wire captures
//
// Usage:
//
//	pvdump demo [ntscalar|ntenum] [file]   Write a sample encoded Value
//	pvdump dump [file]                     Decode and print a Value
//	pvdump diff file1 file2                Decode two Values and diff their text form
//	pvdump version                         Print version info
//
// A "capture" is a TypeStore-encoded TypeDesc followed by an
// EncodeValueFull payload, both little-endian. demo produces one;
// dump and diff consume it.
//
// If no file is given, dump/demo read/write stdin/stdout.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/ISISComputingGroup/pvxs-go/pvdata"
	"github.com/ISISComputingGroup/pvxs-go/wire"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "demo":
		cmdDemo(os.Args[2:])
	case "dump":
		cmdDump(os.Args[2:])
	case "diff":
		cmdDiff(os.Args[2:])
	case "version", "-v", "--version":
		fmt.Printf("pvdump %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprint(os.Stderr, `pvdump - inspect pvdata wire captures

Usage:
  pvdump demo [ntscalar|ntenum] [file]   Write a sample encoded Value
  pvdump dump [file]                     Decode and print a Value
  pvdump diff file1 file2                Decode two Values and diff their text form
  pvdump version                         Print version info

If no file is given, dump reads stdin and demo writes stdout.
`)
}

func cmdDemo(args []string) {
	kind := "ntscalar"
	fileArg := ""
	for _, a := range args {
		switch a {
		case "ntscalar", "ntenum":
			kind = a
		default:
			fileArg = a
		}
	}

	var val *pvdata.Value
	switch kind {
	case "ntenum":
		val = buildDemoEnum()
	default:
		val = buildDemoScalar()
	}

	out := io.Writer(os.Stdout)
	if fileArg != "" {
		f, err := os.Create(fileArg)
		if err != nil {
			fatal("create file: %v", err)
		}
		defer f.Close()
		out = f
	}

	w := wire.NewWriter(wire.LittleEndian)
	store := wire.NewTypeStore()
	store.EncodeType(w, val.Type())
	if err := wire.EncodeValueFull(w, store, val); err != nil {
		fatal("encode: %v", err)
	}
	if _, err := out.Write(w.Bytes()); err != nil {
		fatal("write: %v", err)
	}
}

func buildDemoScalar() *pvdata.Value {
	v, err := pvdata.NTScalar(pvdata.Int32).Build()
	if err != nil {
		fatal("build type: %v", err)
	}
	field, err := v.Field("value")
	if err != nil {
		fatal("field: %v", err)
	}
	if err := field.CopyIn(int64(42)); err != nil {
		fatal("copyin: %v", err)
	}
	sev, err := v.Field("alarm.severity")
	if err != nil {
		fatal("field: %v", err)
	}
	if err := sev.CopyIn(int64(0)); err != nil {
		fatal("copyin: %v", err)
	}
	return v
}

func buildDemoEnum() *pvdata.Value {
	v, err := pvdata.NTEnum().Build()
	if err != nil {
		fatal("build type: %v", err)
	}
	idx, err := v.Field("value.index")
	if err != nil {
		fatal("field: %v", err)
	}
	if err := idx.CopyIn(int64(1)); err != nil {
		fatal("copyin: %v", err)
	}
	choices, err := v.Field("value.choices")
	if err != nil {
		fatal("field: %v", err)
	}
	if err := choices.CopyIn([]string{"off", "on"}); err != nil {
		fatal("copyin: %v", err)
	}
	return v
}

func cmdDump(args []string) {
	var in io.Reader = os.Stdin
	if len(args) > 0 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			fatal("open file: %v", err)
		}
		defer f.Close()
		in = f
	}

	val, err := decodeCapture(in)
	if err != nil {
		fatal("decode: %v", err)
	}

	text := val.Text()
	if isatty.IsTerminal(os.Stdout.Fd()) {
		color.New(color.FgCyan).Fprint(os.Stdout, text)
	} else {
		fmt.Print(text)
	}
}

func cmdDiff(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "pvdump diff: need exactly two files")
		os.Exit(1)
	}

	texts := make([]string, 2)
	for i, path := range args {
		f, err := os.Open(path)
		if err != nil {
			fatal("open file: %v", err)
		}
		val, err := decodeCapture(f)
		f.Close()
		if err != nil {
			fatal("decode %s: %v", path, err)
		}
		texts[i] = val.Text()
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(texts[0], texts[1], false)
	printDiff(diffs)
}

func printDiff(diffs []diffmatchpatch.Diff) {
	useColor := isatty.IsTerminal(os.Stdout.Fd())
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			if useColor {
				color.New(color.FgGreen).Print(d.Text)
			} else {
				fmt.Print("+" + d.Text)
			}
		case diffmatchpatch.DiffDelete:
			if useColor {
				color.New(color.FgRed).Print(d.Text)
			} else {
				fmt.Print("-" + d.Text)
			}
		default:
			fmt.Print(d.Text)
		}
	}
}

// decodeCapture reads a TypeStore-cached TypeDesc followed by a
// full-form Value payload, both little-endian, the format cmdDemo
// writes.
func decodeCapture(in io.Reader) (*pvdata.Value, error) {
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, err
	}
	r := wire.NewReader(data, wire.LittleEndian)
	return wire.DecodeTypeValue(r, wire.NewTypeStore())
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "pvdump: "+format+"\n", args...)
	os.Exit(1)
}

// Command msbench-info describes a table file written by msbench:
// row count, column count, and the layout of each column.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/msbench/msbench/pkg/schema"
	"github.com/msbench/msbench/pkg/table"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s <table-path>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	tab, err := table.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("Number of rows: %d\n", tab.NumRows())
	fmt.Printf("Number of columns: %d\n", tab.NumColumns())

	descs := tab.Descriptors()
	nameWidth := len("Name")
	for _, d := range descs {
		if len(d.Name) > nameWidth {
			nameWidth = len(d.Name)
		}
	}

	fmt.Println("S: scalar, A: array, F: fixed shape")
	fmt.Printf("%-*s S A F Element   Shape\n", nameWidth, "Name")
	for _, d := range descs {
		scalar, arr, fixed := ' ', ' ', ' '
		shape := "-"
		switch d.Kind {
		case schema.KindScalar:
			scalar, fixed = 'S', 'F'
		case schema.KindArray:
			arr, fixed = 'A', 'F'
			shape = shapeString(d.CellShape)
		}
		fmt.Printf("%-*s %c %c %c %-9s %s\n", nameWidth, d.Name, scalar, arr, fixed, d.Element, shape)
	}
}

func shapeString(shape []int) string {
	parts := make([]string, len(shape))
	for i, n := range shape {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

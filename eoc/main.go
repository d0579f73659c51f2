package main

import (
	"bytes"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/urfave/cli.v1"

	"eo_compiler/compiler"
)

// eoc is a thin command line wrapper around the compiler. It only supplies
// input and output and forwards the exit status, the compiler itself never
// touches the process environment.

func main() {
	app := cli.NewApp()
	app.Name = "eoc"
	app.Usage = "compile EO source text into Java"
	app.ArgsUsage = "[file.eo]"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "output, o",
			Usage: "directory to write one .java file per declaration, stdout when unset",
		},
		cli.BoolFlag{
			Name:  "summary, s",
			Usage: "print a table of compiled declarations",
		},
	}
	app.Action = run
	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	input, err := openInput(ctx)
	if err != nil {
		color.Red("eoc: %v", err)
		return cli.NewExitError("", 1)
	}
	defer input.Close()

	var stdout bytes.Buffer
	program := newProgram(ctx, input, &stdout)
	if err := program.Compile(); err != nil {
		color.Red("eoc: %v", err)
		return cli.NewExitError("", 1)
	}
	if _, err := stdout.WriteTo(os.Stdout); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	if ctx.Bool("summary") {
		printSummary(ctx, program.Units())
	}
	return nil
}

func openInput(ctx *cli.Context) (io.ReadCloser, error) {
	if ctx.NArg() == 0 {
		return os.Stdin, nil
	}
	return os.Open(ctx.Args().First())
}

func newProgram(ctx *cli.Context, input io.Reader, stdout *bytes.Buffer) *compiler.Program {
	dir := ctx.String("output")
	if dir != "" {
		return compiler.NewDirectoryProgram(input, dir)
	}
	return compiler.NewProgram(input, func(name string) (io.Writer, error) {
		return stdout, nil
	})
}

func printSummary(ctx *cli.Context, units []compiler.UnitInfo) {
	table := tablewriter.NewWriter(os.Stderr)
	table.SetHeader([]string{"Declaration", "Kind", "Members", "Output"})
	dir := ctx.String("output")
	for _, unit := range units {
		output := "stdout"
		if dir != "" {
			output = unit.Name + compiler.JavaFileExtension
		}
		table.Append([]string{unit.Name, unit.Kind.String(), strconv.Itoa(unit.Members), output})
	}
	table.Render()
}

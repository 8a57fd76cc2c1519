package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	minilang "github.com/markmifsud2000/CPS2000/pkg"
)

// Exit codes, per spec.md §6: 0 on success or no argument, distinct
// non-zero codes for the two CLI-level failure modes, and a third for
// anything the pipeline itself rejects (lexical/syntax/semantic/runtime).
const (
	exitOK           = 0
	exitTooManyArgs  = 2
	exitFileNotOpen  = 3
	exitPipelineFail = 1
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("minilang", flag.ContinueOnError)
	configPath := fs.String("config", "minilang.yaml", "path to an optional ambient config file")
	if err := fs.Parse(args); err != nil {
		return exitTooManyArgs
	}

	rest := fs.Args()
	if len(rest) == 0 {
		return exitOK
	}
	if len(rest) > 1 {
		fmt.Fprintln(os.Stderr, "Expected one argument: source location")
		return exitTooManyArgs
	}

	sourcePath := rest[0]

	source, err := os.ReadFile(sourcePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrapf(err, "opening %s", sourcePath))
		return exitFileNotOpen
	}

	cfg, err := minilang.LoadConfig(resolveConfigPath(*configPath, sourcePath))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitPipelineFail
	}

	if err := runProgram(string(source), cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitPipelineFail
	}

	return exitOK
}

// resolveConfigPath prefers an explicit -config flag; if the caller left
// it at its default name, look for it next to the source file instead of
// the process's working directory.
func resolveConfigPath(configFlag, sourcePath string) string {
	if configFlag != "minilang.yaml" {
		return configFlag
	}
	return filepath.Join(filepath.Dir(sourcePath), "minilang.yaml")
}

func runProgram(source string, cfg minilang.Config) error {
	parser, err := minilang.NewParser(source)
	if err != nil {
		return err
	}

	program, err := parser.ParseProgram()
	if err != nil {
		return err
	}

	if cfg.XMLDumpEnabled {
		if err := dumpXML(program, cfg); err != nil {
			return err
		}
	}

	analyzer := minilang.NewSemanticAnalyzer()
	if err := analyzer.Check(program); err != nil {
		return err
	}

	interpreter := minilang.NewInterpreter(os.Stdout)
	interpreter.Run(program)

	return nil
}

func dumpXML(program *minilang.Program, cfg minilang.Config) error {
	f, err := os.Create(cfg.XMLDumpPath)
	if err != nil {
		return errors.Wrapf(err, "creating XML dump %s", cfg.XMLDumpPath)
	}
	defer f.Close()

	minilang.NewXMLPrinter(f, cfg.XMLIndent).VisitProgram(program)
	return nil
}

package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	goversion "github.com/caarlos0/go-version"
	"golang.org/x/tools/go/packages"

	"github.com/origadmin/recgen/internal/config"
	"github.com/origadmin/recgen/internal/directive"
	"github.com/origadmin/recgen/internal/engine"
	"github.com/origadmin/recgen/internal/host"
	"github.com/origadmin/recgen/internal/synth"
)

var (
	version   = "0.0.1"
	commit    = ""
	treeState = ""
	date      = ""
	builtBy   = ""
	debug     = flag.Bool("debug", false, "Enable debug logging")
	output    = flag.String("output", "gen", "Root directory for generated source files.")
	cfgFile   = flag.String("config", "", "Path to recgen.toml. Defaults to <source_directory>/recgen.toml.")
	logFile   = flag.String("log-file", "", "Path to a file where logs should be written. If empty, logs go to stderr.")
)

func main() {
	flag.Parse()

	var logWriter *os.File
	if *logFile != "" {
		var err error
		logWriter, err = os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			slog.Error("Failed to open log file", "file", *logFile, "error", err)
			os.Exit(1)
		}
		defer logWriter.Close()
	} else {
		logWriter = os.Stderr
	}

	logLevel := slog.LevelWarn
	if *debug {
		logLevel = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: logLevel,
	})))

	if len(flag.Args()) == 0 {
		v := buildVersion(version, commit, date, builtBy, treeState)
		fmt.Println(v.String())
		fmt.Println("Usage: recgen [options] <source_directory>")
		flag.PrintDefaults()
		return
	}

	sourceDir := flag.Arg(0)
	slog.Info("Starting recgen", "sourceDir", sourceDir)

	// --- 1. Load the directive package ---
	slog.Debug("Loading directive package...")
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax | packages.NeedImports | packages.NeedDeps | packages.NeedTypes | packages.NeedTypesInfo,
		Dir:  sourceDir,
	}
	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		slog.Error("Failed to load directive package", "error", err)
		os.Exit(1)
	}
	if packages.PrintErrors(pkgs) > 0 {
		slog.Warn("Type errors found in directive package (may be expected for types that recgen will generate)")
	}
	if len(pkgs) == 0 {
		slog.Error("No packages found in source directory", "sourceDir", sourceDir)
		os.Exit(1)
	}
	directivePkg := pkgs[0]

	// --- 2. Scan directives ---
	slog.Debug("Scanning for recgen directives...")
	env := host.NewEnv(sourceDir, pkgs...)
	round := directive.NewScanner(env).Scan(directivePkg)
	if len(round) == 0 {
		slog.Warn("No recgen directives found, no code will be generated", "package", directivePkg.PkgPath)
		return
	}

	// --- 3. Run the round ---
	cfgPath := *cfgFile
	if cfgPath == "" {
		cfgPath = filepath.Join(sourceDir, config.DefaultFileName)
	}
	reporter := engine.NewLogReporter()
	eng := engine.New(engine.Options{
		Targets:    env,
		Sink:       engine.NewFileSink(*output),
		Reporter:   reporter,
		Config:     config.NewLoader(cfgPath),
		Builders:   synth.NewBuilderSynthesizer(),
		Interfaces: synth.NewInterfaceSynthesizer(),
	})
	if _, err := eng.Process(round); err != nil {
		slog.Error("Internal error while processing directives", "error", err)
		os.Exit(1)
	}
	if n := reporter.Errors(); n > 0 {
		slog.Error("Generation finished with errors", "errors", n)
		os.Exit(1)
	}

	slog.Info("recgen finished successfully.")
}

func buildVersion(version, commit, date, builtBy, treeState string) goversion.Info {
	return goversion.GetVersionInfo(
		goversion.WithAppDetails(config.Application, config.Description, config.WebSite),
		func(i *goversion.Info) {
			i.ASCIIName = config.UI
			if commit != "" {
				i.GitCommit = commit
			}
			if version != "" {
				i.GitVersion = version
			}
			if treeState != "" {
				i.GitTreeState = treeState
			}
			if date != "" {
				i.BuildDate = date
			}
			if builtBy != "" {
				i.BuiltBy = builtBy
			}
		},
	)
}

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	. "github.com/evilsocket/vecops/common"

	"github.com/evilsocket/vecops/backend"
	"github.com/evilsocket/vecops/kernel"

	"github.com/evilsocket/islazy/log"
)

var (
	backendName = flag.String("backend", backend.DefaultName, "Computational backend, one of: "+strings.Join(backend.Names(), ", ")+".")
	logFile     = flag.String("log-file", "", "If filled, vecadd will log to this file.")
	logDebug    = flag.Bool("debug", false, "Enable debug logs.")

	// stats

	cpuProfile = flag.String("cpu-profile", "", "Write CPU profile to this file.")
	memProfile = flag.String("mem-profile", "", "Write memory profile to this file.")
)

func usageLine(prog string) string {
	return fmt.Sprintf("Usage: %s [options] <order of the vectors>", prog)
}

func usage() {
	fmt.Fprintln(flag.CommandLine.Output(), usageLine(os.Args[0]))
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	StartProfiling(cpuProfile)

	SetupSignals(func(_ os.Signal) { DoCleanup(cpuProfile, memProfile) })

	SetupLogging(logFile, logDebug)

	cleanup := func() {
		DoCleanup(cpuProfile, memProfile)
		TeardownLogging()
	}

	log.Debug("vecadd v%s is starting ...", Version)

	n, err := kernel.ParseSequentialArgs(flag.Args())
	if err != nil {
		if errors.Is(err, kernel.ErrUsage) {
			// options are listed by -h
			err = errors.New(usageLine(os.Args[0]))
		}
		ExitWithError(err, nil, cleanup)
	}

	impl, err := backend.Get(*backendName)
	if err != nil {
		ExitWithError(err, nil, cleanup)
	}

	log.Debug("using the %s backend", impl.Name())

	if _, err := kernel.NewSequential(impl, os.Stdout).Run(n); err != nil {
		ExitWithError(err, nil, cleanup)
	}

	cleanup()
}

package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	. "github.com/evilsocket/vecops/common"

	"github.com/evilsocket/vecops/backend"
	"github.com/evilsocket/vecops/comm"
	"github.com/evilsocket/vecops/kernel"
	"github.com/evilsocket/vecops/vector"

	"github.com/evilsocket/islazy/log"
)

var (
	backendName = flag.String("backend", backend.DefaultName, "Computational backend, one of: "+strings.Join(backend.Names(), ", ")+".")
	numWorkers  = flag.Int("np", 1, "Number of in-process workers or -1 to spawn one per logical CPU, ignored when built with MPI support.")
	scatter     = flag.Bool("scatter", false, "Generate the vectors on the coordinator and scatter them instead of generating each block locally.")
	logFile     = flag.String("log-file", "", "If filled, vecmpi will log to this file.")
	logDebug    = flag.Bool("debug", false, "Enable debug logs.")

	// stats

	cpuProfile = flag.String("cpu-profile", "", "Write CPU profile to this file.")
	memProfile = flag.String("mem-profile", "", "Write memory profile to this file.")
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [options] <order of the vectors> <scalar>\n", os.Args[0])
	flag.PrintDefaults()
}

// worker is executed by every member of the group.
func worker(c comm.Communicator, base int64) error {
	impl, selectErr := backend.Get(*backendName)
	if err := kernel.CheckForError(c, selectErr, "Select_backend", os.Stderr); err != nil {
		return err
	}

	k := kernel.NewDistributed(impl, os.Stdout, os.Stderr)
	k.Generator = vector.Random{Base: base}
	if *scatter {
		k.Mode = kernel.Scatter
	}

	if comm.IsRoot(c) {
		log.Debug("running on %d workers with the %s backend (%s mode)", c.Size(), impl.Name(), k.Mode)
	}

	_, err := k.Run(c, flag.Args())
	return err
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

	log.Debug("vecmpi v%s is starting (parallel:%v) ...", Version, comm.Parallel)

	if *numWorkers <= 0 {
		*numWorkers = runtime.NumCPU()
	}

	base := time.Now().Unix()
	if err := comm.Launch(*numWorkers, func(c comm.Communicator) error { return worker(c, base) }); err != nil {
		// the coordinator already printed the diagnostic
		ExitWithError(err, []error{kernel.ErrAborted}, cleanup)
	}

	cleanup()
}

package profiling

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/spf13/cobra"
)

// CobraProfiler encapsulates profiling state and flag management for Cobra apps.
// Everything it prints goes to the error stream; stdout belongs to the prompt.
type CobraProfiler struct {
	Profiler *Profiler

	cpuProfileFile *os.File
	cpuProfilePath string
	memProfilePath string
	timing         bool
	out            io.Writer
}

// NewCobraProfiler creates a new profiler for Cobra integration.
func NewCobraProfiler() *CobraProfiler {
	return &CobraProfiler{Profiler: New(false)}
}

// AddFlags adds the hidden profiling flags to the given Cobra command.
func (p *CobraProfiler) AddFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&p.cpuProfilePath, "cpu-profile", "", "Write CPU profile to file")
	flags.StringVar(&p.memProfilePath, "mem-profile", "", "Write memory profile to file")
	flags.BoolVar(&p.timing, "timing", false, "Print a timing summary on stderr")
	for _, name := range []string{"cpu-profile", "mem-profile", "timing"} {
		_ = flags.MarkHidden(name)
	}
}

// PreRun is intended to be used as a Cobra PreRunE hook.
// It initializes profiling based on the flags provided.
func (p *CobraProfiler) PreRun(cmd *cobra.Command, args []string) error {
	p.out = cmd.ErrOrStderr()
	p.Profiler = New(p.timing)

	if p.cpuProfilePath != "" {
		f, err := os.Create(p.cpuProfilePath)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		p.cpuProfileFile = f
		if err := pprof.StartCPUProfile(p.cpuProfileFile); err != nil {
			f.Close()
			p.cpuProfileFile = nil
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
	}
	return nil
}

// PostRun finalizes profiling, writing files and printing summaries. It is
// called whether or not the command succeeded.
func (p *CobraProfiler) PostRun() {
	out := p.out
	if out == nil {
		out = os.Stderr
	}

	if p.cpuProfileFile != nil {
		pprof.StopCPUProfile()
		p.cpuProfileFile.Close()
		p.cpuProfileFile = nil
		fmt.Fprintf(out, "CPU profile written to %s\n", p.cpuProfilePath)
	}

	if p.memProfilePath != "" {
		f, err := os.Create(p.memProfilePath)
		if err != nil {
			fmt.Fprintf(out, "could not create memory profile: %v\n", err)
			return
		}
		defer f.Close()
		runtime.GC() // get up-to-date statistics
		if err := pprof.WriteHeapProfile(f); err != nil {
			fmt.Fprintf(out, "could not write memory profile: %v\n", err)
			return
		}
		fmt.Fprintf(out, "Memory profile written to %s\n", p.memProfilePath)
	}

	p.Profiler.Summarize(out)
}

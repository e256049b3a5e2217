// Package profile adds runtime profiling to one-shot CLI runs.
//
// It supports CPU, heap, allocs, and goroutine profiles through
// command-line flags. Use [Config.RegisterFlags] to add CLI flags, then
// wrap command execution with a [Profiler]:
//
//	cfg := profile.NewConfig()
//	p := cfg.NewProfiler()
//
//	rootCmd := &cobra.Command{
//	    PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
//	        return p.Start()
//	    },
//	}
//
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//	err := rootCmd.Execute()
//	stopErr := p.Stop()
//
// Profiling is then enabled via flags like --cpu-profile=cpu.prof.
package profile

package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/polypheny/polytype/config"
	"github.com/polypheny/polytype/logs"
	"github.com/polypheny/polytype/parser"
	"github.com/polypheny/polytype/polytype"
)

// session is the state shared by all commands of one process, including repl lines.
type session struct {
	config   *config.Config
	factory  *polytype.Factory
	profiler interface{ Stop() }
}

func (s *session) initialize(configPath, profileMode string) error {
	if s.factory != nil {
		return nil
	}

	cfg, err := config.Read(configPath)
	if err != nil {
		return fmt.Errorf("couldn't read config: %w", err)
	}
	s.config = cfg

	enabled, err := config.LoggingEnabled(cfg)
	if err != nil {
		return err
	}
	if enabled {
		path, err := config.LogPath(cfg)
		if err != nil {
			return err
		}
		logs.InitializeFileLogger(path)
	} else {
		logs.Discard()
	}

	switch profileMode {
	case "":
	case "cpu":
		s.profiler = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook, profile.Quiet)
	case "mem":
		s.profiler = profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook, profile.Quiet)
	default:
		return fmt.Errorf("unknown profile mode %q, expected cpu or mem", profileMode)
	}
	if s.profiler != nil {
		log.Printf("started %s profiling", profileMode)
	}

	ts, err := config.TypeSystem(cfg)
	if err != nil {
		return fmt.Errorf("couldn't build type system: %w", err)
	}
	cacheSize, err := config.ResultCacheSize(cfg)
	if err != nil {
		return err
	}
	if cacheSize > 0 {
		if s.factory, err = polytype.NewFactoryWithResultCache(ts, cacheSize); err != nil {
			return fmt.Errorf("couldn't create factory: %w", err)
		}
		log.Printf("least restrictive result cache holds %d entries", cacheSize)
	} else {
		s.factory = polytype.NewFactory(ts)
	}
	return nil
}

func (s *session) close() {
	if s.profiler != nil {
		s.profiler.Stop()
		log.Printf("stopped profiling")
		s.profiler = nil
	}
	logs.CloseLogger()
}

// parseType reads a type argument, as a type string or as a JSON type document.
func (s *session) parseType(arg string, asJSON bool) (*polytype.Type, error) {
	if asJSON {
		t, err := parser.ParseJSON(s.factory, []byte(arg))
		if err != nil {
			return nil, fmt.Errorf("couldn't parse type document %s: %w", arg, err)
		}
		return t, nil
	}
	t, err := parser.ParseType(s.factory, arg)
	if err != nil {
		return nil, fmt.Errorf("couldn't parse type %s: %w", arg, err)
	}
	return t, nil
}

func (s *session) parseTypes(args []string, asJSON bool) ([]*polytype.Type, error) {
	out := make([]*polytype.Type, len(args))
	for i := range args {
		t, err := s.parseType(args[i], asJSON)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

type rootOptions struct {
	configPath   string
	profileMode  string
	describeJSON bool
}

func newRootCmd(s *session) *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:   "polytype",
		Short: "Inspect type inference and coercion rules.",
		Example: `polytype lrt INTEGER "DECIMAL(10, 2)"
polytype cast --coerce INTEGER VARCHAR
polytype describe "ROW(a INTEGER, b VARCHAR(3) ARRAY)"
polytype --describe-json describe '{"kind":"DECIMAL","precision":5,"scale":2}'`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.initialize(opts.configPath, opts.profileMode)
		},
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Configuration file, ~/.polytype/polytype.yml by default.")
	rootCmd.PersistentFlags().StringVar(&opts.profileMode, "profile", "", "Profile the run, cpu or mem.")
	rootCmd.PersistentFlags().BoolVar(&opts.describeJSON, "describe-json", false, "Read type arguments as JSON type documents.")

	rootCmd.AddCommand(
		newLeastRestrictiveCmd(s, opts),
		newCastCmd(s, opts),
		newAssignCmd(s, opts),
		newRulesCmd(),
		newDescribeCmd(s, opts),
		newGraphCmd(s, opts),
		newCacheCmd(),
		newReplCmd(s),
	)
	return rootCmd
}

func Execute(ctx context.Context) {
	s := &session{}
	err := newRootCmd(s).ExecuteContext(ctx)
	s.close()
	cobra.CheckErr(err)
}

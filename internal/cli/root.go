package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/gotas/internal/buildinfo"
)

func (a *App) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "tas",
		Short:         "Command-line client for the TACC Accounting System",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.setup()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.sync()
		},
	}
	root.SetIn(a.reader)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	// -c and --env-file are read by config.Load before the tree is built;
	// they are declared here so the parser accepts them.
	var ignored string
	pf := root.PersistentFlags()
	pf.StringVarP(&ignored, "config", "c", "", "JSON or YAML config file")
	pf.StringVar(&ignored, "env-file", "", "dotenv file to load instead of .env")
	pf.StringVar(&a.cfg.TAS.BaseURL, "url", a.cfg.TAS.BaseURL, "TAS API base URL")
	pf.StringVar(&a.cfg.TAS.Credentials.Username, "client-key", a.cfg.TAS.Credentials.Username, "TAS service account key")
	pf.StringVar(&a.cfg.Jobs.BaseURL, "jobs-url", a.cfg.Jobs.BaseURL, "jobs API base URL")
	pf.StringVar(&a.cfg.Jobs.Credentials.Username, "jobs-user", a.cfg.Jobs.Credentials.Username, "jobs API user")
	pf.StringVar(&a.cfg.DirectoryNamespace, "namespace", a.cfg.DirectoryNamespace, "SOAP namespace of the directory service")
	pf.StringVarP(&a.cfg.Output, "output", "o", a.cfg.Output, "output format: json or yaml")
	pf.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "log level: debug, info, warn or error")
	pf.StringVar(&a.cfg.LogFormat, "log-format", a.cfg.LogFormat, "log format: zap, text or json")

	root.AddCommand(
		a.authCommand(),
		a.userCommand(),
		a.passwordCommand(),
		a.institutionsCommand(),
		a.countriesCommand(),
		a.fieldsCommand(),
		a.projectsCommand(),
		a.allocationsCommand(),
		a.jobsCommand(),
		a.versionCommand(),
	)
	return root
}

func (a *App) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			buildinfo.PrintBuildData(a.out)
			return nil
		},
	}
}

func parseID(name, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, s)
	}
	return id, nil
}

package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/flowlog/internal/cli/output"
	"github.com/yndnr/flowlog/pkg/redact"
)

// PolicyCommand returns the policy subcommand group.
func PolicyCommand() *cli.Command {
	return &cli.Command{
		Name:  "policy",
		Usage: "Inspect the redaction policy",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "List every masked field by scope",
				Action: policyShow,
			},
			{
				Name:      "check",
				Usage:     "Report whether fields are masked in a scope",
				ArgsUsage: "FIELD...",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "flow", Usage: "Flow to check"},
					&cli.StringFlag{Name: "state", Usage: "Next state to check"},
				},
				Action: policyCheck,
			},
		},
	}
}

type policyRow struct {
	Scope string `json:"scope" yaml:"scope"`
	Field string `json:"field" yaml:"field"`
}

type checkRow struct {
	Field  string `json:"field" yaml:"field"`
	Scope  string `json:"scope" yaml:"scope"`
	Masked bool   `json:"masked" yaml:"masked"`
}

func loadPolicy(c *cli.Context) (*redact.Policy, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	return cfg.Logger.Policy()
}

func policyShow(c *cli.Context) error {
	policy, err := loadPolicy(c)
	if err != nil {
		return err
	}

	rows := make([]policyRow, 0)
	for _, r := range policy.Rules() {
		rows = append(rows, policyRow{Scope: r.ScopeName(), Field: r.Field})
	}
	return render(c, output.FormatTable, rows)
}

func policyCheck(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("policy check requires at least one FIELD", 2)
	}
	policy, err := loadPolicy(c)
	if err != nil {
		return err
	}

	scope := redact.Scope{Flow: c.String("flow"), State: c.String("state")}
	name := redact.Rule{Flow: scope.Flow, State: scope.State}.ScopeName()

	rows := make([]checkRow, 0, c.NArg())
	for _, field := range c.Args().Slice() {
		rows = append(rows, checkRow{
			Field:  field,
			Scope:  name,
			Masked: policy.Matches(field, scope),
		})
	}
	return render(c, output.FormatTable, rows)
}

package command

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/flowlog/internal/cli/output"
	"github.com/yndnr/flowlog/pkg/redact"
)

// RedactCommand returns the redact command.
func RedactCommand() *cli.Command {
	return &cli.Command{
		Name:  "redact",
		Usage: "Mask policy fields in a JSON payload",
		Description: "Reads a payload from --input or stdin and masks the fields the configured\n" +
			"policy selects for the given flow and state. Payloads that are not a JSON\n" +
			"object or array are printed unchanged.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "flow",
				Usage: "Flow the payload was logged from",
			},
			&cli.StringFlag{
				Name:  "state",
				Usage: "Next state of the flow",
			},
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "Read the payload from `FILE` instead of stdin",
			},
			&cli.BoolFlag{
				Name:  "count",
				Usage: "Report the number of masked fields on stderr",
			},
		},
		Action: redactAction,
	}
}

func redactAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	policy, err := cfg.Logger.Policy()
	if err != nil {
		return err
	}

	payload, err := readPayload(c)
	if err != nil {
		return err
	}

	scope := redact.Scope{Flow: c.String("flow"), State: c.String("state")}
	result, masked := redact.RedactCount(payload, scope, policy)

	if c.Bool("count") {
		fmt.Fprintf(c.App.ErrWriter, "masked %d field(s)\n", masked)
	}

	if s, ok := result.(string); ok {
		_, err := fmt.Fprintln(c.App.Writer, s)
		return err
	}
	return render(c, output.FormatJSON, result)
}

func readPayload(c *cli.Context) (string, error) {
	var r io.Reader = c.App.Reader
	if path := c.String("input"); path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

package cmd

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/openmint/platform-ledger/common/errs"
	ledger "github.com/openmint/platform-ledger/modules/ledger"
	"github.com/spf13/cobra"
)

const version = "v0.0.1"

var versions = map[string]string{
	"":       version,
	"ledger": ledger.Version,
}

type versionCmdOptions struct {
	Modules string
}

func NewVersionCommand() *cobra.Command {
	opts := &versionCmdOptions{}

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show platform-ledger version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return versionHandler(opts, cmd, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.Modules, "module", "", `Show version of a specific module. E.g. "ledger"`)

	return cmd
}

func versionHandler(opts *versionCmdOptions, _ *cobra.Command, _ []string) error {
	version, ok := versions[opts.Modules]
	if !ok {
		return errors.Wrap(errs.Unsupported, "Invalid module name")
	}
	fmt.Println(version)
	return nil
}

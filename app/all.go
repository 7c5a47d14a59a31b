package app

import (
	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
)

func AllCommands() *commander.Command {
	cmd := &commander.Command{
		UsageLine: "spinach",
		Short:     "a perceptron semantic role labeler",
		Subcommands: []*commander.Command{
			SRLTrainCmd(),
			SRLParseCmd(),
			SRLEvalCmd(),
		},
		Flag: *flag.NewFlagSet("spinach", flag.ExitOnError),
	}
	return cmd
}

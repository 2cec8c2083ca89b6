// Package shell is the REPL program: it wires the rc file, the history
// store, the highlighter and the evaluator into a cli.Engine.
package shell

import (
	"os"

	"github.com/synterm/synterm/pkg/cli"
	"github.com/synterm/synterm/pkg/errutil"
	"github.com/synterm/synterm/pkg/highlight"
	"github.com/synterm/synterm/pkg/logutil"
	"github.com/synterm/synterm/pkg/luaeval"
	"github.com/synterm/synterm/pkg/prog"
)

var logger = logutil.GetLogger("[shell] ")

// Program is the REPL program. Its fields supply defaults that the rc file
// and command-line flags can override.
type Program struct {
	Prompt    string
	Rules     []highlight.Rule
	Evaluator cli.Evaluator
}

func (p *Program) Run(fds [3]*os.File, f *prog.Flags, args []string) (err error) {
	if len(args) > 0 {
		return prog.BadUsage("arguments are not supported")
	}
	cfg, err := loadConfig(fds[2], f)
	if err != nil {
		return err
	}

	rules := p.Rules
	if len(cfg.Rules) > 0 {
		rules = cfg.HighlightRules()
	}
	hl, err := highlight.New(rules...)
	if err != nil {
		return err
	}

	eval := p.Evaluator
	if cfg.Lua != "" {
		le, err := luaeval.Load(cfg.Lua)
		if err != nil {
			return err
		}
		defer le.Close()
		eval = le.Eval
	}

	prompt := p.Prompt
	if cfg.Prompt != "" {
		prompt = cfg.Prompt
	}

	tty := cli.NewTTY(fds[0], fds[1])
	defer tty.Close()
	spec := cli.EngineSpec{TTY: tty, Evaluator: eval, Highlighter: hl, Prompt: prompt}
	if tty.IsInteractive() {
		st, openErr := openStore(cfg)
		if openErr != nil {
			return openErr
		}
		defer func() { err = errutil.Multi(err, st.Close()) }()
		spec.Store = st
	} else {
		logger.Println("input is not a terminal, evaluating a single line")
	}
	return cli.NewEngine(spec).Run()
}

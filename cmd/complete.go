package cmd

import (
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the glr command line for shell completion.
func Completion() *complete.Command {
	global := map[string]complete.Predictor{
		"year":        predict.Something,
		"report":      predict.Files("*.txt"),
		"ledger-file": predict.Files("*.json"),
		"v":           predict.Nothing,
	}
	sub := func(flags map[string]complete.Predictor, args complete.Predictor) *complete.Command {
		for k, v := range global {
			flags[k] = v
		}
		return &complete.Command{Flags: flags, Args: args}
	}
	return &complete.Command{
		Flags: global,
		Sub: map[string]*complete.Command{
			"parse": sub(map[string]complete.Predictor{
				"strict":        predict.Nothing,
				"max-ambiguous": predict.Something,
				"workers":       predict.Something,
			}, predict.Nothing),
			"validate": sub(map[string]complete.Predictor{"md": predict.Nothing}, predict.Nothing),
			"sheets": sub(map[string]complete.Predictor{
				"o":        predict.Dirs("*"),
				"format":   predict.Set{"csv", "md", "html"},
				"currency": predict.Something,
			}, predict.Nothing),
			"show":  sub(map[string]complete.Predictor{"currency": predict.Something}, predict.Something),
			"query": sub(map[string]complete.Predictor{}, predict.Something),
			"topic": sub(map[string]complete.Predictor{}, predict.Set{"readme", "report", "reconciliation", "commands", "*"}),
		},
	}
}

package main

import (
	"log"
	"os"

	"git.lost.host/meutraa/beatmap/internal/config"
)

func main() {
	if err := run(os.Args[1:]); nil != err {
		log.Fatalln(err)
	}
}

func run(args []string) error {
	command, err := config.Parse(args)
	if nil != err {
		return err
	}

	p := &Program{}
	if err := p.Init(); nil != err {
		return err
	}
	defer p.Deinit()

	switch command {
	case config.Analyze.FullCommand():
		return p.Analyze(*config.AnalyzeInput, *config.AnalyzeOutput, *config.Refresh)
	case config.Convert.FullCommand():
		return p.Convert(*config.ConvertInput, *config.ConvertOutput)
	case config.Validate.FullCommand():
		return p.Validate(*config.ValidateInput)
	case config.Tap.FullCommand():
		return p.Tap(*config.TapInput, *config.TapOutput)
	case config.History.FullCommand():
		return p.History(*config.HistoryLimit)
	}
	return nil
}

package main

import (
	"log"
	"os"

	"git.lost.host/meutraa/beatmap/internal/analysis"
	"git.lost.host/meutraa/beatmap/internal/audio"
	"git.lost.host/meutraa/beatmap/internal/beatmap"
	"git.lost.host/meutraa/beatmap/internal/config"
	"git.lost.host/meutraa/beatmap/internal/parser"
	"git.lost.host/meutraa/beatmap/internal/pipeline"
	"git.lost.host/meutraa/beatmap/internal/render"
	"git.lost.host/meutraa/beatmap/internal/store"
	"git.lost.host/meutraa/beatmap/internal/tap"
	"git.lost.host/meutraa/beatmap/internal/theme"
	"git.lost.host/meutraa/beatmap/internal/validate"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

var ErrValidationFailed = errors.New("validation failed")

type Program struct {
	Parser    parser.Parser
	Analyzer  analysis.Analyzer
	Validator validate.Validator
	Store     store.Store // nil when no database is configured
	Theme     theme.Theme
	Report    *render.Report

	Params analysis.Params
}

func (p *Program) Init() error {
	// Ensure our Default implementations are used as interfaces
	p.Parser = &parser.DefaultParser{}
	p.Theme = &theme.DefaultTheme{}
	p.Validator = &validate.DefaultValidator{LateFirstBeat: *config.LateFirstBeat}
	p.Report = &render.Report{Out: os.Stdout, Theme: p.Theme, Preview: *config.Preview}

	var err error
	p.Params, err = config.LoadParams(*config.ParamsFile)
	if nil != err {
		return err
	}
	p.Analyzer = &analysis.DefaultAnalyzer{Params: p.Params}

	if *config.Database != "" {
		s := &store.DefaultStore{}
		if err := s.Init(*config.Database); nil != err {
			return err
		}
		p.Store = s
	}
	return nil
}

func (p *Program) Deinit() {
	if nil != p.Store {
		p.Store.Deinit()
	}
}

func (p *Program) Analyze(input, output string, refresh bool) error {
	data, err := os.ReadFile(input)
	if nil != err {
		return errors.Wrapf(err, "unable to read %v", input)
	}
	log.Printf("Loading audio from: %v (%v)\n", input, humanize.Bytes(uint64(len(data))))
	sum := store.Sum(data, config.EncodeParams(p.Params))

	if nil != p.Store && !refresh {
		b, err := p.Store.LoadBeatMap(sum)
		switch {
		case nil == err:
			log.Println("Using the stored beat map, pass --refresh to analyze again")
			if err := beatmap.WriteFile(output, b); nil != err {
				return err
			}
			clip := &audio.Clip{SampleRate: b.SampleRate, Duration: b.DurationSeconds}
			p.Report.Analysis(clip, pipeline.FromMap(b), output)
			return nil
		case !errors.Is(err, store.ErrNotFound):
			return err
		}
	}

	clip, err := audio.Load(input, p.Params.SampleRate)
	if nil != err {
		return err
	}
	log.Println("Analyzing beats...")
	run, err := pipeline.Analyze(p.Analyzer, clip, p.Params.DownbeatPercentile)
	if nil != err {
		return err
	}
	if err := beatmap.WriteFile(output, run.Map); nil != err {
		return err
	}
	if nil != p.Store {
		if err := p.Store.SaveBeatMap(sum, input, run.Map); nil != err {
			return err
		}
	}
	p.Report.Analysis(clip, run, output)
	return nil
}

func (p *Program) Convert(input, output string) error {
	log.Printf("Loading annotations from: %v\n", input)
	ann, err := p.Parser.Parse(input)
	if nil != err {
		return err
	}
	run := pipeline.FromAnnotations(ann)
	if err := beatmap.WriteFile(output, run.Map); nil != err {
		return err
	}
	if nil != p.Store {
		data, err := os.ReadFile(input)
		if nil != err {
			return errors.Wrapf(err, "unable to read %v", input)
		}
		if err := p.Store.SaveBeatMap(store.Sum(data), input, run.Map); nil != err {
			return err
		}
	}
	p.Report.Conversion(run, output)
	return nil
}

// Validate reports on a beat map file. A failed verdict is returned as
// ErrValidationFailed after the report has been written.
func (p *Program) Validate(path string) error {
	data, err := os.ReadFile(path)
	if nil != err {
		return errors.Wrapf(err, "unable to read %v", path)
	}
	res, err := p.Validator.Check(data)
	if nil != err {
		return errors.Wrapf(err, "unable to parse %v", path)
	}
	p.Report.Validation(path, res)

	if nil != p.Store {
		if err := p.Store.SaveValidation(store.Sum(data), path, res.Passed, len(res.Warnings)); nil != err {
			return err
		}
	}
	if !res.Passed {
		return ErrValidationFailed
	}
	return nil
}

func (p *Program) Tap(input, output string) error {
	if !audio.Supported(input) {
		return errors.Wrap(audio.ErrUnsupportedFormat, input)
	}
	session := &tap.Session{
		Renderer: &render.DefaultRenderer{},
		Theme:    p.Theme,
		Labeler:  tap.NewLabeler(*config.FirstBar, *config.BeatsPerBar),
		Delay:    *config.TapDelay,
	}
	rows, err := session.Run(input)
	if nil != err {
		return err
	}
	if len(rows) == 0 {
		log.Println("No taps recorded, nothing written")
		return nil
	}
	if err := parser.WriteFile(output, rows); nil != err {
		return err
	}
	log.Printf("Wrote %v annotations to %v\n", len(rows), output)
	return nil
}

func (p *Program) History(limit int) error {
	if nil == p.Store {
		return errors.New("no database configured, use --db or BEATMAP_DB")
	}
	entries, err := p.Store.History(limit)
	if nil != err {
		return err
	}
	p.Report.History(entries)
	return nil
}

package config

import (
	"os"

	"git.lost.host/meutraa/beatmap/internal/analysis"
	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"
)

const (
	DefaultOutput      = "public/beat_data.json"
	DefaultAnnotations = "manual_annotations.csv"
)

var (
	App = kingpin.New("beatmap", "Build and check beat maps for rhythm spawn timing.").Version("0.3.0")

	Database   = App.Flag("db", "Store beat maps and verdicts in this sqlite file").Envar("BEATMAP_DB").String()
	ParamsFile = App.Flag("params", "YAML file with analysis parameters").Short('p').ExistingFile()
	Preview    = App.Flag("preview", "Beats listed in reports").Default("10").Short('n').Int()

	Analyze       = App.Command("analyze", "Derive a beat map from an audio file")
	AnalyzeInput  = Analyze.Arg("audio", "Audio file (mp3, ogg, wav)").Required().ExistingFile()
	AnalyzeOutput = Analyze.Arg("output", "Beat map file").Default(DefaultOutput).String()
	Refresh       = Analyze.Flag("refresh", "Ignore beat maps stored for the same audio").Bool()

	Convert       = App.Command("convert", "Derive a beat map from a TIME,LABEL annotation file")
	ConvertInput  = Convert.Arg("annotations", "Annotation file").Default(DefaultAnnotations).String()
	ConvertOutput = Convert.Arg("output", "Beat map file").Default(DefaultOutput).String()

	Validate      = App.Command("validate", "Check a beat map file")
	ValidateInput = Validate.Arg("beatmap", "Beat map file").Default(DefaultOutput).String()
	LateFirstBeat = Validate.Flag("late-first-beat", "Warn when the first beat comes later than this").Default("10s").Duration()

	Tap         = App.Command("tap", "Play a track and tap along to record annotations")
	TapInput    = Tap.Arg("audio", "Audio file (mp3, ogg, wav)").Required().ExistingFile()
	TapOutput   = Tap.Arg("output", "Annotation file").Default(DefaultAnnotations).String()
	FirstBar    = Tap.Flag("first-bar", "Number of the first bar").Default("101").Int()
	BeatsPerBar = Tap.Flag("beats-per-bar", "Start a new bar automatically after this many beats, 0 to only use the bar key").Default("0").Int()
	TapDelay    = Tap.Flag("delay", "Start delay").Default("1.5s").Short('d').Duration()

	History      = App.Command("history", "List stored beat maps and verdicts")
	HistoryLimit = History.Flag("limit", "Entries to list").Default("20").Int()
)

// Parse the command line and return the selected command.
func Parse(args []string) (string, error) {
	return App.Parse(args)
}

// LoadParams reads analysis parameters from YAML on top of the defaults.
// An empty path returns the defaults.
func LoadParams(path string) (analysis.Params, error) {
	params := analysis.DefaultParams()
	if path == "" {
		return params, nil
	}
	data, err := os.ReadFile(path)
	if nil != err {
		return params, errors.Wrap(err, "unable to read parameters")
	}
	if err := yaml.Unmarshal(data, &params); nil != err {
		return params, errors.Wrapf(err, "unable to parse %v", path)
	}
	return params, nil
}

// EncodeParams is the canonical form of the parameters, part of the store key.
func EncodeParams(p analysis.Params) []byte {
	data, err := yaml.Marshal(p)
	if nil != err {
		return nil
	}
	return data
}

// Package input collects optional environment readings from the operator.
// It stands in for a future sensor-polling collaborator: the engine accepts
// the same sparse snapshot either way.
package input

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/EddWithSauce/KabutechMushyModel/internal/model"
)

// prompt describes one optional reading.
type prompt struct {
	metric model.Metric
	label  string
	// validate rejects parsed values outside the metric's meaningful
	// domain. nil means any number is accepted.
	validate func(float64) error
}

func prompts() []prompt {
	return []prompt{
		{metric: model.MetricTemperature, label: "Temperature (°C)"},
		{metric: model.MetricHumidity, label: "Humidity (%RH)"},
		{metric: model.MetricLight, label: "Light intensity (lux)"},
		{metric: model.MetricSubstrateMoisture, label: "Substrate moisture (%)"},
		{metric: model.MetricSubstrateQuality, label: "Substrate quality score (0..1)", validate: unitInterval},
	}
}

func unitInterval(v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("value %g outside 0..1", v)
	}
	return nil
}

// Collect prompts for each optional reading on w and reads answers from r.
// A blank answer skips the metric — skipped metrics are simply absent from
// the snapshot, never substituted with sentinel values. Malformed numbers
// are re-prompted so the engine only ever sees valid readings. Running out
// of input skips all remaining metrics.
func Collect(r io.Reader, w io.Writer) model.EnvironmentSnapshot {
	sc := bufio.NewScanner(r)
	env := model.EnvironmentSnapshot{}

	for _, p := range prompts() {
		v, ok := ask(sc, w, p)
		if ok {
			env[p.metric] = v
		}
	}
	return env
}

// ask prompts for one reading until it gets a blank line (skip), a valid
// number, or input runs out.
func ask(sc *bufio.Scanner, w io.Writer, p prompt) (float64, bool) {
	for {
		fmt.Fprintf(w, "%s [Enter to skip]: ", p.label)
		if !sc.Scan() {
			return 0, false
		}
		s := strings.TrimSpace(sc.Text())
		if s == "" {
			return 0, false
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			fmt.Fprintf(w, "Not a number: %q. Try again or press Enter to skip.\n", s)
			continue
		}
		if p.validate != nil {
			if err := p.validate(v); err != nil {
				fmt.Fprintf(w, "Invalid reading: %v. Try again or press Enter to skip.\n", err)
				continue
			}
		}
		return v, true
	}
}

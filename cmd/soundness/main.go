package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"subsetsum-zk/params"
	"subsetsum-zk/proof"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

type sizeRow struct {
	n       int
	rounds  int
	bytes   int
	proveMS float64
}

// instance builds a satisfiable problem of length n; the last entry balances
// the signed sum of the others.
func instance(rng *rand.Rand, n int) ([]int64, []int64) {
	problem := make([]int64, n)
	assignment := make([]int64, n)
	var sum int64
	for i := 0; i < n-1; i++ {
		problem[i] = 1 + rng.Int63n(1000)
		assignment[i] = 1 - 2*rng.Int63n(2)
		sum += problem[i] * assignment[i]
	}
	if sum > 0 {
		problem[n-1], assignment[n-1] = sum, -1
	} else {
		problem[n-1], assignment[n-1] = -sum, 1
	}
	return problem, assignment
}

func parseSizes(s string) []int {
	var out []int
	for _, f := range strings.Split(s, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil || v < 1 || v > 255 {
			fmt.Fprintf(os.Stderr, "bad size %q (want 1..255)\n", f)
			os.Exit(2)
		}
		out = append(out, v)
	}
	return out
}

func newBoundChart(sizes []int, maxRounds int, target float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Soundness vs. rounds",
			Subtitle: "bits = -log2((1 - 1/(n+1))^k)",
		}),
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "subset-sum soundness", Width: "1200px", Height: "600px"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "rounds k", Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "soundness bits", Type: "value"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "inside"}, opts.DataZoom{Type: "slider"}),
	)
	step := max(1, maxRounds/200)
	var xs []int
	for k := step; k <= maxRounds; k += step {
		xs = append(xs, k)
	}
	line.SetXAxis(xs)
	for i, n := range sizes {
		items := make([]opts.LineData, len(xs))
		for j, k := range xs {
			items[j] = opts.LineData{Value: math.Round(proof.SoundnessBits(n, k)*100) / 100}
		}
		seriesOpts := []charts.SeriesOpts{charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)})}
		if i == 0 {
			seriesOpts = append(seriesOpts,
				charts.WithMarkLineNameYAxisItemOpts(opts.MarkLineNameYAxisItem{
					YAxis: target,
					Name:  fmt.Sprintf("%.0f-bit target", target),
				}),
				charts.WithMarkLineStyleOpts(opts.MarkLineStyle{
					Label:     &opts.Label{Show: opts.Bool(true)},
					LineStyle: &opts.LineStyle{Type: "dashed", Width: 1},
				}),
			)
		}
		line.AddSeries(fmt.Sprintf("n=%d", n), items, seriesOpts...)
	}
	return line
}

func newSizeChart(rows []sizeRow, target float64) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Measured proof size",
			Subtitle: fmt.Sprintf("rounds chosen for %.0f soundness bits", target),
		}),
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "500px"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "problem length n"}),
	)
	labels := make([]string, len(rows))
	kb := make([]opts.BarData, len(rows))
	ms := make([]opts.BarData, len(rows))
	for i, r := range rows {
		labels[i] = fmt.Sprintf("n=%d (k=%d)", r.n, r.rounds)
		kb[i] = opts.BarData{Value: math.Round(float64(r.bytes)/1024*100) / 100}
		ms[i] = opts.BarData{Value: math.Round(r.proveMS*100) / 100}
	}
	bar.SetXAxis(labels).
		AddSeries("proof KB", kb).
		AddSeries("prove ms", ms).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}))
	return bar
}

func main() {
	sizesFlag := flag.String("n", "4,8,16,32,64,128", "comma-separated problem lengths (1..255)")
	target := flag.Float64("bits", 40, "target soundness bits for the size measurements")
	maxRounds := flag.Int("max-rounds", 2000, "largest round count on the bound chart")
	hash := flag.String("hash", params.Default().Hash, "hash primitive")
	seed := flag.Int64("seed", 1, "instance generator seed")
	outPath := flag.String("out", "soundness.html", "output HTML file")
	flag.Parse()

	sizes := parseSizes(*sizesFlag)
	rng := rand.New(rand.NewSource(*seed))

	var rows []sizeRow
	for _, n := range sizes {
		problem, assignment := instance(rng, n)
		p := params.Params{NumQueries: proof.RoundsFor(n, *target), Hash: *hash, Workers: 1}
		pr, err := proof.NewProver(p, nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "prover: %v\n", err)
			os.Exit(1)
		}
		start := time.Now()
		pf, err := pr.Generate(problem, assignment)
		if err != nil {
			fmt.Fprintf(os.Stderr, "generate n=%d: %v\n", n, err)
			os.Exit(1)
		}
		elapsed := time.Since(start)
		if ok, err := proof.Verify(problem, pf); err != nil || !ok {
			fmt.Fprintf(os.Stderr, "self-check failed for n=%d: ok=%v err=%v\n", n, ok, err)
			os.Exit(1)
		}
		rows = append(rows, sizeRow{n: n, rounds: p.NumQueries, bytes: pf.Size(), proveMS: float64(elapsed.Microseconds()) / 1000})
		fmt.Printf("n=%-4d rounds=%-5d size=%-8d prove=%v\n", n, p.NumQueries, pf.Size(), elapsed)
	}

	page := components.NewPage().SetPageTitle("Subset-sum proof soundness")
	page.AddCharts(newBoundChart(sizes, *maxRounds, *target), newSizeChart(rows, *target))

	f, err := os.Create(*outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		fmt.Fprintf(os.Stderr, "render error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s\n", *outPath)
}

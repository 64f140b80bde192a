package curio

import (
	"fmt"
	"sync"
	"time"

	"github.com/Xaaaaii7/lliga-sub001/internal/logger"
)

// RunResult is the outcome of one catalog pass
type RunResult struct {
	// Findings holds the formatted findings in catalog order
	Findings []*CuriosityFinding
	// Saved counts the findings newly persisted this run
	Saved int
	// Skipped counts findings suppressed because they already existed
	Skipped int
	// Failed counts the metrics that errored or panicked
	Failed int
	// Empty counts the metrics with no eligible candidate
	Empty int
}

// evalOutcome carries one metric's result back from its goroutine
type evalOutcome struct {
	finding *CuriosityFinding
	err     error
	empty   bool
}

// RunMetrics evaluates the whole catalog against a scope, one goroutine per
// metric. A metric that errors or panics is logged and dropped, it never
// takes the run down with it. The returned findings follow catalog order
// regardless of completion order.
func RunMetrics(ds Datasource, scope Scope, date time.Time) *RunResult {
	metrics := Registry()
	outcomes := make([]evalOutcome, len(metrics))

	var wg sync.WaitGroup
	for i, metric := range metrics {
		wg.Add(1)
		go func(i int, metric *Metric) {
			defer wg.Done()
			outcomes[i] = evaluateOne(ds, scope, metric, date)
		}(i, metric)
	}
	wg.Wait()

	result := &RunResult{}
	for i, out := range outcomes {
		if out.err != nil {
			logger.Error("metric failed", metrics[i].Kind, out.err.Error())
			result.Failed++
			continue
		}
		if out.empty {
			logger.Debug("no eligible candidate for", metrics[i].Kind)
			result.Empty++
			continue
		}
		result.Findings = append(result.Findings, out.finding)
	}
	return result
}

// evaluateOne runs a single evaluator, converting panics into errors so the
// caller sees a uniform outcome
func evaluateOne(ds Datasource, scope Scope, metric *Metric, date time.Time) (out evalOutcome) {
	defer func() {
		if r := recover(); r != nil {
			out = evalOutcome{err: fmt.Errorf("panic in %s: %v", metric.Kind, r)}
		}
	}()

	cand, err := metric.Evaluate(ds, scope)
	if err != nil {
		return evalOutcome{err: err}
	}
	if cand == nil {
		return evalOutcome{empty: true}
	}
	return evalOutcome{finding: FormatFinding(metric, cand, scope, date)}
}

// RunAndPersist evaluates the catalog and writes every finding through the
// datasource sink. Findings already stored for the same day, metric and
// scope are skipped, so re-running within a day is harmless.
func RunAndPersist(ds Datasource, scope Scope, date time.Time) (*RunResult, error) {
	logger.Info("running curiosity metrics for", scope.String())
	result := RunMetrics(ds, scope, date)

	for _, finding := range result.Findings {
		saved, err := ds.SaveFinding(finding)
		if err != nil {
			logger.Error("failed to save finding", finding.MetricKind, err.Error())
			result.Failed++
			continue
		}
		if saved {
			result.Saved++
		} else {
			logger.Debug("finding already stored", finding.MetricKind, finding.Date)
			result.Skipped++
		}
	}

	logger.Info(fmt.Sprintf("run complete: %d findings, %d saved, %d skipped, %d empty, %d failed",
		len(result.Findings), result.Saved, result.Skipped, result.Empty, result.Failed))
	return result, nil
}

// PickDailyFinding selects the day's single curiosity from a run: the first
// finding in catalog order whose metric index matches the day of year
// rotation, falling back to the first finding when the slot is empty.
func PickDailyFinding(result *RunResult, date time.Time) *CuriosityFinding {
	if len(result.Findings) == 0 {
		return nil
	}
	slot := date.YearDay() % len(result.Findings)
	return result.Findings[slot]
}

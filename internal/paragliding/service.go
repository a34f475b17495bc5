package paragliding

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"skycheck/internal/atmosphere"
	"skycheck/internal/types"
)

// batchConcurrency caps parallel per-hour evaluations in AnalyzeBatch.
const batchConcurrency = 8

// Analyzer produces flight verdicts for forecast hours. It is stateless and
// safe for concurrent use.
type Analyzer struct{}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// AnalyzeHour evaluates a single forecast hour against a launch site: it
// derives the atmospheric profile, judges the three lift mechanisms and XC
// potential, runs the risk detectors, and folds everything into the aggregate
// verdict.
func (a *Analyzer) AnalyzeHour(sample types.HourlySample, site types.LaunchSite) types.ParaglidingAnalysis {
	profile := atmosphere.BuildProfile(sample, site.ElevationM)

	ridge := AnalyzeRidge(sample.WindDirectionDeg, sample.WindSpeedKmh, site.OrientationDeg)
	soaring := types.SoaringAnalysis{
		Ridge:   ridge,
		Thermal: AnalyzeThermalSoaring(profile.Thermal),
		Wave:    AnalyzeWave(profile.Wind),
	}

	xc := AnalyzeXC(profile.Thermal, profile.CloudBase.HeightAGLm, profile.Wind.AvgSpeedKmh)

	risks, score := AssessRisks(profile, ridge.AngleOffDeg, sample.WindGustKmh)
	suitability := SuitabilityForScore(score)

	return types.ParaglidingAnalysis{
		ID:             uuid.NewString(),
		Timestamp:      sample.Timestamp,
		Suitability:    suitability,
		Score:          score,
		Profile:        profile,
		Soaring:        soaring,
		XC:             xc,
		Risks:          risks,
		Warnings:       buildWarnings(sample, profile, ridge),
		Recommendation: Recommend(score, risks, profile.Shear.Level, suitability),
	}
}

// AnalyzeBatch evaluates a series of forecast hours concurrently. Results are
// joined by index so the output order matches the input series regardless of
// completion order. The context only bounds the batch; individual hour
// evaluations are pure CPU work and do not block.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, hourly []types.HourlySample, site types.LaunchSite) ([]types.ParaglidingAnalysis, error) {
	results := make([]types.ParaglidingAnalysis, len(hourly))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)
	for i, sample := range hourly {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = a.AnalyzeHour(sample, site)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// buildWarnings collects human-readable condition warnings that accompany the
// verdict but are not themselves scored risk factors.
func buildWarnings(sample types.HourlySample, profile types.AtmosphericProfile, ridge types.RidgeSoaring) []string {
	var warnings []string

	if ridge.LeeSide {
		warnings = append(warnings, "launch is in the lee of the current wind direction")
	}
	if sample.PrecipitationMM > 0 {
		warnings = append(warnings, fmt.Sprintf("precipitation forecast (%.1f mm/h)", sample.PrecipitationMM))
	}
	if profile.CAPE.Level == types.CAPEExtreme {
		warnings = append(warnings, "extreme convective energy; overdevelopment and storms likely")
	}
	if profile.CloudBase.Level == types.CloudBaseVeryLow {
		warnings = append(warnings, fmt.Sprintf("very low cloud base (%.0f m AGL)", profile.CloudBase.HeightAGLm))
	}
	if !profile.LFC.Reachable && profile.LFC.Exists {
		warnings = append(warnings, "level of free convection exists but is not reachable from this site")
	}

	return warnings
}

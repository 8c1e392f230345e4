package assessment

import (
	"github.com/okian/maturity/internal/domain/model"
	"github.com/okian/maturity/internal/domain/scoring"
)

const noDimension = "N/A"

// RadarPoint is one axis of the per-dimension breakdown chart.
type RadarPoint struct {
	Subject  string  `json:"subject"`
	Score    float64 `json:"score"`
	FullMark float64 `json:"fullMark"`
}

// DimensionScore names a dimension together with its score.
type DimensionScore struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Dashboard summarizes the latest assessment and the score trend.
type Dashboard struct {
	HasAssessments bool                 `json:"hasAssessments"`
	LatestID       string               `json:"latestId,omitempty"`
	LatestDate     string               `json:"latestDate,omitempty"`
	OverallScore   float64              `json:"overallScore"`
	Highest        DimensionScore       `json:"highest"`
	Lowest         DimensionScore       `json:"lowest"`
	Breakdown      []RadarPoint         `json:"breakdown"`
	Trend          []model.HistoryPoint `json:"trend"`
}

// Radar computes per-dimension scores of an assessment rounded for display.
func Radar(a model.Assessment) []RadarPoint {
	out := make([]RadarPoint, len(a.Dimensions))
	for i, d := range a.Dimensions {
		out[i] = RadarPoint{
			Subject:  d.Name,
			Score:    scoring.Round2(scoring.DimensionScore(d)),
			FullMark: scoring.MaxScore,
		}
	}
	return out
}

// Extremes returns the highest and lowest scoring dimensions. Ties resolve
// to the later dimension. An empty breakdown yields "N/A" with score 0.
func Extremes(points []RadarPoint) (highest, lowest DimensionScore) {
	if len(points) == 0 {
		none := DimensionScore{Name: noDimension}
		return none, none
	}
	hi, lo := points[0], points[0]
	for _, p := range points[1:] {
		if p.Score >= hi.Score {
			hi = p
		}
		if p.Score <= lo.Score {
			lo = p
		}
	}
	return DimensionScore{Name: hi.Subject, Score: hi.Score}, DimensionScore{Name: lo.Subject, Score: lo.Score}
}

// Dashboard builds the dashboard read model from the recorded history.
func (r *Recorder) Dashboard() Dashboard {
	latest, ok := r.Latest()
	if !ok {
		return Dashboard{
			Highest:   DimensionScore{Name: noDimension},
			Lowest:    DimensionScore{Name: noDimension},
			Breakdown: []RadarPoint{},
			Trend:     []model.HistoryPoint{},
		}
	}
	radar := Radar(latest)
	hi, lo := Extremes(radar)

	trend := r.History()
	for i := range trend {
		trend[i].Score = scoring.Round2(trend[i].Score)
	}
	return Dashboard{
		HasAssessments: true,
		LatestID:       latest.ID,
		LatestDate:     latest.Date,
		OverallScore:   scoring.Round2(latest.OverallScore),
		Highest:        hi,
		Lowest:         lo,
		Breakdown:      radar,
		Trend:          trend,
	}
}

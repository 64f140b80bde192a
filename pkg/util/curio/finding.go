package curio

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Xaaaaii7/lliga-sub001/pkg/util"
)

var _ Persistable = (*CuriosityFinding)(nil)

// Finding categories as rendered on the site
const (
	CategoryPartidos     = "partidos"
	CategoryJugadores    = "jugadores"
	CategoryEquipos      = "equipos"
	CategoryEstadisticas = "estadisticas"
)

// Subject kinds determine how the image key is derived
const (
	SubjectTeam   = "team"
	SubjectPlayer = "player"
	SubjectMatch  = "match"
)

// Candidate is what an evaluator emits when it finds a leader: the subject,
// its display name, and the raw metric value before display rounding.
type Candidate struct {
	SubjectID   int
	SubjectName string
	SubjectKind string
	Value       float64
}

// CuriosityFinding is the record handed to the persistence sink: one day's
// standout statistic, templated and ready for the renderer. The compound
// primary key makes re-running a day's job idempotent per metric and scope.
type CuriosityFinding struct {
	// Compound primary key fields
	Date          string `json:"date" column:"date" dbtype:"TEXT NOT NULL" primary:"true" index:"true"`
	MetricKind    string `json:"metricKind" column:"metric_kind" dbtype:"TEXT NOT NULL" primary:"true" index:"true"`
	Season        string `json:"season" column:"season" dbtype:"TEXT NOT NULL" primary:"true" index:"true"`
	CompetitionID int    `json:"competitionId" column:"competition_id" dbtype:"INTEGER NOT NULL DEFAULT -1" primary:"true"`

	Title       string  `json:"title" column:"title" dbtype:"TEXT NOT NULL"`
	Description string  `json:"description" column:"description" dbtype:"TEXT NOT NULL"`
	Category    string  `json:"category" column:"category" dbtype:"TEXT NOT NULL" index:"true"`
	SubjectKey  string  `json:"subjectKey" column:"subject_key" dbtype:"TEXT NOT NULL"`
	Value       float64 `json:"value" column:"value" dbtype:"REAL NOT NULL"`
	ImageKey    string  `json:"imageKey" column:"image_key" dbtype:"TEXT"`

	CreatedAt time.Time `json:"createdAt" column:"created_at" dbtype:"DATETIME DEFAULT CURRENT_TIMESTAMP"`
}

// GetPrimaryKey returns the compound primary key as a map
func (f *CuriosityFinding) GetPrimaryKey() map[string]interface{} {
	return map[string]any{
		"date":           f.Date,
		"metric_kind":    f.MetricKind,
		"season":         f.Season,
		"competition_id": f.CompetitionID,
	}
}

// SetPrimaryKey sets the compound primary key from a map
func (f *CuriosityFinding) SetPrimaryKey(pk map[string]interface{}) error {
	date, ok := pk["date"].(string)
	if !ok {
		return fmt.Errorf("primary key 'date' must be a string")
	}
	kind, ok := pk["metric_kind"].(string)
	if !ok {
		return fmt.Errorf("primary key 'metric_kind' must be a string")
	}
	season, ok := pk["season"].(string)
	if !ok {
		return fmt.Errorf("primary key 'season' must be a string")
	}
	competitionID, err := pkInt(pk, "competition_id")
	if err != nil {
		return err
	}
	f.Date = date
	f.MetricKind = kind
	f.Season = season
	f.CompetitionID = competitionID
	return nil
}

// GetTableName returns the table name for findings
func (f *CuriosityFinding) GetTableName() string {
	return "curiosity_findings"
}

// BeforeSave is called before saving the finding
func (f *CuriosityFinding) BeforeSave() error {
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now()
	}
	return nil
}

// AfterSave is called after saving the finding
func (f *CuriosityFinding) AfterSave() error {
	return nil
}

/////////////////////////////////////////////////////////////////////////
////// Finding Formatter
/////////////////////////////////////////////////////////////////////////

// FormatFinding renders a candidate plus its metric metadata into the
// finding record. The stored numeric value is the rounded display value,
// not the unrounded ratio, so what the site shows and what the row holds
// always agree.
func FormatFinding(metric *Metric, cand *Candidate, scope Scope, date time.Time) *CuriosityFinding {
	value := cand.Value
	if metric.Percent {
		value *= 100
	}
	value = roundToDecimalPlaces(value, metric.Decimals)

	valueStr := strconv.FormatFloat(value, 'f', metric.Decimals, 64)
	if metric.Percent {
		valueStr += "%"
	}

	description := strings.ReplaceAll(metric.Template, "{nombre}", cand.SubjectName)
	description = strings.ReplaceAll(description, "{valor}", valueStr)

	competitionID := scope.CompetitionID
	if competitionID == 0 {
		competitionID = -1
	}

	return &CuriosityFinding{
		Date:          date.Format("2006-01-02"),
		MetricKind:    metric.Kind,
		Season:        scope.Season,
		CompetitionID: competitionID,
		Title:         metric.Title,
		Description:   description,
		Category:      metric.Category,
		SubjectKey:    strconv.Itoa(cand.SubjectID),
		Value:         value,
		ImageKey:      ImageKey(cand.SubjectName, cand.SubjectKind),
	}
}

// ImageKey derives the asset lookup key from a subject's display name.
// Teams keep their spaces, players get hyphenated; the consuming renderer
// tolerates a missing asset either way.
func ImageKey(name string, subjectKind string) string {
	switch subjectKind {
	case SubjectPlayer:
		return util.Slugify(name, "-")
	case SubjectMatch:
		return ""
	default:
		return strings.ToLower(strings.TrimSpace(name))
	}
}

// roundToDecimalPlaces rounds by formatting and re-parsing, so the result
// is exactly the float the formatted string denotes
func roundToDecimalPlaces(value float64, places int) float64 {
	formatted := strconv.FormatFloat(value, 'f', places, 64)
	parsed, err := strconv.ParseFloat(formatted, 64)
	if err != nil {
		return value
	}
	return parsed
}

package pipeline

import (
	"time"

	"github.com/ajitpratap0/tabclean/pkg/json"
	"github.com/ajitpratap0/tabclean/pkg/table"
)

// StageReport describes one stage of a run
type StageReport struct {
	Name       string        `json:"name"`
	Duration   time.Duration `json:"duration_ns"`
	RowsIn     int           `json:"rows_in"`
	RowsOut    int           `json:"rows_out"`
	ColumnsIn  int           `json:"columns_in"`
	ColumnsOut int           `json:"columns_out"`
}

// Report summarizes a run. Dropped and added counts are totals over all
// stages: the normalizer is the only stage that removes rows or columns and
// the extractor adds one column per split.
type Report struct {
	RunID          string        `json:"run_id"`
	StartedAt      time.Time     `json:"started_at"`
	Duration       time.Duration `json:"duration_ns"`
	RowsIn         int           `json:"rows_in"`
	ColumnsIn      int           `json:"columns_in"`
	RowsOut        int           `json:"rows_out"`
	ColumnsOut     int           `json:"columns_out"`
	RowsDropped    int           `json:"rows_dropped"`
	ColumnsDropped int           `json:"columns_dropped"`
	ColumnsAdded   int           `json:"columns_added"`
	Stages         []StageReport `json:"stages"`
}

func newReport(runID string, in *table.Table) *Report {
	return &Report{
		RunID:     runID,
		StartedAt: time.Now(),
		RowsIn:    in.Rows(),
		ColumnsIn: in.Width(),
	}
}

func (r *Report) add(s StageReport) {
	r.Stages = append(r.Stages, s)
	if d := s.RowsIn - s.RowsOut; d > 0 {
		r.RowsDropped += d
	}
	switch d := s.ColumnsOut - s.ColumnsIn; {
	case d > 0:
		r.ColumnsAdded += d
	case d < 0:
		r.ColumnsDropped -= d
	}
}

func (r *Report) finish(out *table.Table) {
	r.Duration = time.Since(r.StartedAt)
	r.RowsOut = out.Rows()
	r.ColumnsOut = out.Width()
}

// Stage returns the report of the named stage
func (r *Report) Stage(name string) (StageReport, bool) {
	for _, s := range r.Stages {
		if s.Name == name {
			return s, true
		}
	}
	return StageReport{}, false
}

// JSON encodes the report
func (r *Report) JSON() ([]byte, error) {
	return json.Marshal(r)
}

package report

import (
	"encoding/json"

	"github.com/githubnext/pkgvet/pkg/timeutil"
	"github.com/githubnext/pkgvet/pkg/validation"
)

// Data is the JSON report document.
type Data struct {
	ID            string           `json:"id"`
	PackageID     string           `json:"package_id"`
	Type          validation.Mode  `json:"type"`
	Result        validation.State `json:"result"`
	StartTime     string           `json:"start_time"`
	EndTime       string           `json:"end_time"`
	Elapsed       int64            `json:"elapsed"`
	Tests         []TestReport     `json:"tests"`
	Prerequisites []TestReport     `json:"prerequisites,omitempty"`
}

// TestReport is the JSON record of one rule.
type TestReport struct {
	Kind        validation.Kind     `json:"kind"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Result      validation.State    `json:"result"`
	Outputs     []validation.Output `json:"outputs"`
	StartTime   string              `json:"start_time"`
	EndTime     string              `json:"end_time"`
	Elapsed     int64               `json:"elapsed"`
	Coerced     bool                `json:"coerced,omitempty"`
}

// BuildData converts a result into the JSON report document.
func BuildData(res *validation.Result) Data {
	return Data{
		ID:        res.ID,
		PackageID: res.PackageID,
		Type:      res.Mode,
		Result:    res.State,
		StartTime: res.StartTime.Format(TimeLayout),
		EndTime:   res.EndTime.Format(TimeLayout),
		Elapsed:   timeutil.ElapsedMillis(res.StartTime, res.EndTime),
		Tests:     testReports(res.Outcomes),

		Prerequisites: testReports(res.Prerequisites),
	}
}

func testReports(outcomes []*validation.Outcome) []TestReport {
	tests := make([]TestReport, 0, len(outcomes))
	for _, o := range outcomes {
		tests = append(tests, TestReport{
			Kind:        o.Kind,
			Name:        o.Name,
			Description: o.Description,
			Result:      o.State,
			Outputs:     o.Outputs,
			StartTime:   o.StartTime.Format(TimeLayout),
			EndTime:     o.EndTime.Format(TimeLayout),
			Elapsed:     timeutil.ElapsedMillis(o.StartTime, o.EndTime),
			Coerced:     o.Coerced,
		})
	}
	return tests
}

// RenderJSON renders the indented JSON report.
func RenderJSON(res *validation.Result) ([]byte, error) {
	return json.MarshalIndent(BuildData(res), "", "  ")
}

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Sample report inputs shared by the service, transport and CLI tests. The
// MPAN arrives in scientific notation the way spreadsheet exports write it.
const (
	SampleVariablesCSV = `Variable,Value
Site Name,Acme Works
Address,"1 Mill Lane, Leeds"
MPAN,1.1E+9
Savings,12.345
Capital Cost Value,-1500
Day units Current kWh,1000
Day Current P/kWh,20
Day units Optima kWh,800
Day Optima P/kWh,18
`

	SampleChartCSV = `Year,MPAN,Finance Payment,Purchase - Optima Cum. Savings
2025,1100000000,100,5
2026,1100000000,,6.5
2025,2200000000,999,999
`

	SampleTemplate = `<html><body><h1>{{site_name}}</h1><p>{{address}}</p><p>{{mpan}}</p>` +
		`<p>{{cost.current.day}} vs {{cost.optima.day}}</p>` +
		`<script>var years = {{chartYears}}; var pay = {{chartSeries.finance_payment}};</script></body></html>`

	// SampleMPAN is the expanded identifier of the sample site and the
	// document base name.
	SampleMPAN = "1100000000"
)

// ReportInputFiles are the on-disk locations written by WriteReportInputs.
type ReportInputFiles struct {
	Dir       string
	Variables string
	Chart     string
	Template  string
}

// WriteReportInputs writes the sample inputs into a fresh temp directory.
func WriteReportInputs(t *testing.T) ReportInputFiles {
	t.Helper()

	dir := t.TempDir()
	files := ReportInputFiles{
		Dir:       dir,
		Variables: filepath.Join(dir, "variables.csv"),
		Chart:     filepath.Join(dir, "chart.csv"),
		Template:  filepath.Join(dir, "template.html"),
	}

	for path, content := range map[string]string{
		files.Variables: SampleVariablesCSV,
		files.Chart:     SampleChartCSV,
		files.Template:  SampleTemplate,
	} {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("write fixture %s: %v", path, err)
		}
	}

	return files
}

package report

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/lumenfi/chaincheck/internal/models"
)

// JUnit XML schema types

// JUnitTestSuites is the top-level container.
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Time       float64          `xml:"time,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

// JUnitTestSuite maps to one network run.
type JUnitTestSuite struct {
	XMLName    xml.Name        `xml:"testsuite"`
	Name       string          `xml:"name,attr"`
	Tests      int             `xml:"tests,attr"`
	Failures   int             `xml:"failures,attr"`
	Skipped    int             `xml:"skipped,attr"`
	Time       float64         `xml:"time,attr"`
	Timestamp  string          `xml:"timestamp,attr"`
	Properties []JUnitProperty `xml:"properties>property,omitempty"`
	TestCases  []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase maps to one check.
type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Time      float64       `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	Skipped   *JUnitSkipped `xml:"skipped,omitempty"`
}

// JUnitFailure represents a failed check.
type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
}

// JUnitSkipped marks a check as skipped.
type JUnitSkipped struct {
	Message string `xml:"message,attr,omitempty"`
}

// JUnitProperty is a key-value metadata entry.
type JUnitProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// ConvertToJUnit maps a run report onto the JUnit XML schema for CI
// ingestion.
func ConvertToJUnit(rep *models.RunReport) *JUnitTestSuites {
	durationSec := float64(rep.Digest.DurationMs) / 1000.0

	suite := JUnitTestSuite{
		Name:      rep.Network,
		Tests:     rep.Digest.TotalChecks,
		Failures:  rep.Digest.Failed,
		Skipped:   rep.Digest.Skipped,
		Time:      durationSec,
		Timestamp: rep.StartedAt.Format(time.RFC3339),
		Properties: []JUnitProperty{
			{Name: "endpoint", Value: rep.Endpoint},
			{Name: "run_id", Value: rep.RunID},
			{Name: "success_rate", Value: fmt.Sprintf("%.4f", rep.Digest.SuccessRate)},
		},
	}

	for _, res := range rep.Results {
		suite.TestCases = append(suite.TestCases, convertResult(rep.Network, res))
	}

	return &JUnitTestSuites{
		Tests:      rep.Digest.TotalChecks,
		Failures:   rep.Digest.Failed,
		Time:       durationSec,
		TestSuites: []JUnitTestSuite{suite},
	}
}

func convertResult(network string, res models.CheckResult) JUnitTestCase {
	tc := JUnitTestCase{
		Name:      res.Name,
		Classname: network,
		Time:      float64(res.DurationMs) / 1000.0,
	}

	switch res.Status() {
	case models.StatusFailed:
		failureType := "CheckFailure"
		if res.Required {
			failureType = "RequiredCheckFailure"
		}
		tc.Failure = &JUnitFailure{
			Message: res.Error,
			Type:    failureType,
		}
	case models.StatusSkipped:
		tc.Skipped = &JUnitSkipped{Message: res.Error}
	}

	return tc
}

// RenderJUnit produces the JUnit XML document body.
func RenderJUnit(rep *models.RunReport) ([]byte, error) {
	data, err := xml.MarshalIndent(ConvertToJUnit(rep), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JUnit XML: %w", err)
	}
	return append([]byte(xml.Header), data...), nil
}

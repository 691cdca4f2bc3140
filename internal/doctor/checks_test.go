package doctor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type mockCheck struct {
	name     string
	category string
	result   CheckResult
}

func (m *mockCheck) Name() string     { return m.name }
func (m *mockCheck) Category() string { return m.category }
func (m *mockCheck) Run() CheckResult { return m.result }

func TestCheckStatus_String(t *testing.T) {
	tests := []struct {
		status CheckStatus
		want   string
	}{
		{StatusPass, "pass"},
		{StatusWarn, "warn"},
		{StatusFail, "fail"},
		{CheckStatus(99), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.status.String())
	}
}

func TestCheckStatus_MarshalText(t *testing.T) {
	b, err := StatusWarn.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "warn", string(b))

	var s CheckStatus
	assert.NoError(t, s.UnmarshalText([]byte("fail")))
	assert.Equal(t, StatusFail, s)
	assert.Error(t, s.UnmarshalText([]byte("maybe")))
}

func TestRunAll_PreservesOrder(t *testing.T) {
	checks := []Check{
		&mockCheck{name: "a", category: CategoryConfig, result: CheckResult{Name: "a", Status: StatusPass}},
		&mockCheck{name: "b", category: CategoryProbe, result: CheckResult{Name: "b", Status: StatusFail}},
	}

	results := RunAll(checks)

	assert.Len(t, results, 2)
	assert.Equal(t, "a", results[0].Name)
	assert.Equal(t, "b", results[1].Name)
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name     string
		statuses []CheckStatus
		want     string
		failures bool
		issues   bool
	}{
		{"all pass", []CheckStatus{StatusPass, StatusPass}, "Everything looks good", false, false},
		{"one warning", []CheckStatus{StatusPass, StatusWarn}, "1 issue found", false, true},
		{"mixed", []CheckStatus{StatusFail, StatusWarn, StatusPass}, "2 issues found", true, true},
		{"empty", nil, "Everything looks good", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := make([]CheckResult, len(tt.statuses))
			for i, s := range tt.statuses {
				results[i] = CheckResult{Status: s}
			}
			assert.Equal(t, tt.want, Summary(results))
			assert.Equal(t, tt.failures, HasFailures(results))
			assert.Equal(t, tt.issues, HasIssues(results))
		})
	}
}

func TestCountByStatus(t *testing.T) {
	counts := CountByStatus([]CheckResult{
		{Status: StatusPass}, {Status: StatusPass}, {Status: StatusFail},
	})
	assert.Equal(t, 2, counts[StatusPass])
	assert.Equal(t, 0, counts[StatusWarn])
	assert.Equal(t, 1, counts[StatusFail])
}

package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReportAdd(t *testing.T) {
	var report Report
	report.Add(Result{Index: 0, Outcome: OutcomeUpdated})
	report.Add(Result{Index: 1, Outcome: OutcomeMissing})
	report.Add(Result{Index: 2, Outcome: OutcomeSkipped})
	report.Add(Result{Index: 3, Outcome: OutcomeUpdated})

	assert.Equal(t, 2, report.Updated)
	assert.Equal(t, 1, report.Missing)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 4, report.Total())
	assert.Len(t, report.Results, 4)
}

func TestReportFilter(t *testing.T) {
	var report Report
	report.Add(Result{Index: 0, Outcome: OutcomeUpdated})
	report.Add(Result{Index: 1, Outcome: OutcomeMissing})
	report.Add(Result{Index: 2, Outcome: OutcomeUpdated})

	updated := report.Filter(OutcomeUpdated)
	if assert.Len(t, updated, 2) {
		assert.Equal(t, 0, updated[0].Index)
		assert.Equal(t, 2, updated[1].Index)
	}
	assert.Empty(t, report.Filter(OutcomeSkipped))
	assert.Len(t, report.Filter(""), 3)
}

func TestChapterAccessors(t *testing.T) {
	title := "Foo"
	ch := Chapter{Title: &title}

	assert.Equal(t, "Foo", ch.TitleText())
	assert.Equal(t, "", ch.LogoURLText())
	assert.Equal(t, "-", ch.DisplayID())

	assert.Equal(t, "42", Chapter{ID: RawValue(`42`)}.DisplayID())
	assert.Equal(t, "abc", Chapter{ID: RawValue(`"abc"`)}.DisplayID())
	assert.Equal(t, "-", Chapter{ID: RawValue(`null`)}.DisplayID())
}

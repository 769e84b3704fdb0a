package payrollrun

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Enumerates every status and asserts the exact action set, matching the
// lifecycle table in entity.go.
func TestAllowedActions(t *testing.T) {
	cases := []struct {
		status Status
		want   []Action
	}{
		{StatusDraft, []Action{ActionCalculate, ActionDelete}},
		{StatusCalculated, []Action{ActionCalculate, ActionApprove, ActionDelete}},
		{StatusApproved, []Action{ActionExport}},
		{StatusExported, []Action{ActionExport}},
		{StatusCancelled, []Action{}},
	}
	for _, c := range cases {
		t.Run(string(c.status), func(t *testing.T) {
			assert.Equal(t, c.want, AllowedActions(c.status))
		})
	}
}

func TestCanPerform(t *testing.T) {
	all := []Action{ActionCalculate, ActionApprove, ActionExport, ActionDelete}
	legal := map[Status]map[Action]bool{
		StatusDraft:      {ActionCalculate: true, ActionDelete: true},
		StatusCalculated: {ActionCalculate: true, ActionApprove: true, ActionDelete: true},
		StatusApproved:   {ActionExport: true},
		StatusExported:   {ActionExport: true},
		StatusCancelled:  {},
	}

	for status, actions := range legal {
		run := Run{Status: status}
		for _, a := range all {
			assert.Equal(t, actions[a], run.CanPerform(a),
				"status=%s action=%s", status, a)
		}
	}
}

func TestCanPerform_UnknownStatus(t *testing.T) {
	run := Run{Status: Status("bogus")}
	assert.False(t, run.CanPerform(ActionCalculate))
	assert.False(t, run.CanPerform(ActionDelete))
}

package jseval

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	report, err := Run(context.Background(), `
		window["a"](1, "two", {three: [3]});
		if (window["missing"]) { window["missing"]() }
		console.warn("careful", 42);
		console.log("hello");
		b(null);
	`, "a", "b")
	require.NoError(t, err)
	want := &Report{
		Calls: []Call{
			{Callback: "a", Args: []any{int64(1), "two", map[string]any{"three": []any{int64(3)}}}},
			{Callback: "b", Args: []any{nil}},
		},
		Warnings: []string{"careful 42"},
		Logs:     []string{"hello"},
	}
	if diff := cmp.Diff(want, report); diff != "" {
		t.Errorf("unexpected report (-want +got):\n%s", diff)
	}
	assert.True(t, report.Called("a"))
	assert.False(t, report.Called("missing"))
	assert.Equal(t, `a([1 two map[three:[3]]]); b([<nil>]); warning: careful 42`, report.String())
}

func TestRunEmptyName(t *testing.T) {
	report, err := Run(context.Background(), `window[""]("")`, "")
	require.NoError(t, err)
	require.Len(t, report.Calls, 1)
	assert.Equal(t, []any{""}, report.Calls[0].Args)
}

func TestRunErrors(t *testing.T) {
	_, err := Run(context.Background(), `window["a"b"](1)`, "a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "script failed")

	_, err = Run(context.Background(), `throw new Error("boom")`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = Run(ctx, `while (true) {}`)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestReportStringEmpty(t *testing.T) {
	assert.Equal(t, "nothing happened", (&Report{}).String())
}

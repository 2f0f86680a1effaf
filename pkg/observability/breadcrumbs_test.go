package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordBreadcrumbOrderAndTrim(t *testing.T) {
	defer ClearBreadcrumbs()
	ClearBreadcrumbs()

	for i := 0; i < MaxBreadcrumbs+5; i++ {
		RecordBreadcrumb("ui", "tick", nil)
	}

	crumbs := GetBreadcrumbs()
	require.Len(t, crumbs, MaxBreadcrumbs)
}

func TestClearBreadcrumbs(t *testing.T) {
	defer ClearBreadcrumbs()
	RecordBreadcrumb("ui", "one", nil)
	require.NotEmpty(t, GetBreadcrumbs())

	ClearBreadcrumbs()
	assert.Empty(t, GetBreadcrumbs())
}

package util

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNowKeepsMonotonicReading(t *testing.T) {
	now := Now()
	require.Contains(t, now.String(), "m=", "monotonic reading stripped")
	require.False(t, strings.Contains(now.Round(0).String(), "m="))

	later := Now()
	require.GreaterOrEqual(t, later.Sub(now), time.Duration(0))
}

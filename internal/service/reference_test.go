package service

import (
    "strconv"
    "strings"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestNewReference(t *testing.T) {
    now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
    ref, err := NewReference(now)
    require.NoError(t, err)

    ts := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
    assert.True(t, strings.HasPrefix(ref, "IMD-"+ts))
    assert.Len(t, ref, len("IMD-")+len(ts)+referenceRandLen)

    suffix := ref[len("IMD-")+len(ts):]
    for _, r := range suffix {
        assert.Contains(t, referenceCharset, string(r))
    }
}

func TestNewReferenceUniqueWithinMillisecond(t *testing.T) {
    now := time.Now()
    seen := make(map[string]struct{})
    for i := 0; i < 200; i++ {
        ref, err := NewReference(now)
        require.NoError(t, err)
        seen[ref] = struct{}{}
    }
    assert.Greater(t, len(seen), 1, "random suffix should vary")
}

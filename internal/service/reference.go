package service

import (
    "crypto/rand"
    "strconv"
    "strings"
    "time"
)

const (
    referencePrefix  = "IMD"
    referenceCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
    referenceRandLen = 4
)

// NewReference builds a booking reference of the form
// IMD-<uppercase base36 millis><4 random chars>.  The timestamp keeps
// references roughly sortable; the crypto/rand suffix makes collisions
// within the same millisecond negligible.
func NewReference(now time.Time) (string, error) {
    ts := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
    buf := make([]byte, referenceRandLen)
    if _, err := rand.Read(buf); err != nil {
        return "", err
    }
    for i := range buf {
        buf[i] = referenceCharset[int(buf[i])%len(referenceCharset)]
    }
    return referencePrefix + "-" + ts + string(buf), nil
}

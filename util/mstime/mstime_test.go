package mstime

import (
	"testing"
	"time"
)

func TestToTime(t *testing.T) {
	ms := int64(1_600_000_000_123)
	converted := ToTime(ms)
	if converted.Unix() != 1_600_000_000 || converted.Nanosecond() != 123_000_000 {
		t.Fatalf("ToTime(%d) = %s", ms, converted)
	}
	if converted.Location() != time.UTC {
		t.Fatalf("ToTime did not return UTC")
	}

	before := time.Now().Add(-time.Second)
	now := ToTime(Now())
	if now.Before(before) || now.After(time.Now().Add(time.Second)) {
		t.Fatalf("Now is %s, the clock says %s", now, time.Now())
	}
}

package gsm

import (
	"time"

	"github.com/warthog618/sms/encoding/tpdu"
)

// TimestampLength is the length of an encoded TP-SCTS in bytes.
const TimestampLength = 7

// Timestamp is a TP-SCTS according to [TS23040] 9.2.3.11: year, month, day, hour, minute, second
// and time zone as semi-octets.
type Timestamp [TimestampLength]byte

// gregorianCycle is the number of years after which the Gregorian calendar repeats itself
const gregorianCycle = 400

// EncodeTimestamp encodes the given time in its own location. The time zone is expressed in quarters of an hour.
// Years before 0 are encoded with the last two digits of the year, counted from year 0 on. A time zone offset
// that cannot be expressed in 79 quarters is replaced by UTC.
func EncodeTimestamp(t time.Time) Timestamp {
	if year := t.Year(); year < 0 {
		t = t.AddDate((-year/gregorianCycle+1)*gregorianCycle, 0, 0)
	}

	scts := tpdu.Timestamp{Time: t}
	encoded, err := scts.MarshalBinary()
	if err != nil {
		scts.Time = t.UTC()
		encoded, _ = scts.MarshalBinary()
	}

	var result Timestamp
	copy(result[:], encoded)
	return result
}

// Encode this timestamp
func (t Timestamp) Encode(bytes []byte) []byte {
	return append(bytes, t[:]...)
}

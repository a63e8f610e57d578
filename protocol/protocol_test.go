package protocol

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func relationRequest(today, birthday, delta int64, relation Relation) *QrRequest {
	return &QrRequest{
		Qr: PublicQr{
			Today:    today,
			Delta:    delta,
			Relation: relation,
		},
		Private: Private{
			Birthday: birthday,
		},
	}
}

func TestIsRelationValid(t *testing.T) {
	tt := []struct {
		name     string
		today    int64
		birthday int64
		delta    int64
		relation Relation
		valid    bool
	}{
		{"older satisfied", 2020, 2001, 18, RelationOlder, true},
		{"younger satisfied", 2020, 2001, 21, RelationYounger, true},
		{"older unsatisfied", 2020, 2010, 18, RelationOlder, false},
		{"older threshold day refused", 2020, 2000, 20, RelationOlder, false},
		{"younger threshold day refused", 2020, 2000, 20, RelationYounger, false},
		{"older one past threshold", 2021, 2000, 20, RelationOlder, true},
		{"younger one before threshold", 2019, 2000, 20, RelationYounger, true},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			rq := relationRequest(tc.today, tc.birthday, tc.delta, tc.relation)
			assert.Equal(t, tc.valid, rq.IsRelationValid())
		})
	}
}

func TestRelationStringStrict(t *testing.T) {
	for _, r := range []Relation{RelationOlder, RelationYounger} {
		parsed, err := ParseRelation(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, parsed)
	}

	// out-of-range values must not render as a valid claim
	_, err := ParseRelation(Relation(7).String())
	require.Error(t, err)
}

func TestDayNumber(t *testing.T) {
	epoch := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, int64(2440588), DayNumber(epoch))

	y2k := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, int64(2451545), DayNumber(y2k))

	// intra-day time does not move the day number
	assert.Equal(t, DayNumber(y2k), DayNumber(y2k.Add(23*time.Hour+59*time.Minute)))
}

func TestDayNumberRoundTrip(t *testing.T) {
	for _, date := range []string{"1969-07-20", "1970-01-01", "2000-02-29", "2026-08-26"} {
		parsed, err := ParseDate(date)
		require.NoError(t, err)
		day := DayNumber(parsed)
		assert.Equal(t, parsed, DateFromDayNumber(day))
	}
}

func TestAgeToDelta(t *testing.T) {
	born, err := ParseDate("2001-06-15")
	require.NoError(t, err)
	birthday := DayNumber(born)

	delta := AgeToDelta(birthday, 18, RelationOlder)

	anniversary, err := ParseDate("2019-06-15")
	require.NoError(t, err)
	assert.Equal(t, DayNumber(anniversary)-birthday, delta)

	// monotonic in years
	assert.Greater(t, AgeToDelta(birthday, 21, RelationOlder), delta)
}

func TestAgeToDeltaLeapDayAnniversary(t *testing.T) {
	born, err := ParseDate("2004-02-29")
	require.NoError(t, err)
	birthday := DayNumber(born)

	// the 19th anniversary lands in a non-leap year and rolls to Mar 1
	anniversary, err := ParseDate("2023-03-01")
	require.NoError(t, err)
	assert.Equal(t, DayNumber(anniversary)-birthday, AgeToDelta(birthday, 19, RelationOlder))

	// the 20th lands on the leap day itself
	anniversary, err = ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, DayNumber(anniversary)-birthday, AgeToDelta(birthday, 20, RelationOlder))
}

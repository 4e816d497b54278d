package sundisk

import(
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateFromFilename(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"eit jpg", "/data/195/20020115_0113_eit195_1024.jpg", "2002/01/15", false},
		{"relative png", "20111231_x.png", "2011/12/31", false},
		{"leap day", "20040229_a.jpg", "2004/02/29", false},
		{"no underscore keeps extension in token", "20020115.jpg", "", true},
		{"not a date", "notadate_foo.jpg", "", true},
		{"bad month", "20021301_a.jpg", "", true},
		{"bad day", "20030229_a.jpg", "", true},
		{"short", "2002011_a.jpg", "", true},
		{"underscore in dir only", "/data/2002_01/foo.jpg", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := DateFromFilename(tt.path)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrUnparseableFilename), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.String())
		})
	}
}

func TestCalendarDate(t *testing.T) {
	d := mustDate(t, "2002/01/05")
	assert.Equal(t, CalendarDate{2002, time.January, 5}, d)
	assert.Equal(t, "20020105", d.Token())
	assert.Equal(t, time.Date(2002, 1, 5, 0, 0, 0, 0, time.UTC), d.Time())

	later := mustDate(t, "2002/02/01")
	assert.True(t, d.Before(later))
	assert.False(t, later.Before(d))
	assert.False(t, d.Before(d))

	assert.True(t, CalendarDate{}.IsZero())
	assert.False(t, d.IsZero())

	tok, err := ParseDateToken("20020105")
	require.NoError(t, err)
	assert.Equal(t, d, tok)

	_, err = ParseCalendarDate("2002-01-05")
	assert.Error(t, err)

	// Usable as a map key
	m := map[CalendarDate]int{d: 1}
	assert.Equal(t, 1, m[tok])
}

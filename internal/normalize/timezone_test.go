package normalize

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/juancuellarsol/ogilvy/internal/errors"
)

func TestLoadZones(t *testing.T) {
	z, err := LoadZones("", "")
	require.NoError(t, err)
	assert.False(t, z.Enabled())

	z, err = LoadZones("America/Bogota", " UTC ")
	require.NoError(t, err)
	assert.True(t, z.Enabled())
	assert.Equal(t, "America/Bogota", z.From.String())

	_, err = LoadZones("Mars/Olympus", "")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTypeConfig, apperrors.TypeOf(err))
	assert.Contains(t, err.Error(), "Mars/Olympus")
}

func TestZones_Apply(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		in      Timestamp
		want    Timestamp
		wantErr bool
	}{
		{
			name: "no zones passes through",
			in:   Naive(2025, 9, 5, 18, 5, 0),
			want: Naive(2025, 9, 5, 18, 5, 0),
		},
		{
			name: "no zones reduces zoned source to utc",
			in:   Timestamp{Time: time.Date(2025, 9, 21, 20, 7, 0, 0, time.FixedZone("", -5*3600)), Valid: true, Zoned: true},
			want: Naive(2025, 9, 22, 1, 7, 0),
		},
		{
			name: "localize then convert",
			from: "America/Bogota",
			to:   "Europe/Madrid",
			in:   Naive(2025, 9, 5, 18, 5, 0),
			want: Naive(2025, 9, 6, 1, 5, 0),
		},
		{
			name: "from only keeps wall clock",
			from: "America/Bogota",
			in:   Naive(2025, 9, 5, 18, 5, 0),
			want: Naive(2025, 9, 5, 18, 5, 0),
		},
		{
			name: "nonexistent wall time is missing",
			from: "America/New_York",
			to:   "UTC",
			in:   Naive(2025, 3, 9, 2, 30, 0),
			want: MissingTimestamp,
		},
		{
			name: "ambiguous wall time is missing",
			from: "America/New_York",
			to:   "UTC",
			in:   Naive(2025, 11, 2, 1, 30, 0),
			want: MissingTimestamp,
		},
		{
			name: "missing stays missing",
			from: "America/New_York",
			in:   MissingTimestamp,
			want: MissingTimestamp,
		},
		{
			name: "zoned source converts without from",
			to:   "America/Bogota",
			in:   Timestamp{Time: time.Date(2025, 9, 5, 23, 5, 0, 0, time.UTC), Valid: true, Zoned: true},
			want: Naive(2025, 9, 5, 18, 5, 0),
		},
		{
			name:    "naive value with to only is a config error",
			to:      "UTC",
			in:      Naive(2025, 9, 5, 18, 5, 0),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			z, err := LoadZones(tt.from, tt.to)
			require.NoError(t, err)

			got, err := z.Apply(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, apperrors.ErrTypeConfig, apperrors.TypeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocalize(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	got, ok := Localize(time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC), ny)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 7, 1, 16, 0, 0, 0, time.UTC), got.UTC())

	_, ok = Localize(time.Date(2025, 3, 9, 2, 0, 0, 0, time.UTC), ny)
	assert.False(t, ok)
}

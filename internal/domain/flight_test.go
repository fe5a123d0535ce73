package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFlight(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		price   float64
		start   float64
		end     float64
		wantErr bool
	}{
		{
			name:  "valid absolute flight",
			from:  "airport0",
			to:    "airport1",
			price: 75.5,
			start: 360,
			end:   450,
		},
		{
			name:  "zero price is allowed",
			from:  "airport0",
			to:    "airport1",
			price: 0,
			start: 0,
			end:   10,
		},
		{
			name:    "end equal to start",
			from:    "airport0",
			to:      "airport1",
			price:   10,
			start:   100,
			end:     100,
			wantErr: true,
		},
		{
			name:    "end before start",
			from:    "airport0",
			to:      "airport1",
			price:   10,
			start:   100,
			end:     90,
			wantErr: true,
		},
		{
			name:    "negative price",
			from:    "airport0",
			to:      "airport1",
			price:   -1,
			start:   0,
			end:     10,
			wantErr: true,
		},
		{
			name:    "missing origin",
			to:      "airport1",
			price:   10,
			start:   0,
			end:     10,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFlight(tt.from, tt.to, tt.price, tt.start, tt.end)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidFlight))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.end-tt.start, f.Duration())
			assert.Equal(t, tt.price, f.Price)
		})
	}
}

func TestFlight_String(t *testing.T) {
	f := Flight{FromAirport: "airport0", ToAirport: "airport3", Price: 61.237, StartTime: 360.4, EndTime: 421.6}
	assert.Equal(t, "(360,422) airport0 -> airport3: 61.24", f.String())
}

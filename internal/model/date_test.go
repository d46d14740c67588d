package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDate_Truncation(t *testing.T) {
	tests := []struct {
		name      string
		date      Date
		wantMonth int
		wantYear  int
	}{
		{name: "mid month", date: 20230415, wantMonth: 202304, wantYear: 2023},
		{name: "first of year", date: 20240101, wantMonth: 202401, wantYear: 2024},
		{name: "invalid month is kept", date: 20231399, wantMonth: 202313, wantYear: 2023},
		{name: "zero", date: 0, wantMonth: 0, wantYear: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMonth, tt.date.Month())
			assert.Equal(t, tt.wantYear, tt.date.Year())
		})
	}
}

func TestDateFromTime(t *testing.T) {
	d := DateFromTime(time.Date(2023, time.April, 5, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, Date(20230405), d)
	assert.Equal(t, "20230405", d.String())
}

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAfterHours(t *testing.T) {
	tests := []struct {
		time string
		want bool
	}{
		{time: "05:59", want: true},
		{time: "06:00", want: false},
		{time: "12:00", want: false},
		{time: "22:00", want: false},
		{time: "22:01", want: true},
		{time: "23:30", want: true},
		{time: "00:00", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.time, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAfterHours(MustTimeOfDay(tt.time)))
		})
	}
}

func TestIsAcceptableLayover(t *testing.T) {
	tests := []struct {
		name    string
		gap     int
		arrival string
		want    bool
	}{
		{name: "daytime one hour", gap: 60, arrival: "10:00", want: true},
		{name: "daytime two hours", gap: 120, arrival: "10:00", want: true},
		{name: "daytime ninety minutes", gap: 90, arrival: "14:30", want: true},
		{name: "daytime too short", gap: 59, arrival: "10:00", want: false},
		{name: "daytime thirty minutes rejected", gap: 30, arrival: "21:00", want: false},
		{name: "daytime too long", gap: 121, arrival: "10:00", want: false},
		{name: "after hours short wait", gap: 20, arrival: "23:00", want: true},
		{name: "after hours at the limit", gap: 30, arrival: "23:00", want: true},
		{name: "after hours zero wait", gap: 0, arrival: "23:00", want: true},
		{name: "after hours too long", gap: 31, arrival: "23:00", want: false},
		{name: "early morning counts as after hours", gap: 15, arrival: "05:30", want: true},
		{name: "boundary 06:00 uses daytime rule", gap: 30, arrival: "06:00", want: false},
		{name: "boundary 22:00 uses daytime rule", gap: 90, arrival: "22:00", want: true},
		{name: "negative gap", gap: -10, arrival: "10:00", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAcceptableLayover(tt.gap, MustTimeOfDay(tt.arrival)))
		})
	}
}

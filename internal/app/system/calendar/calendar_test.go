package calendar_test

import (
	"testing"
	"time"

	"github.com/dalemusser/wardshift/internal/app/system/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Shape(t *testing.T) {
	anchors := []time.Time{
		time.Date(2024, time.February, 10, 15, 0, 0, 0, time.UTC), // leap month
		time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC),  // 1st is a Sunday
		time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC),  // fits in four rows
		time.Date(2025, time.March, 31, 23, 0, 0, 0, time.UTC),    // needs six rows
	}

	for _, anchor := range anchors {
		t.Run(anchor.Format("2006-01"), func(t *testing.T) {
			days := calendar.Generate(anchor).Days()
			require.Len(t, days, 42)
			assert.Equal(t, time.Sunday, days[0].Date.Weekday())

			for i := 1; i < len(days); i++ {
				assert.Equal(t, days[i-1].Date.AddDate(0, 0, 1), days[i].Date, "cell %d not consecutive", i)
			}
			for _, d := range days {
				if d.InMonth {
					assert.Equal(t, anchor.Month(), d.Date.Month())
					assert.Equal(t, anchor.Year(), d.Date.Year())
				}
			}
		})
	}
}

func TestGenerate_StartsOnFirstWhenSunday(t *testing.T) {
	g := calendar.Generate(time.Date(2024, time.September, 17, 0, 0, 0, 0, time.UTC))
	first := g[0][0]
	assert.Equal(t, 1, first.Date.Day())
	assert.True(t, first.InMonth)
}

func TestGenerate_LeadingAndTrailingCells(t *testing.T) {
	// March 2024 starts on a Friday.
	g := calendar.Generate(time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, time.February, 25, 0, 0, 0, 0, time.UTC), g[0][0].Date)
	assert.False(t, g[0][0].InMonth)
	assert.True(t, g[0][5].InMonth)
	assert.Equal(t, 1, g[0][5].Date.Day())

	inMonth := 0
	for _, d := range g.Days() {
		if d.InMonth {
			inMonth++
		}
	}
	assert.Equal(t, 31, inMonth)
}

func TestGenerate_Idempotent(t *testing.T) {
	anchor := time.Date(2024, time.July, 20, 8, 30, 0, 0, time.UTC)
	assert.Equal(t, calendar.Generate(anchor), calendar.Generate(anchor))
}

func TestGenerate_NoTodayWithoutMark(t *testing.T) {
	for _, d := range calendar.Generate(time.Now()).Days() {
		assert.False(t, d.IsToday)
	}
}

func TestMarkToday(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Bangkok")
	require.NoError(t, err)

	g := calendar.Generate(time.Date(2024, time.March, 1, 0, 0, 0, 0, loc))
	// 2024-03-14 20:00 UTC is already 2024-03-15 in Bangkok.
	now := time.Date(2024, time.March, 14, 20, 0, 0, 0, time.UTC)
	marked := calendar.MarkToday(g, now)

	count := 0
	for _, d := range marked.Days() {
		if d.IsToday {
			count++
			assert.Equal(t, 15, d.Date.Day())
		}
	}
	assert.Equal(t, 1, count)

	// The input grid is left untouched.
	for _, d := range g.Days() {
		assert.False(t, d.IsToday)
	}
}

func TestWeeks(t *testing.T) {
	weeks := calendar.Generate(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)).Weeks()
	require.Len(t, weeks, calendar.Rows)
	for _, w := range weeks {
		require.Len(t, w, calendar.Cols)
		assert.Equal(t, time.Sunday, w[0].Date.Weekday())
	}
}

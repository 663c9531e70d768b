package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/dalemusser/wardshift/internal/app/system/wardload"
	"github.com/dalemusser/wardshift/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var ict = time.FixedZone("ICT", 7*60*60)

func TestBuildCalendar(t *testing.T) {
	now := time.Date(2024, time.May, 15, 3, 0, 0, 0, time.UTC)

	out, err := buildCalendar("2024-05", ict, now)
	require.NoError(t, err)

	require.Len(t, out.Weeks, 6)
	assert.Equal(t, "2024-04-28", out.Weeks[0][0].Date)
	assert.False(t, out.Weeks[0][0].InMonth)
	assert.Equal(t, "2024-05-01", out.Weeks[0][3].Date)
	assert.True(t, out.Weeks[2][3].IsToday, "May 15 is the Wednesday of the third row")

	_, err = buildCalendar("2024-13", ict, now)
	assert.Error(t, err)
}

func TestBuildCalendarDefaultsToCurrentMonth(t *testing.T) {
	// 2024-05-31 20:00 UTC is already June 1 in ICT.
	now := time.Date(2024, time.May, 31, 20, 0, 0, 0, time.UTC)
	out, err := buildCalendar("", ict, now)
	require.NoError(t, err)
	assert.Equal(t, "2024-06", out.Month)
}

func TestPrintCalendarTable(t *testing.T) {
	now := time.Date(2024, time.May, 15, 3, 0, 0, 0, time.UTC)
	out, err := buildCalendar("2024-05", ict, now)
	require.NoError(t, err)

	var buf bytes.Buffer
	printCalendarTable(&buf, out)
	assert.Contains(t, buf.String(), "[15]")
	assert.Contains(t, buf.String(), " Su   Mo")
}

func TestWriteOutput(t *testing.T) {
	v := sheetOutput{State: wardload.StateGenerated, Document: models.AssignmentDocument{
		ID: "ER-2024-05-01", Department: "ER", Date: "2024-05-01",
		Assignments: models.NewDutyPeriods(),
	}}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeOutput(&buf, "json", v))
		var got map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "generated", got["state"])
	})

	t.Run("yaml keeps json field names", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeOutput(&buf, "yaml", v))
		var got struct {
			State    string `yaml:"state"`
			Document struct {
				Department string `yaml:"department"`
			} `yaml:"document"`
		}
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "generated", got.State)
		assert.Equal(t, "ER", got.Document.Department)
	})
}

func TestResolveDate(t *testing.T) {
	now := time.Date(2024, time.May, 31, 20, 0, 0, 0, time.UTC)

	d, err := resolveDate("", ict, now)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", models.ISODate(d))

	d, err = resolveDate("2024-02-29", ict, now)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", models.ISODate(d))

	_, err = resolveDate("29/02/2024", ict, now)
	assert.Error(t, err)
}

type fakeLoader struct {
	sheet     wardload.Sheet
	saveErr   error
	saved     int
	regenned  int
	deleted   []string
	lastSaver string
}

func (f *fakeLoader) Delete(_ context.Context, dept, iso string) (int64, error) {
	f.deleted = append(f.deleted, dept+"/"+iso)
	f.sheet = wardload.Sheet{State: wardload.StateGenerated}
	return 1, nil
}

func (f *fakeLoader) LoadSheet(context.Context, string, time.Time) wardload.Sheet {
	return f.sheet
}

func (f *fakeLoader) Save(_ context.Context, dept string, date time.Time, periods models.DutyPeriods, savedBy string) (models.AssignmentDocument, error) {
	f.saved++
	f.lastSaver = savedBy
	if f.saveErr != nil {
		return models.AssignmentDocument{}, f.saveErr
	}
	iso := models.ISODate(date)
	return models.AssignmentDocument{ID: models.AssignmentDocID(dept, iso), Department: dept, Date: iso, Assignments: periods, SavedBy: savedBy}, nil
}

func (f *fakeLoader) Regenerate(ctx context.Context, dept string, date time.Time, savedBy string) (models.AssignmentDocument, error) {
	f.regenned++
	return f.Save(ctx, dept, date, models.NewDutyPeriods(), savedBy)
}

func TestDutysheet(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2024, time.May, 1, 0, 0, 0, 0, ict)
	generated := wardload.Sheet{State: wardload.StateGenerated, Document: models.AssignmentDocument{Assignments: models.NewDutyPeriods()}}

	t.Run("show only", func(t *testing.T) {
		f := &fakeLoader{sheet: generated}
		out, err := dutysheet(ctx, f, f, "ER", date, sheetOptions{})
		require.NoError(t, err)
		assert.Equal(t, wardload.StateGenerated, out.State)
		assert.Zero(t, f.saved)
	})

	t.Run("save generated", func(t *testing.T) {
		f := &fakeLoader{sheet: generated}
		out, err := dutysheet(ctx, f, f, "ER", date, sheetOptions{Save: true, SavedBy: "ops"})
		require.NoError(t, err)
		assert.Equal(t, wardload.StateSaved, out.State)
		assert.Equal(t, "ER-2024-05-01", out.Document.ID)
		assert.Equal(t, "ops", f.lastSaver)
	})

	t.Run("save leaves existing alone", func(t *testing.T) {
		f := &fakeLoader{sheet: wardload.Sheet{State: wardload.StateExisting}}
		out, err := dutysheet(ctx, f, f, "ER", date, sheetOptions{Save: true})
		require.NoError(t, err)
		assert.Equal(t, wardload.StateExisting, out.State)
		assert.Zero(t, f.saved)
	})

	t.Run("save failure", func(t *testing.T) {
		f := &fakeLoader{sheet: generated, saveErr: errors.New("down")}
		_, err := dutysheet(ctx, f, f, "ER", date, sheetOptions{Save: true})
		assert.Error(t, err)
	})

	t.Run("save refuses a degraded sheet", func(t *testing.T) {
		degraded := generated
		degraded.Degraded = true
		f := &fakeLoader{sheet: degraded}
		_, err := dutysheet(ctx, f, f, "ER", date, sheetOptions{Save: true})
		assert.ErrorIs(t, err, errSheetDegraded)
		assert.Zero(t, f.saved)
	})

	t.Run("discard", func(t *testing.T) {
		f := &fakeLoader{sheet: wardload.Sheet{State: wardload.StateExisting}}
		out, err := dutysheet(ctx, f, f, "ER", date, sheetOptions{Discard: true})
		require.NoError(t, err)
		assert.Equal(t, []string{"ER/2024-05-01"}, f.deleted)
		assert.Equal(t, wardload.StateGenerated, out.State)
	})

	t.Run("regenerate", func(t *testing.T) {
		f := &fakeLoader{sheet: wardload.Sheet{State: wardload.StateExisting}}
		out, err := dutysheet(ctx, f, f, "ER", date, sheetOptions{Regenerate: true})
		require.NoError(t, err)
		assert.Equal(t, wardload.StateSaved, out.State)
		assert.Equal(t, 1, f.regenned)
	})
}

func TestDecodeSchedule(t *testing.T) {
	ym := models.YearMonth{Year: 2024, Month: time.February}

	t.Run("yaml", func(t *testing.T) {
		raw := []byte(`
schedule:
  A:
    "0": {top: ช, bottom: ""}
    "28": {top: ด, bottom: ""}
cellStyles:
  A-0-top: {textColor: "#FF0000", backgroundColor: "#FFFFFF"}
`)
		doc, err := decodeSchedule(raw, ".yaml", "ER", ym)
		require.NoError(t, err)
		assert.Equal(t, "ER-2024-02", doc.ID)
		assert.Equal(t, "ช", doc.Slots("A", 0).Top)
		assert.Equal(t, "ด", doc.Slots("A", 28).Top)
		st, ok := doc.Style(models.CellKey{StaffID: "A", DayIndex: 0, Slot: models.SlotTop})
		require.True(t, ok)
		assert.Equal(t, "#FF0000", st.TextColor)
	})

	t.Run("json pins department and month", func(t *testing.T) {
		raw := []byte(`{"id":"X-1999-01","department":"X","yearMonth":"1999-01","schedule":{"A":{"1":{"top":"บ","bottom":""}}}}`)
		doc, err := decodeSchedule(raw, ".json", "ER", ym)
		require.NoError(t, err)
		assert.Equal(t, "ER", doc.Department)
		assert.Equal(t, "2024-02", doc.YearMonth)
	})

	t.Run("day outside month", func(t *testing.T) {
		raw := []byte(`{"schedule":{"A":{"29":{"top":"ช","bottom":""}}}}`)
		_, err := decodeSchedule(raw, ".json", "ER", ym)
		assert.ErrorIs(t, err, models.ErrDayOutOfRange)
	})

	t.Run("bad style key", func(t *testing.T) {
		raw := []byte(`{"cellStyles":{"A-0-middle":{"textColor":"#000000","backgroundColor":"#FFFFFF"}}}`)
		_, err := decodeSchedule(raw, ".json", "ER", ym)
		assert.Error(t, err)
	})
}

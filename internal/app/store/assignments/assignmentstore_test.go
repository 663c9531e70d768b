package assignmentstore_test

import (
	"testing"
	"time"

	assignmentstore "github.com/dalemusser/wardshift/internal/app/store/assignments"
	"github.com/dalemusser/wardshift/internal/domain/models"
	"github.com/dalemusser/wardshift/internal/testutil"
	"github.com/google/go-cmp/cmp"
)

func sampleSheet() models.DutyPeriods {
	p := models.NewDutyPeriods()
	p.Morning.Nurses = []models.Assignment{{ID: "A-morning", MemberID: "A", Bed: "1-6", Duty: "หัวหน้าเวร"}}
	p.Morning.Assistants = []models.Assignment{{ID: "B-morning", MemberID: "B", Team: "TEAM A", ERT: "เคลื่อนย้ายกู้ชีพ"}}
	p.Night.Nurses = []models.Assignment{{ID: "C-night", MemberID: "C"}}
	return p
}

func TestStore_Get_Missing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := assignmentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, found, err := store.Get(ctx, "ward5", "2024-03-01")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if found {
		t.Error("expected found=false")
	}
}

func TestStore_SaveReload_RoundTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := assignmentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	saved, err := store.Save(ctx, "ward5", "2024-03-01", sampleSheet(), "nurse-A")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if saved.ID != "ward5-2024-03-01" {
		t.Errorf("ID: got %q", saved.ID)
	}

	got, found, err := store.Get(ctx, "ward5", "2024-03-01")
	if err != nil || !found {
		t.Fatalf("Get: found=%v err=%v", found, err)
	}
	if diff := cmp.Diff(sampleSheet(), got.Assignments); diff != "" {
		t.Errorf("assignments changed through the store (-want +got):\n%s", diff)
	}
	if got.SavedBy != "nurse-A" || got.Department != "ward5" || got.Date != "2024-03-01" {
		t.Errorf("metadata: %+v", got)
	}
	if got.SavedAt == nil || !got.SavedAt.Equal(*saved.SavedAt) {
		t.Errorf("SavedAt: got %v, want %v", got.SavedAt, saved.SavedAt)
	}
}

func TestStore_Save_OverwritesWholeDocument(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := assignmentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Save(ctx, "ward5", "2024-03-01", sampleSheet(), "first"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	second := models.NewDutyPeriods()
	second.Afternoon.Nurses = []models.Assignment{{ID: "D-afternoon", MemberID: "D"}}
	if _, err := store.Save(ctx, "ward5", "2024-03-01", second, "second"); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	got, _, err := store.Get(ctx, "ward5", "2024-03-01")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if diff := cmp.Diff(second, got.Assignments); diff != "" {
		t.Errorf("expected last write to win (-want +got):\n%s", diff)
	}
	if got.SavedBy != "second" {
		t.Errorf("SavedBy: got %q", got.SavedBy)
	}
}

func TestStore_Save_NilListsStoredEmpty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := assignmentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Save(ctx, "ward5", "2024-03-02", models.DutyPeriods{}, ""); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, _, _ := store.Get(ctx, "ward5", "2024-03-02")
	if got.Assignments.Morning.Nurses == nil || got.Assignments.Night.Assistants == nil {
		t.Error("lists should come back non-nil")
	}
}

func TestStore_ListDates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := assignmentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, d := range []string{"2024-03-15", "2024-03-01", "2024-04-01", "2024-02-29"} {
		if _, err := store.Save(ctx, "ward5", d, models.NewDutyPeriods(), ""); err != nil {
			t.Fatalf("Save %s failed: %v", d, err)
		}
	}
	if _, err := store.Save(ctx, "ward6", "2024-03-05", models.NewDutyPeriods(), ""); err != nil {
		t.Fatalf("Save ward6 failed: %v", err)
	}

	dates, err := store.ListDates(ctx, "ward5", models.YearMonth{Year: 2024, Month: time.March})
	if err != nil {
		t.Fatalf("ListDates failed: %v", err)
	}
	if diff := cmp.Diff([]string{"2024-03-01", "2024-03-15"}, dates); diff != "" {
		t.Errorf("ListDates (-want +got):\n%s", diff)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := assignmentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, _ = store.Save(ctx, "ward5", "2024-03-01", sampleSheet(), "")
	n, err := store.Delete(ctx, "ward5", "2024-03-01")
	if err != nil || n != 1 {
		t.Fatalf("Delete: n=%d err=%v", n, err)
	}
	_, found, _ := store.Get(ctx, "ward5", "2024-03-01")
	if found {
		t.Error("expected sheet gone after Delete")
	}
}

package catalogstore_test

import (
	"errors"
	"testing"

	catalogstore "github.com/dalemusser/wardshift/internal/app/store/shiftcatalog"
	"github.com/dalemusser/wardshift/internal/domain/models"
	"github.com/dalemusser/wardshift/internal/testutil"
)

func TestStore_Options_Missing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := catalogstore.New(db, nil)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	opts, err := store.Options(ctx, "ward5")
	if err != nil {
		t.Fatalf("Options failed: %v", err)
	}
	if len(opts) != 0 {
		t.Errorf("expected no options, got %v", opts)
	}
}

func TestStore_SaveAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := catalogstore.New(db, nil)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Save(ctx, "ward5", []models.ShiftOption{
		{Code: " ช ", DisplayName: "เช้า", BackgroundColor: "#FFF", TextColor: "#000"},
		{Code: "MB", DisplayName: "Meeting"},
	})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	c, found, err := store.Get(ctx, "ward5")
	if err != nil || !found {
		t.Fatalf("Get: found=%v err=%v", found, err)
	}
	o, ok := c.Lookup("ช")
	if !ok {
		t.Fatal("expected trimmed code ช in catalog")
	}
	if o.DisplayName != "เช้า" {
		t.Errorf("DisplayName: got %q", o.DisplayName)
	}
}

func TestStore_Save_Invalid(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := catalogstore.New(db, nil)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Save(ctx, "ward5", []models.ShiftOption{{Code: "ช"}, {Code: "ช"}})
	if !errors.Is(err, catalogstore.ErrInvalidCatalog) {
		t.Errorf("duplicate code: got %v", err)
	}
	_, err = store.Save(ctx, "ward5", []models.ShiftOption{{Code: "  "}})
	if !errors.Is(err, catalogstore.ErrInvalidCatalog) {
		t.Errorf("blank code: got %v", err)
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/wardshift/internal/app/bootstrap"
	"github.com/dalemusser/wardshift/internal/app/system/timezones"
	"github.com/dalemusser/wardshift/internal/app/system/wardload"
	"github.com/dalemusser/wardshift/internal/domain/models"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	sheetDept       string
	sheetDate       string
	sheetSave       bool
	sheetRegenerate bool
	sheetSavedBy    string
	sheetDiscard    bool
)

// dutysheetCmd loads (or generates) one day's duty sheet
var dutysheetCmd = &cobra.Command{
	Use:   "dutysheet",
	Short: "Show a department's duty sheet for a date",
	Long: `Show the saved duty sheet for a date, or the sheet generated from the
monthly schedule when none is saved yet.

  --save        persist a generated sheet (a saved sheet is left alone)
  --regenerate  rebuild from the schedule and overwrite whatever is saved
  --discard     delete the saved sheet and show the generated one`,
	RunE: runDutysheet,
}

func init() {
	dutysheetCmd.Flags().StringVar(&sheetDept, "dept", "", "Department id (required)")
	dutysheetCmd.Flags().StringVar(&sheetDate, "date", "", "Date as YYYY-MM-DD (default: today)")
	dutysheetCmd.Flags().BoolVar(&sheetSave, "save", false, "Save the sheet if it was generated")
	dutysheetCmd.Flags().BoolVar(&sheetRegenerate, "regenerate", false, "Regenerate and overwrite the saved sheet")
	dutysheetCmd.Flags().StringVar(&sheetSavedBy, "saved-by", "wardshiftctl", "Value recorded in savedBy")
	_ = dutysheetCmd.MarkFlagRequired("dept")
	dutysheetCmd.Flags().BoolVar(&sheetDiscard, "discard", false, "Delete the saved sheet for the date")
	dutysheetCmd.MarkFlagsMutuallyExclusive("save", "regenerate", "discard")
}

// sheetOutput mirrors the HTTP response shape without the roster.
type sheetOutput struct {
	State    string                    `json:"state"`
	Document models.AssignmentDocument `json:"document"`
}

func runDutysheet(cmd *cobra.Command, args []string) error {
	loc, err := timezones.Location(wardTimezone)
	if err != nil {
		return err
	}
	date, err := resolveDate(sheetDate, loc, time.Now())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	appCfg := bootstrap.AppConfig{
		MongoURI:            mongoURI,
		MongoDatabase:       mongoDatabase,
		MongoConnectTimeout: timeout,
		RedisAddr:           redisAddr,
		CacheTTL:            5 * time.Minute,
		WardTimezone:        wardTimezone,
	}
	deps, err := bootstrap.ConnectDB(ctx, nil, appCfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := bootstrap.Shutdown(context.Background(), nil, appCfg, deps, logger); err != nil {
			logger.Warn("shutdown failed", zap.Error(err))
		}
	}()

	svc := bootstrap.NewServices(deps, logger)
	out, err := dutysheet(ctx, svc.Loader, svc.Assignments, sheetDept, date, sheetOptions{
		Save:       sheetSave,
		Regenerate: sheetRegenerate,
		Discard:    sheetDiscard,
		SavedBy:    sheetSavedBy,
	})
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), outputFormat, out)
}

var errSheetDegraded = errors.New("save: sheet was generated from incomplete data; not saving")

// sheetLoader is the part of wardload.Loader the command drives.
type sheetLoader interface {
	LoadSheet(ctx context.Context, department string, date time.Time) wardload.Sheet
	Save(ctx context.Context, department string, date time.Time, periods models.DutyPeriods, savedBy string) (models.AssignmentDocument, error)
	Regenerate(ctx context.Context, department string, date time.Time, savedBy string) (models.AssignmentDocument, error)
}

// sheetDeleter removes a saved sheet.
type sheetDeleter interface {
	Delete(ctx context.Context, department, isoDate string) (int64, error)
}

type sheetOptions struct {
	Save       bool
	Regenerate bool
	Discard    bool
	SavedBy    string
}

func dutysheet(ctx context.Context, loader sheetLoader, deleter sheetDeleter, dept string, date time.Time, opts sheetOptions) (sheetOutput, error) {
	if opts.Discard {
		if _, err := deleter.Delete(ctx, dept, models.ISODate(date)); err != nil {
			return sheetOutput{}, fmt.Errorf("discard: %w", err)
		}
	}
	if opts.Regenerate {
		doc, err := loader.Regenerate(ctx, dept, date, opts.SavedBy)
		if err != nil {
			return sheetOutput{}, err
		}
		return sheetOutput{State: wardload.StateSaved, Document: doc}, nil
	}

	sheet := loader.LoadSheet(ctx, dept, date)
	if !opts.Save || sheet.State != wardload.StateGenerated {
		return sheetOutput{State: sheet.State, Document: sheet.Document}, nil
	}
	if sheet.Degraded {
		return sheetOutput{}, errSheetDegraded
	}
	doc, err := loader.Save(ctx, dept, date, sheet.Document.Assignments, opts.SavedBy)
	if err != nil {
		return sheetOutput{}, fmt.Errorf("save: %w", err)
	}
	return sheetOutput{State: wardload.StateSaved, Document: doc}, nil
}

func resolveDate(s string, loc *time.Location, now time.Time) (time.Time, error) {
	if s == "" {
		n := now.In(loc)
		return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, loc), nil
	}
	t, err := models.ParseISODate(s, loc)
	if err != nil {
		return time.Time{}, errors.New("--date: " + err.Error())
	}
	return t, nil
}

package csvstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luki/wristtemp/internal/healthstore"
)

func wrist(v float64, start time.Time) healthstore.QuantitySample {
	return healthstore.QuantitySample{
		ID:       uuid.New(),
		Type:     healthstore.SleepingWristTemperature,
		Quantity: healthstore.Quantity{Value: v, Unit: healthstore.DegreeCelsius},
		Start:    start,
		End:      start.Add(7 * time.Hour),
	}
}

func TestDiskStoreRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "samples")
	ds := New(dir)
	defer ds.Close()

	ctx := context.Background()
	assert.False(t, ds.IsHealthDataAvailable(ctx))

	night1 := time.Date(2026, 2, 20, 23, 30, 0, 0, time.UTC)
	night2 := night1.Add(24 * time.Hour)
	sleep, err := healthstore.LookupType(healthstore.SleepAnalysisID)
	require.NoError(t, err)

	written := []healthstore.Object{
		wrist(36.2, night2),
		wrist(35.9, night1),
		healthstore.CategorySample{ID: uuid.New(), Type: sleep, Value: 3, Start: night1, End: night1.Add(time.Hour)},
	}
	require.NoError(t, ds.Write(written))
	ds.Close()

	require.True(t, ds.IsHealthDataAvailable(ctx))
	require.NoError(t, ds.RequestAuthorization(ctx, []healthstore.SampleType{healthstore.SleepingWristTemperature}))

	days, err := ListDays(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-02-21", "2026-02-20"}, days)

	got, err := ds.Execute(ctx, healthstore.Query{Type: healthstore.SleepingWristTemperature, Limit: healthstore.NoLimit})
	require.NoError(t, err)
	require.Len(t, got, 2)

	first, ok := got[0].(healthstore.QuantitySample)
	require.True(t, ok)
	assert.Equal(t, written[1].UUID(), first.ID, "older day file is read first")
	assert.Equal(t, 35.9, first.Quantity.Value)
	assert.True(t, night1.Equal(first.Start))
	assert.True(t, night1.Add(7*time.Hour).Equal(first.End))

	cats, err := ds.Execute(ctx, healthstore.Query{Type: sleep})
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.IsType(t, healthstore.CategorySample{}, cats[0])
}

func TestDiskStoreUnavailable(t *testing.T) {
	ds := New(filepath.Join(t.TempDir(), "missing"))
	ctx := context.Background()

	err := ds.RequestAuthorization(ctx, []healthstore.SampleType{healthstore.SleepingWristTemperature})
	assert.ErrorIs(t, err, healthstore.ErrHealthDataUnavailable)

	_, err = ds.Execute(ctx, healthstore.Query{Type: healthstore.SleepingWristTemperature})
	assert.ErrorIs(t, err, healthstore.ErrHealthDataUnavailable)
}

func TestLoadFileSkipsMalformedRows(t *testing.T) {
	dir := t.TempDir()
	id := uuid.New()
	content := "uuid,type,kind,value,unit,start,end\n" +
		"not-a-uuid,HKQuantityTypeIdentifierAppleSleepingWristTemperature,quantity,36.0,degC,2026-02-20T23:00:00Z,2026-02-21T06:00:00Z\n" +
		id.String() + ",HKQuantityTypeIdentifierAppleSleepingWristTemperature,quantity,96.8,degF,2026-02-20T23:00:00Z,2026-02-21T06:00:00Z\n" +
		uuid.NewString() + ",HKQuantityTypeIdentifierAppleSleepingWristTemperature,quantity,warm,degC,2026-02-20T23:00:00Z,2026-02-21T06:00:00Z\n" +
		"short,row\n" +
		"bad\"row,x,y\n" +
		uuid.NewString() + ",HKQuantityTypeIdentifierAppleSleepingWristTemperature,quantity,36.1,degC,2026-02-20T23:00:00Z,2026-02-21T06:00:00Z\n"
	path := filepath.Join(dir, "2026-02-20.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	objects, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, objects, 2, "rows after a stray quote are still read")

	s := objects[0].(healthstore.QuantitySample)
	assert.Equal(t, id, s.ID)
	assert.Equal(t, healthstore.DegreeFahrenheit, s.Quantity.Unit)
	assert.Equal(t, 36.1, objects[1].(healthstore.QuantitySample).Quantity.Value)
}

func TestExecuteSurvivesBrokenRow(t *testing.T) {
	dir := t.TempDir()
	ds := New(dir)
	night := time.Date(2026, 2, 1, 22, 0, 0, 0, time.UTC)
	written := wrist(36.4, night)
	require.NoError(t, ds.Write([]healthstore.Object{written}))
	ds.Close()

	f, err := os.OpenFile(filepath.Join(dir, "2026-02-01.csv"), os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteString("bad\"row,x,y\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	got, err := ds.Execute(context.Background(), healthstore.Query{Type: healthstore.SleepingWristTemperature})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, written.ID, got[0].UUID())
}

func TestRequestAuthorizationPermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0))
	t.Cleanup(func() { _ = os.Chmod(dir, 0755) })

	ds := New(dir)
	err := ds.RequestAuthorization(context.Background(), []healthstore.SampleType{healthstore.SleepingWristTemperature})
	assert.ErrorIs(t, err, healthstore.ErrAuthorizationDenied)
}

func TestListDaysIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"2026-01-02.csv", "notes.csv", "2026-01-01.csv", "2026-01-03.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}

	days, err := ListDays(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-01-02", "2026-01-01"}, days)
}

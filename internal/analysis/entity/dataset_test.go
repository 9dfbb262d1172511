package entity

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

const validCSV = "Equipment Name,Type,Flowrate,Pressure,Temperature\n" +
	"P-101,Pump,10,2,300\n" +
	"P-102,Pump,20,4,320\n" +
	"V-201,Valve,5,1,290\n"

func TestParseDataset(t *testing.T) {
	ds, err := ParseDataset(strings.NewReader(validCSV))
	if err != nil {
		t.Fatalf("ParseDataset: %v", err)
	}

	if len(ds.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(ds.Rows))
	}
	if missing := ds.MissingColumns(); missing != nil {
		t.Fatalf("expected no missing columns, got %v", missing)
	}
}

func TestParseDatasetEmptyInput(t *testing.T) {
	if _, err := ParseDataset(strings.NewReader("")); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestParseDatasetRaggedRows(t *testing.T) {
	raw := "Equipment Name,Type,Flowrate,Pressure,Temperature\nP-101,Pump,10\n"
	if _, err := ParseDataset(strings.NewReader(raw)); err == nil {
		t.Fatal("expected error for ragged row")
	}
}

func TestMissingColumns(t *testing.T) {
	raw := "Equipment Name,Flowrate,Temperature\nP-101,10,300\n"
	ds, err := ParseDataset(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("ParseDataset: %v", err)
	}

	missing := ds.MissingColumns()
	if !reflect.DeepEqual(missing, []string{"Type", "Pressure"}) {
		t.Fatalf("unexpected missing columns: %v", missing)
	}
}

func TestMissingColumnsCaseSensitive(t *testing.T) {
	raw := "equipment name,type,flowrate,pressure,temperature\n"
	ds, err := ParseDataset(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("ParseDataset: %v", err)
	}

	if got := len(ds.MissingColumns()); got != 5 {
		t.Fatalf("expected all 5 columns missing, got %d", got)
	}
}

func TestNumericColumn(t *testing.T) {
	ds, err := ParseDataset(strings.NewReader(validCSV))
	if err != nil {
		t.Fatalf("ParseDataset: %v", err)
	}

	values, err := ds.NumericColumn(ColumnFlowrate)
	if err != nil {
		t.Fatalf("NumericColumn: %v", err)
	}
	if !reflect.DeepEqual(values, []float64{10, 20, 5}) {
		t.Fatalf("unexpected values: %v", values)
	}
}

func TestNumericColumnMalformed(t *testing.T) {
	raw := "Equipment Name,Type,Flowrate,Pressure,Temperature\nP-101,Pump,ten,2,300\n"
	ds, err := ParseDataset(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("ParseDataset: %v", err)
	}

	_, err = ds.NumericColumn(ColumnFlowrate)
	if err == nil {
		t.Fatal("expected malformed data error")
	}
	if !strings.Contains(err.Error(), `"Flowrate"`) {
		t.Fatalf("expected error to name the column, got %q", err.Error())
	}
}

func TestTypeCountsOrdering(t *testing.T) {
	raw := "Equipment Name,Type,Flowrate,Pressure,Temperature\n" +
		"V-201,Valve,5,1,290\n" +
		"P-101,Pump,10,2,300\n" +
		"P-102,Pump,20,4,320\n" +
		"C-301,Compressor,8,6,330\n"
	ds, err := ParseDataset(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("ParseDataset: %v", err)
	}

	dist := ds.TypeCounts()
	want := Distribution{
		{Type: "Pump", Count: 2},
		{Type: "Valve", Count: 1},
		{Type: "Compressor", Count: 1},
	}
	if !reflect.DeepEqual(dist, want) {
		t.Fatalf("unexpected distribution: %#v", dist)
	}
	if got := dist.Total(); got != 4 {
		t.Fatalf("expected total 4, got %d", got)
	}
}

func TestDistributionMarshalJSONKeepsOrder(t *testing.T) {
	dist := Distribution{
		{Type: "Pump", Count: 2},
		{Type: "Valve", Count: 1},
	}

	raw, err := json.Marshal(dist)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got := string(raw); got != `{"Pump":2,"Valve":1}` {
		t.Fatalf("unexpected json: %s", got)
	}
}

func TestRowMaps(t *testing.T) {
	ds, err := ParseDataset(strings.NewReader(validCSV))
	if err != nil {
		t.Fatalf("ParseDataset: %v", err)
	}

	rows := ds.RowMaps(2)
	if len(rows) != 2 {
		t.Fatalf("expected 2 preview rows, got %d", len(rows))
	}
	if rows[0]["Equipment Name"] != "P-101" {
		t.Fatalf("unexpected name cell: %v", rows[0]["Equipment Name"])
	}
	if rows[0]["Flowrate"] != float64(10) {
		t.Fatalf("expected numeric flowrate, got %T %v", rows[0]["Flowrate"], rows[0]["Flowrate"])
	}

	if got := len(ds.RowMaps(10)); got != 3 {
		t.Fatalf("expected limit clamped to 3 rows, got %d", got)
	}
}

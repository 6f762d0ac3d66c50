package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func sampleReports() []Report {
	return []Report{
		{
			Name: "Car loan",
			Type: "amortization",
			Summary: []Field{
				{Label: "Monthly payment", Value: Currency(1687.71)},
				{Label: "Total interest", Value: Currency(103788.46)},
				{Label: "Number of payments", Value: Integer(180)},
				{Label: "Annual rate", Value: Percent(6.8)},
				{Label: "Payoff date", Value: Text("2039-12")},
			},
			Tables: []Table{
				{
					Title:   "Yearly summary",
					Headers: []string{"Year", "Interest", "Balance"},
					Rows: [][]Value{
						{Integer(2025), Currency(11616.5), Currency(192339.28)},
					},
				},
			},
			Warnings: []string{"term is longer than 30 years"},
		},
		{
			Name:  "Tight budget",
			Type:  "student-loan-repayment",
			Error: "insufficient payment: 150.00 does not cover the first month's interest; minimum payment is 170.00",
			Summary: []Field{
				{Label: "Minimum payment", Value: Currency(170)},
			},
		},
	}
}

func TestPrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := PrettyFormat(&buf, sampleReports()); err != nil {
		t.Fatalf("PrettyFormat() error = %v", err)
	}
	output := buf.String()

	expected := []string{
		"--- Results for amortization calculation Car loan ---",
		"Monthly payment:",
		"$1,687.71",
		"$103,788.46",
		"6.80%",
		"2039-12",
		"Yearly summary",
		"$192,339.28",
		"warning: term is longer than 30 years",
		"error: insufficient payment",
		"$170.00",
	}
	for _, fragment := range expected {
		if !strings.Contains(output, fragment) {
			t.Errorf("PrettyFormat output missing %q:\n%s", fragment, output)
		}
	}
}

func TestCsvFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, sampleReports()); err != nil {
		t.Fatalf("CsvFormat() error = %v", err)
	}

	reader := csv.NewReader(strings.NewReader(buf.String()))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("CsvFormat produced unreadable CSV: %v", err)
	}

	want := [][]string{
		{"calculation", "type", "section", "field", "value"},
		{"Car loan", "amortization", "warning", "message", "term is longer than 30 years"},
		{"Car loan", "amortization", "summary", "Monthly payment", "1687.71"},
		{"Car loan", "amortization", "summary", "Total interest", "103788.46"},
		{"Car loan", "amortization", "summary", "Number of payments", "180"},
		{"Car loan", "amortization", "summary", "Annual rate", "6.80"},
		{"Car loan", "amortization", "summary", "Payoff date", "2039-12"},
	}
	for i, record := range want {
		if strings.Join(records[i], "|") != strings.Join(record, "|") {
			t.Errorf("record %d = %v, expected %v", i, records[i], record)
		}
	}

	last := records[len(records)-1]
	if strings.Join(last, "|") != "Car loan|amortization|Yearly summary|2025|11616.50|192339.28" {
		t.Errorf("last record = %v", last)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := JSONFormat(&buf, sampleReports()); err != nil {
		t.Fatalf("JSONFormat() error = %v", err)
	}

	var decoded []struct {
		Name    string `json:"name"`
		Error   string `json:"error"`
		Summary []struct {
			Label string      `json:"label"`
			Value interface{} `json:"value"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("JSONFormat produced invalid JSON: %v\n%s", err, buf.String())
	}

	if len(decoded) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(decoded))
	}
	if payment, ok := decoded[0].Summary[0].Value.(float64); !ok || payment != 1687.71 {
		t.Errorf("monthly payment = %#v, expected number 1687.71", decoded[0].Summary[0].Value)
	}
	if date, ok := decoded[0].Summary[4].Value.(string); !ok || date != "2039-12" {
		t.Errorf("payoff date = %#v, expected string", decoded[0].Summary[4].Value)
	}
	if decoded[1].Error == "" {
		t.Errorf("expected error to be carried through")
	}
}

func TestJSONFormatEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := JSONFormat(&buf, nil); err != nil {
		t.Fatalf("JSONFormat() error = %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("JSONFormat(nil) = %q, expected []", buf.String())
	}
}

func TestYAMLFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := YAMLFormat(&buf, sampleReports()); err != nil {
		t.Fatalf("YAMLFormat() error = %v", err)
	}

	var decoded []map[string]interface{}
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("YAMLFormat produced invalid YAML: %v", err)
	}
	if decoded[0]["name"] != "Car loan" {
		t.Errorf("name = %v", decoded[0]["name"])
	}
	if !strings.Contains(buf.String(), "value: 1687.71") {
		t.Errorf("YAML output missing numeric payment:\n%s", buf.String())
	}
}

func TestWrite(t *testing.T) {
	for _, name := range []string{"pretty", "csv", "json", "yaml"} {
		var buf bytes.Buffer
		if err := Write(&buf, name, sampleReports()); err != nil {
			t.Errorf("Write(%s) error = %v", name, err)
		}
		if buf.Len() == 0 {
			t.Errorf("Write(%s) produced no output", name)
		}
	}

	if err := Write(&bytes.Buffer{}, "xml", nil); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestValuePlain(t *testing.T) {
	tests := []struct {
		value    Value
		expected string
	}{
		{Currency(1234.5), "1234.50"},
		{Percent(6.8), "6.80"},
		{Integer(360), "360"},
		{Number(2.5), "2.5"},
		{Text("2025-01"), "2025-01"},
	}
	for _, tt := range tests {
		if got := tt.value.Plain(); got != tt.expected {
			t.Errorf("Plain() = %q, expected %q", got, tt.expected)
		}
	}
}

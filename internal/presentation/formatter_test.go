package presentation

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/enroll/internal/catalog"
	"github.com/zjrosen/enroll/internal/enrollment"
	"github.com/zjrosen/enroll/internal/infrastructure/sqlite"
	"github.com/zjrosen/enroll/internal/program"
)

func TestFromCatalog_MarksAvailability(t *testing.T) {
	entries := []catalog.Entry{
		{ID: program.Cashier, Title: "Cashier Training", Labels: []string{"register"}},
		{ID: "bakery", Title: "Bakery"},
	}

	dtos := FromCatalog(entries, []program.ID{program.Cashier, program.Produce})

	require.Len(t, dtos, 3)
	require.True(t, dtos[0].Available)
	require.False(t, dtos[1].Available)
	require.Equal(t, []string{}, dtos[1].Labels)
	require.Equal(t, ProgramDTO{ID: "produce", Title: "produce", Labels: []string{}, Available: true}, dtos[2])
}

func TestFormatPrograms_JSON(t *testing.T) {
	var buf bytes.Buffer
	dtos := []ProgramDTO{{ID: "cashier", Title: "Cashier Training", Labels: []string{"register"}, Available: true}}

	require.NoError(t, NewFormatter(&buf).FormatPrograms(dtos))

	var got []ProgramDTO
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Equal(t, dtos, got)
}

func TestFormatPrograms_Text(t *testing.T) {
	var buf bytes.Buffer
	dtos := []ProgramDTO{
		{ID: "cashier", Title: "Cashier Training", Description: "Registers.", Labels: []string{"register"}, Available: true},
		{ID: "bakery", Title: "Bakery", Labels: []string{}},
	}

	require.NoError(t, NewFormatterFor(&buf, FormatText).FormatPrograms(dtos))

	out := buf.String()
	require.Contains(t, out, "cashier  Cashier Training  available")
	require.Contains(t, out, "Registers.")
	require.Contains(t, out, "labels: register")
	require.Contains(t, out, "bakery   Bakery  unavailable")
}

func TestFormatEnrollment(t *testing.T) {
	e := FromEnrollment(&enrollment.Enrollment{
		ID: "enr-1", Program: program.Produce, User: "alice",
		EnrolledAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	})

	var buf bytes.Buffer
	require.NoError(t, NewFormatterFor(&buf, FormatText).FormatEnrollment(e))
	require.Contains(t, buf.String(), "alice enrolled in produce (enr-1)")

	buf.Reset()
	require.NoError(t, NewFormatter(&buf).FormatEnrollment(e))
	require.JSONEq(t, `{"id":"enr-1","program":"produce","user":"alice","enrolled_at":"2026-01-02T03:04:05Z"}`, buf.String())
}

func TestFormatRequests_Text(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatterFor(&buf, FormatText)

	require.NoError(t, f.FormatRequests(nil))
	require.Contains(t, buf.String(), "no requests")

	buf.Reset()
	dtos := FromTrackedRequests([]sqlite.TrackedRequest{{
		ID: "r1", Program: "cashier", User: "alice", Title: "enroll a cashier",
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.Local),
	}})
	require.NoError(t, f.FormatRequests(dtos))
	require.Contains(t, buf.String(), "2026-01-02 03:04:05")
	require.Contains(t, buf.String(), "enroll a cashier")
}

func TestValidateFormat(t *testing.T) {
	require.NoError(t, ValidateFormat(FormatJSON))
	require.NoError(t, ValidateFormat(FormatText))
	require.Error(t, ValidateFormat("yaml"))
}

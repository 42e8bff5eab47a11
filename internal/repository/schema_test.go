package repository

import (
	"os"
	"regexp"
	"strings"
	"testing"
)

// The repositories bind Go values positionally, so the migration's column
// types must agree with the struct fields. These checks pin the pairs that
// are easy to get wrong because the Go type does not match the column name's
// suggestion.

func loadInitMigration(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("../../migrations/00001_init.sql")
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}
	return string(data)
}

func tableDDL(t *testing.T, schema, table string) string {
	t.Helper()
	re := regexp.MustCompile(`(?s)CREATE TABLE ` + table + ` \((.*?)\);`)
	m := re.FindStringSubmatch(schema)
	if m == nil {
		t.Fatalf("no CREATE TABLE %s in migration", table)
	}
	return m[1]
}

func columnType(ddl, column string) string {
	re := regexp.MustCompile(`(?m)^\s*` + column + `\s+([A-Z ]+(?:\[\])?)`)
	m := re.FindStringSubmatch(ddl)
	if m == nil {
		return ""
	}
	return strings.Join(strings.Fields(m[1]), " ")
}

func TestInitMigration_InvitedByHoldsInviterName(t *testing.T) {
	ddl := tableDDL(t, loadInitMigration(t), "pending_invitations")
	if got := columnType(ddl, "invited_by"); got != "TEXT NOT NULL" {
		t.Errorf("invited_by column = %q, want TEXT NOT NULL (the inviter's display name is stored, not an ID)", got)
	}
}

func TestInitMigration_PaymentDateColumns(t *testing.T) {
	ddl := tableDDL(t, loadInitMigration(t), "payments")
	for _, column := range []string{"pay_date", "estimated_date"} {
		if got := columnType(ddl, column); got != "TIMESTAMPTZ" {
			t.Errorf("%s column = %q, want nullable TIMESTAMPTZ", column, got)
		}
	}
	if got := columnType(ddl, "progress_percent"); !strings.HasPrefix(got, "DOUBLE PRECISION") {
		t.Errorf("progress_percent column = %q, want DOUBLE PRECISION", got)
	}
}

func TestInitMigration_TaskDependsOnIsBigintArray(t *testing.T) {
	ddl := tableDDL(t, loadInitMigration(t), "tasks")
	if got := columnType(ddl, "depends_on"); got != "BIGINT[]" {
		t.Errorf("depends_on column = %q, want BIGINT[]", got)
	}
}

func TestInitMigration_MeetingCompositeColumns(t *testing.T) {
	ddl := tableDDL(t, loadInitMigration(t), "meetings")
	if got := columnType(ddl, "action_items"); !strings.HasPrefix(got, "JSONB") {
		t.Errorf("action_items column = %q, want JSONB", got)
	}
	if got := columnType(ddl, "decisions"); got != "TEXT[]" {
		t.Errorf("decisions column = %q, want TEXT[]", got)
	}
}

func TestInitMigration_EveryDomainTableHasCreatedAt(t *testing.T) {
	schema := loadInitMigration(t)
	tables := []string{
		"users", "projects", "rooms", "tasks", "vendors", "payments",
		"meetings", "project_users", "pending_invitations", "project_owners",
		"outbox_events", "blobs",
	}
	for _, table := range tables {
		ddl := tableDDL(t, schema, table)
		if columnType(ddl, "created_at") == "" {
			t.Errorf("table %s has no created_at column", table)
		}
	}
}

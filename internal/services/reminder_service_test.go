package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/techieblitz/assignment-tracker/internal/models"
	"github.com/techieblitz/assignment-tracker/internal/repository"
	"github.com/techieblitz/assignment-tracker/internal/services"
	"gorm.io/gorm"
)

func seedAssignment(t *testing.T, db *gorm.DB, userID, name string, due time.Time, notified bool) *models.Assignment {
	t.Helper()
	a := &models.Assignment{
		UserID:       userID,
		Name:         name,
		DueDate:      &due,
		Status:       models.StatusTodo,
		Notification: notified,
	}
	if err := repository.NewAssignmentRepository(db).Create(context.Background(), a); err != nil {
		t.Fatalf("Failed to seed assignment: %v", err)
	}
	return a
}

func TestReminderSweepSendsAndFlipsFlag(t *testing.T) {
	db := setupTestDB(t)
	users := repository.NewUserRepository(db)
	assignments := repository.NewAssignmentRepository(db)
	sender := &fakeSender{}
	svc := services.NewReminderService(assignments, users, sender, time.UTC)
	ctx := context.Background()

	seedUser(t, db, "u1")
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	tomorrow := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)
	nextWeek := time.Date(2026, 9, 7, 14, 0, 0, 0, time.UTC)

	dueTomorrow := seedAssignment(t, db, "u1", "Essay", tomorrow, false)
	alreadyNotified := seedAssignment(t, db, "u1", "Quiz prep", tomorrow, true)
	seedAssignment(t, db, "u1", "Project", nextWeek, false)

	sent, err := svc.Run(ctx, now)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if sent != 1 {
		t.Fatalf("Expected 1 reminder sent, got %d", sent)
	}
	if len(sender.sent) != 1 || sender.sent[0] != "u1@example.com" {
		t.Errorf("Unexpected recipients: %v", sender.sent)
	}

	stored, err := assignments.FindByID(ctx, "u1", dueTomorrow.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if !stored.Notification {
		t.Error("Expected notification flag flipped after send")
	}
	stored, err = assignments.FindByID(ctx, "u1", alreadyNotified.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if !stored.Notification {
		t.Error("Already-notified assignment should keep its flag")
	}

	// A second sweep with the same now finds nothing to send.
	sent, err = svc.Run(ctx, now)
	if err != nil {
		t.Fatalf("Second run failed: %v", err)
	}
	if sent != 0 {
		t.Errorf("Expected idempotent sweep, got %d sends", sent)
	}
}

func TestReminderSendFailureKeepsFlagUnset(t *testing.T) {
	db := setupTestDB(t)
	users := repository.NewUserRepository(db)
	assignments := repository.NewAssignmentRepository(db)
	sender := &fakeSender{failNext: true}
	svc := services.NewReminderService(assignments, users, sender, time.UTC)
	ctx := context.Background()

	seedUser(t, db, "u1")
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	due := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	a := seedAssignment(t, db, "u1", "Essay", due, false)

	sent, err := svc.Run(ctx, now)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if sent != 0 {
		t.Errorf("Expected 0 sends after failure, got %d", sent)
	}

	stored, err := assignments.FindByID(ctx, "u1", a.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if stored.Notification {
		t.Error("Flag must stay unset when the send fails")
	}

	// The next sweep retries and succeeds.
	sent, err = svc.Run(ctx, now)
	if err != nil {
		t.Fatalf("Retry run failed: %v", err)
	}
	if sent != 1 {
		t.Errorf("Expected retry to send, got %d", sent)
	}
}

func TestReminderWindowBoundsAreInclusive(t *testing.T) {
	db := setupTestDB(t)
	users := repository.NewUserRepository(db)
	assignments := repository.NewAssignmentRepository(db)
	sender := &fakeSender{}
	svc := services.NewReminderService(assignments, users, sender, time.UTC)
	ctx := context.Background()

	seedUser(t, db, "u1")
	now := time.Date(2026, 8, 31, 23, 59, 0, 0, time.UTC)

	seedAssignment(t, db, "u1", "Midnight start", time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), false)
	seedAssignment(t, db, "u1", "Day end", time.Date(2026, 9, 1, 23, 59, 59, int(999*time.Millisecond), time.UTC), false)
	seedAssignment(t, db, "u1", "Day after", time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC), false)
	seedAssignment(t, db, "u1", "Due today", time.Date(2026, 8, 31, 23, 59, 30, 0, time.UTC), false)

	sent, err := svc.Run(ctx, now)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if sent != 2 {
		t.Errorf("Expected both edge-of-day assignments, got %d sends", sent)
	}
}

func TestReminderSkipsOrphanedAssignments(t *testing.T) {
	db := setupTestDB(t)
	users := repository.NewUserRepository(db)
	assignments := repository.NewAssignmentRepository(db)
	sender := &fakeSender{}
	svc := services.NewReminderService(assignments, users, sender, time.UTC)
	ctx := context.Background()

	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	due := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	seedAssignment(t, db, "ghost", "Orphan", due, false)

	sent, err := svc.Run(ctx, now)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if sent != 0 {
		t.Errorf("Expected orphan skipped, got %d sends", sent)
	}
	if len(sender.sent) != 0 {
		t.Errorf("Expected no emails, got %v", sender.sent)
	}
}

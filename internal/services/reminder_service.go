package services

import (
	"context"
	"log"
	"time"

	"github.com/techieblitz/assignment-tracker/internal/mailer"
	"github.com/techieblitz/assignment-tracker/internal/repository"
)

// ReminderService sends one email per assignment due tomorrow that has not
// been notified yet, then flips the notification flag. The flag is the only
// idempotency marker: a crash between send and flip produces a duplicate
// email on the next sweep.
type ReminderService struct {
	assignments *repository.AssignmentRepository
	users       *repository.UserRepository
	sender      mailer.Sender
	loc         *time.Location
}

func NewReminderService(
	assignments *repository.AssignmentRepository,
	users *repository.UserRepository,
	sender mailer.Sender,
	loc *time.Location,
) *ReminderService {
	if loc == nil {
		loc = time.Local
	}
	return &ReminderService{assignments: assignments, users: users, sender: sender, loc: loc}
}

// Run performs one sweep relative to now and returns the number of
// reminders sent. Per-assignment failures are logged and skipped; the
// unflipped flag retries them on the next sweep.
func (s *ReminderService) Run(ctx context.Context, now time.Time) (int, error) {
	start, end := s.window(now)

	due, err := s.assignments.ListDueBetweenUnnotified(ctx, start, end)
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range due {
		assignment := &due[i]

		user, err := s.users.FindByID(ctx, assignment.UserID)
		if err != nil {
			log.Printf("reminder: owner of assignment %s: %v", assignment.ID, err)
			continue
		}

		subject, text, html := mailer.ReminderEmail(assignment.Name, *assignment.DueDate)
		if err := s.sender.Send(ctx, user.Email, subject, text, html); err != nil {
			log.Printf("reminder: send to %s: %v", user.Email, err)
			continue
		}

		if err := s.assignments.MarkNotified(ctx, assignment.ID); err != nil {
			log.Printf("reminder: mark assignment %s: %v", assignment.ID, err)
			continue
		}
		sent++
	}

	if sent > 0 {
		log.Printf("reminder: sent %d of %d due tomorrow", sent, len(due))
	}
	return sent, nil
}

// window is [start of tomorrow, end of tomorrow] in the service location.
func (s *ReminderService) window(now time.Time) (time.Time, time.Time) {
	now = now.In(s.loc)
	start := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, s.loc)
	end := start.Add(24*time.Hour - time.Millisecond)
	return start, end
}

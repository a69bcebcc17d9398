package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestStudySessionFinish(t *testing.T) {
	session, err := NewStudySession(uuid.New(), uuid.New(), time.Now().UTC(), 50)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if session.IsFinished() {
		t.Fatal("New session must not be finished")
	}

	endedAt := time.Now().UTC()
	if err := session.Finish(endedAt, 45, 2, false, "went fine"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !session.IsFinished() {
		t.Error("Expected session to be finished")
	}
	if session.WorkMinutes != 45 || session.CyclesCompleted != 2 {
		t.Errorf("Unexpected finish state: %+v", session)
	}

	// A finished session is terminal.
	if err := session.Finish(endedAt, 45, 2, false, ""); err != ErrSessionAlreadyFinished {
		t.Errorf("Expected ErrSessionAlreadyFinished, got %v", err)
	}
}

func TestStudySessionFinishRejectsNegativeMinutes(t *testing.T) {
	session, err := NewStudySession(uuid.New(), uuid.New(), time.Now().UTC(), 25)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := session.Finish(time.Now().UTC(), -1, 1, false, ""); err != ErrSessionNegativeMinutes {
		t.Errorf("Expected ErrSessionNegativeMinutes, got %v", err)
	}
	if session.IsFinished() {
		t.Error("Rejected finish must not mark the session finished")
	}
}

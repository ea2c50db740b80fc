package submissions_test

import (
	"testing"
	"time"

	"github.com/dalemusser/tujitume/internal/app/store/slots"
	"github.com/dalemusser/tujitume/internal/app/store/submissions"
	"github.com/dalemusser/tujitume/internal/domain/models"
	"github.com/dalemusser/tujitume/internal/testutil"
	"go.uber.org/zap"
)

func sub(id string, at time.Time) models.FormSubmission {
	return models.FormSubmission{
		ID:          id,
		FormType:    models.FormContact,
		Data:        map[string]any{"name": "Asha"},
		SubmittedAt: at,
		Status:      models.SubmissionPending,
	}
}

func TestList_NewestFirst(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()
	s := submissions.New(testutil.SetupTestSlots(t), zap.NewNop())

	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	for _, in := range []models.FormSubmission{
		sub("a", base),
		sub("b", base.Add(2*time.Hour)),
		sub("c", base.Add(time.Hour)),
		sub("d", base.Add(2*time.Hour)),
	} {
		if err := s.Append(ctx, in); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	got := []string{}
	for _, x := range list {
		got = append(got, x.ID)
	}
	want := []string{"d", "b", "c", "a"}
	if len(got) != len(want) {
		t.Fatalf("List: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List: got %v, want %v", got, want)
			break
		}
	}
}

func TestList_Empty(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()
	s := submissions.New(testutil.SetupTestSlots(t), zap.NewNop())

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Errorf("List: got %v, want empty slice", list)
	}
}

func TestUpdateStatus(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()
	s := submissions.New(testutil.SetupTestSlots(t), zap.NewNop())
	if err := s.Append(ctx, sub("a", time.Now())); err != nil {
		t.Fatalf("Append: %v", err)
	}

	found, err := s.UpdateStatus(ctx, "a", models.SubmissionReviewed, "called back")
	if err != nil || !found {
		t.Fatalf("UpdateStatus: found=%v err=%v", found, err)
	}
	list, _ := s.List(ctx)
	if list[0].Status != models.SubmissionReviewed || list[0].AdminNotes != "called back" {
		t.Errorf("after update: got %+v", list[0])
	}

	found, err = s.UpdateStatus(ctx, "missing", models.SubmissionArchived, "")
	if err != nil || found {
		t.Errorf("UpdateStatus missing: found=%v err=%v, want false nil", found, err)
	}

	if _, err := s.UpdateStatus(ctx, "a", models.SubmissionStatus("spam"), ""); err == nil {
		t.Error("UpdateStatus with invalid status: want error")
	}
}

func TestAppend_CorruptSlot(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()
	st := testutil.SetupTestSlots(t)
	if err := st.Put(ctx, slots.KeySubmissions, []byte("not json")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	s := submissions.New(st, zap.NewNop())

	if err := s.Append(ctx, sub("a", time.Now())); err == nil {
		t.Error("Append over corrupt slot: want error")
	}
}

package reports

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MediTrack/MT-Backend/internal/utils"
)

var errDriver = errors.New("connection refused")

// fakeStore implements ReportStore without a database.
type fakeStore struct {
	upsertCalls int
	lastUserID  string
	lastInput   ReportInput
	created     bool
	upsertErr   error

	listRows []Report
	listErr  error
}

func (f *fakeStore) Upsert(userID string, in ReportInput) (bool, error) {
	f.upsertCalls++
	f.lastUserID = userID
	f.lastInput = in
	return f.created, f.upsertErr
}

func (f *fakeStore) ListRecent(userID string) ([]Report, error) {
	return f.listRows, f.listErr
}

func swapStore(t *testing.T, s ReportStore) {
	t.Helper()
	old := store
	store = s
	t.Cleanup(func() { store = old })
}

func authedRequest(method, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, "/", nil)
	} else {
		req = httptest.NewRequest(method, "/", strings.NewReader(body))
	}
	return req.WithContext(utils.WithAuthUser(req.Context(), utils.AuthUser{
		ID:    "user-1",
		Email: "pat@example.com",
		Name:  "Pat",
	}))
}

// TestUpsertHandler_MissingWeekStart verifies the validation rejection fires
// before the store is touched.
func TestUpsertHandler_MissingWeekStart(t *testing.T) {
	fake := &fakeStore{}
	swapStore(t, fake)

	rec := httptest.NewRecorder()
	UpsertHandler(rec, authedRequest(http.MethodPost, `{"bloodSugar": 95.0}`))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if fake.upsertCalls != 0 {
		t.Errorf("expected no store calls, got %d", fake.upsertCalls)
	}
}

// TestUpsertHandler_BadDate verifies a malformed weekStart is rejected before
// persistence.
func TestUpsertHandler_BadDate(t *testing.T) {
	fake := &fakeStore{}
	swapStore(t, fake)

	rec := httptest.NewRecorder()
	UpsertHandler(rec, authedRequest(http.MethodPost, `{"weekStart": "January 6"}`))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if fake.upsertCalls != 0 {
		t.Errorf("expected no store calls, got %d", fake.upsertCalls)
	}
}

// TestUpsertHandler_Created verifies a fresh insert maps to 201 and the
// submitted fields reach the store, with omitted metrics as nil.
func TestUpsertHandler_Created(t *testing.T) {
	fake := &fakeStore{created: true}
	swapStore(t, fake)

	rec := httptest.NewRecorder()
	UpsertHandler(rec, authedRequest(http.MethodPost,
		`{"weekStart": "2025-01-06", "bloodSugar": 92.5, "systolicBp": 118}`))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d; body: %s", rec.Code, rec.Body.String())
	}
	if fake.upsertCalls != 1 {
		t.Fatalf("expected 1 store call, got %d", fake.upsertCalls)
	}
	if fake.lastUserID != "user-1" {
		t.Errorf("expected user-1, got %q", fake.lastUserID)
	}

	in := fake.lastInput
	want := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	if !in.WeekStart.Equal(want) {
		t.Errorf("expected week start %v, got %v", want, in.WeekStart)
	}
	if in.BloodSugar == nil || *in.BloodSugar != 92.5 {
		t.Errorf("expected bloodSugar 92.5, got %v", in.BloodSugar)
	}
	if in.SystolicBp == nil || *in.SystolicBp != 118 {
		t.Errorf("expected systolicBp 118, got %v", in.SystolicBp)
	}
	if in.DiastolicBp != nil {
		t.Errorf("expected omitted diastolicBp to be nil, got %v", *in.DiastolicBp)
	}
	if in.JaundiceIndex != nil {
		t.Errorf("expected omitted jaundiceIndex to be nil, got %v", *in.JaundiceIndex)
	}

	var body map[string]bool
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %s", rec.Body.String())
	}
	if !body["ok"] {
		t.Error("expected ok:true in response body")
	}
}

// TestUpsertHandler_Replaced verifies a conflict-arm replace maps to 200.
func TestUpsertHandler_Replaced(t *testing.T) {
	fake := &fakeStore{created: false}
	swapStore(t, fake)

	rec := httptest.NewRecorder()
	UpsertHandler(rec, authedRequest(http.MethodPost, `{"weekStart": "2025-01-06"}`))

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d; body: %s", rec.Code, rec.Body.String())
	}
}

// TestUpsertHandler_StoreError verifies storage faults surface as a generic
// 500, never the raw driver error.
func TestUpsertHandler_StoreError(t *testing.T) {
	fake := &fakeStore{upsertErr: errDriver}
	swapStore(t, fake)

	rec := httptest.NewRecorder()
	UpsertHandler(rec, authedRequest(http.MethodPost, `{"weekStart": "2025-01-06"}`))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), errDriver.Error()) {
		t.Errorf("driver error leaked to client: %s", rec.Body.String())
	}
}

// TestListHandler_EmptyIsArray verifies an empty history encodes as [] rather
// than null.
func TestListHandler_EmptyIsArray(t *testing.T) {
	swapStore(t, &fakeStore{})

	rec := httptest.NewRecorder()
	ListHandler(rec, authedRequest(http.MethodGet, ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("expected [] body, got %q", got)
	}
}

// TestUpsertHandler_NoIdentity verifies the defensive 401 when the auth gate
// did not run.
func TestUpsertHandler_NoIdentity(t *testing.T) {
	fake := &fakeStore{}
	swapStore(t, fake)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"weekStart": "2025-01-06"}`))
	UpsertHandler(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if fake.upsertCalls != 0 {
		t.Errorf("expected no store calls, got %d", fake.upsertCalls)
	}
}

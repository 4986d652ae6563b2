package tests

import (
	"context"
	"net/http"
	"testing"

	"github.com/trezcool/zoezi/core/student"
	"github.com/trezcool/zoezi/core/unit"
)

func Test_unitApi_query(t *testing.T) {
	units, err := unitRepo.QueryAllUnits(context.Background())
	if err != nil {
		t.Fatalf("QueryAllUnits(): %v", err)
	}

	tests := []httpTest{
		{name: "ok", path: "/units", token: student.MakeToken(asha.ID), wantData: marchallObj(t, units)},
		{name: "trailing slash", path: "/units/", token: student.MakeToken(asha.ID), wantData: marchallObj(t, units)},
		{name: "auth required", path: "/units", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errAuthRequired)},
	}
	runTable(t, tests)
}

func Test_unitApi_queryExercises(t *testing.T) {
	// unit 3 is reserved for this test; seed it directly
	ctx := context.Background()
	if err := unitRepo.SetStudentState(ctx, asha.ID, 3, 0, unit.StateReserved); err != nil {
		t.Fatal(err)
	}
	if err := unitRepo.SetStudentState(ctx, baraka.ID, 3, 0, unit.StatePresented); err != nil {
		t.Fatal(err)
	}
	if err := unitRepo.SetExerciseBlocked(ctx, 3, 1, true); err != nil {
		t.Fatal(err)
	}

	want := []unit.Exercise{
		{
			ReservedBy:       []student.Student{asha},
			PresentedBy:      []student.Student{baraka},
			CorrectionImages: []string{},
		},
		{
			ReservedBy:       []student.Student{},
			PresentedBy:      []student.Student{},
			Blocked:          true,
			CorrectionImages: []string{},
		},
	}

	tests := []httpTest{
		{name: "ok", path: "/units/3/exercises", token: student.MakeToken(asha.ID), wantData: marchallObj(t, want)},
		{
			name: "unknown unit", path: "/units/99/exercises", token: student.MakeToken(asha.ID),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "unit not found"}),
		},
		{
			name: "non-numeric unit", path: "/units/algebra/exercises", token: student.MakeToken(asha.ID),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound),
		},
		{name: "auth required", path: "/units/3/exercises", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errAuthRequired)},
	}
	runTable(t, tests)
}

func Test_unitApi_setState(t *testing.T) {
	token := student.MakeToken(asha.ID)

	tests := []httpTest{
		{
			name: "reserve", method: http.MethodPost, path: "/units/2/exercises/0/state",
			body: []byte(`"reserved"`), token: token, wantData: []byte("null"),
		},
		{
			name: "present", method: http.MethodPost, path: "/units/2/exercises/0/state",
			body: []byte(`"presented"`), token: token, wantData: []byte("null"),
		},
		{
			name: "invalid state", method: http.MethodPost, path: "/units/2/exercises/0/state",
			body: []byte(`"done"`), token: token, wantCode: http.StatusBadRequest,
		},
		{
			name: "invalid JSON", method: http.MethodPost, path: "/units/2/exercises/0/state",
			body: []byte("reserved"), token: token, wantCode: http.StatusBadRequest,
		},
		{
			name: "exercise out of range", method: http.MethodPost, path: "/units/2/exercises/2/state",
			body: []byte(`"reserved"`), token: token,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "exercise not found"}),
		},
		{
			name: "unknown unit", method: http.MethodPost, path: "/units/99/exercises/0/state",
			body: []byte(`"reserved"`), token: token,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "unit not found"}),
		},
		{
			name: "auth required", method: http.MethodPost, path: "/units/2/exercises/0/state",
			body: []byte(`"reserved"`), wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errAuthRequired),
		},
	}
	runTable(t, tests)

	// the last successful write wins
	states, err := unitRepo.QueryStudentStates(context.Background(), 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(states) != 1 || states[0].State != unit.StatePresented || states[0].Exercise != 0 {
		t.Errorf("states = %+v, want one presented entry on exercise 0", states)
	}

	// "none" clears the row
	req, rec := newAuthRequest(http.MethodPost, "/units/2/exercises/0/state", token, []byte(`"none"`))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("clearing state: code = %d", rec.Code)
	}
	if states, err = unitRepo.QueryStudentStates(context.Background(), 2); err != nil || len(states) != 0 {
		t.Errorf("states after clear = %+v, %v; want none", states, err)
	}
}

func Test_unitApi_setBlocked(t *testing.T) {
	token := student.MakeToken(asha.ID)

	tests := []httpTest{
		{
			name: "block", method: http.MethodPost, path: "/units/1/exercises/1/blocked",
			body: []byte("true"), token: token, wantData: []byte("null"),
		},
		{
			name: "invalid JSON", method: http.MethodPost, path: "/units/1/exercises/1/blocked",
			body: []byte("yes"), token: token, wantCode: http.StatusBadRequest,
		},
		{
			name: "exercise out of range", method: http.MethodPost, path: "/units/1/exercises/9/blocked",
			body: []byte("true"), token: token,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "exercise not found"}),
		},
	}
	runTable(t, tests)

	flags, err := unitRepo.QueryExerciseFlags(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	var found bool
	for _, f := range flags {
		if f.Index == 1 && f.Blocked {
			found = true
		}
	}
	if !found {
		t.Errorf("flags = %+v, want exercise 1 blocked", flags)
	}
}

func Test_unitApi_setCorrected(t *testing.T) {
	// the caller's class half picks which flag gets set
	req, rec := newAuthRequest(http.MethodPost, "/units/1/exercises/2/corrected", student.MakeToken(asha.ID), []byte("true"))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("corrected (group even): code = %d, body = %s", rec.Code, rec.Body.String())
	}

	req, rec = newAuthRequest(http.MethodPost, "/units/1/exercises/2/corrected", student.MakeToken(baraka.ID), []byte("true"))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("corrected (group odd): code = %d, body = %s", rec.Code, rec.Body.String())
	}

	flags, err := unitRepo.QueryExerciseFlags(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	var found bool
	for _, f := range flags {
		if f.Index == 2 && f.CorrectedGroupEven && f.CorrectedGroupOdd {
			found = true
		}
	}
	if !found {
		t.Errorf("flags = %+v, want exercise 2 corrected for both halves", flags)
	}
}

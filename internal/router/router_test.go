package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clinical-records/internal/ports/auth"

	"github.com/rs/zerolog"
)

// tokenVerifier mapea tokens literales a claims; evita firmar JWTs en tests.
type tokenVerifier struct {
	tokens map[string]auth.Claims
}

func (v tokenVerifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	c, ok := v.tokens[token]
	if !ok {
		return auth.Claims{}, errors.New("invalid token")
	}
	return c, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	h := New(Options{
		Verifier: tokenVerifier{tokens: map[string]auth.Claims{
			"admin-token":    {UserID: 100, Username: "admin", Role: auth.RoleAdmin},
			"doctor-token":   {UserID: 50, Username: "drgarcia", Role: auth.RoleDoctor},
			"patient1-token": {UserID: 1, Username: "jperez", Role: auth.RolePatient},
			"intruder-token": {UserID: 12, Username: "mlopez", Role: auth.RolePatient},
		}},
		Logger: zerolog.Nop(),
	})
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func doRequest(t *testing.T, srv *httptest.Server, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("cannot marshal body: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, srv.URL+path, rdr)
	if err != nil {
		t.Fatalf("cannot build request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	raw, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, raw
}

func createPatient(t *testing.T, srv *httptest.Server) int64 {
	t.Helper()
	resp, raw := doRequest(t, srv, http.MethodPost, "/api/patients", "admin-token", map[string]any{
		"first_name":   "Juan",
		"last_name":    "Pérez",
		"dob":          "1990-05-20",
		"gender":       "Male",
		"phone_number": "555-0101",
		"email":        "jperez@example.com",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create patient: got status %d: %s", resp.StatusCode, raw)
	}
	var out struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("cannot decode patient: %v", err)
	}
	return out.ID
}

func TestHealthIsPublic(t *testing.T) {
	srv := newTestServer(t)

	resp, raw := doRequest(t, srv, http.MethodGet, "/api/health", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got status %d: %s", resp.StatusCode, raw)
	}
	var out map[string]string
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("cannot decode health: %v", err)
	}
	if out["message"] != "backend is healthy" {
		t.Fatalf("got %q", out["message"])
	}
}

func TestAuthenticationGate(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doRequest(t, srv, http.MethodGet, "/api/patients", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("no token: got status %d, want 401", resp.StatusCode)
	}

	resp, _ = doRequest(t, srv, http.MethodGet, "/api/patients", "forged-token", nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("bad token: got status %d, want 403", resp.StatusCode)
	}
}

func TestStaffOnlyListings(t *testing.T) {
	srv := newTestServer(t)

	for _, token := range []string{"admin-token", "doctor-token"} {
		resp, raw := doRequest(t, srv, http.MethodGet, "/api/patients", token, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: got status %d: %s", token, resp.StatusCode, raw)
		}
	}

	resp, _ := doRequest(t, srv, http.MethodGet, "/api/patients", "patient1-token", nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("patient listing patients: got status %d, want 403", resp.StatusCode)
	}
}

func TestPatientSelfAccessOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	if id := createPatient(t, srv); id != 1 {
		t.Fatalf("got patient id %d, want 1", id)
	}

	resp, raw := doRequest(t, srv, http.MethodGet, "/api/patients/1", "patient1-token", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("self read: got status %d: %s", resp.StatusCode, raw)
	}

	// Otro paciente sin grant: 403 con la razón en el body.
	resp, raw = doRequest(t, srv, http.MethodGet, "/api/patients/1", "intruder-token", nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("intruder read: got status %d, want 403", resp.StatusCode)
	}
	var denial struct {
		Error  string `json:"error"`
		Reason string `json:"reason"`
	}
	if err := json.Unmarshal(raw, &denial); err != nil {
		t.Fatalf("cannot decode denial: %v", err)
	}
	if denial.Reason != "role_insufficient" {
		t.Fatalf("got reason %q, want role_insufficient", denial.Reason)
	}
}

func TestDelegationLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	createPatient(t, srv) // id 1 = patient1-token

	today := time.Now().UTC().Format("2006-01-02")
	nextWeek := time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")

	// El intruso no puede delegar el expediente ajeno.
	grantBody := map[string]any{
		"patient_id":      1,
		"grantee_id":      12,
		"access_level":    "read",
		"effective_date":  today,
		"expiration_date": nextWeek,
	}
	resp, _ := doRequest(t, srv, http.MethodPost, "/api/access-permissions", "intruder-token", grantBody)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("intruder creating grant: got status %d, want 403", resp.StatusCode)
	}

	// El dueño sí.
	resp, raw := doRequest(t, srv, http.MethodPost, "/api/access-permissions", "patient1-token", grantBody)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("owner creating grant: got status %d: %s", resp.StatusCode, raw)
	}
	var created struct {
		ID          string `json:"id"`
		AccessLevel string `json:"access_level"`
	}
	if err := json.Unmarshal(raw, &created); err != nil {
		t.Fatalf("cannot decode grant: %v", err)
	}
	if created.ID == "" || created.AccessLevel != "read" {
		t.Fatalf("unexpected grant: %+v", created)
	}

	// Con grant read: lectura permitida, escritura no.
	resp, raw = doRequest(t, srv, http.MethodGet, "/api/patients/1", "intruder-token", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("grantee read: got status %d: %s", resp.StatusCode, raw)
	}
	resp, raw = doRequest(t, srv, http.MethodGet, "/api/patients/1/medical-records", "intruder-token", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("grantee read records: got status %d: %s", resp.StatusCode, raw)
	}

	recordBody := map[string]any{
		"patient_id": 1,
		"doctor_id":  50,
		"visit_date": today,
		"diagnosis":  "resfrío común",
		"treatment":  "reposo e hidratación",
	}
	resp, _ = doRequest(t, srv, http.MethodPost, "/api/medical-records", "intruder-token", recordBody)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("read grant must not cover write: got status %d", resp.StatusCode)
	}

	// Subir el nivel a write habilita la escritura.
	resp, raw = doRequest(t, srv, http.MethodPut, "/api/access-permissions/"+created.ID, "patient1-token", map[string]any{
		"access_level":    "write",
		"effective_date":  today,
		"expiration_date": nextWeek,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("owner updating grant: got status %d: %s", resp.StatusCode, raw)
	}

	resp, raw = doRequest(t, srv, http.MethodPost, "/api/medical-records", "intruder-token", recordBody)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("write grant should cover write: got status %d: %s", resp.StatusCode, raw)
	}

	// El delegado ve sus propios grants.
	resp, raw = doRequest(t, srv, http.MethodGet, "/api/me/access-permissions", "intruder-token", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("grantee listing own grants: got status %d: %s", resp.StatusCode, raw)
	}
	var mine []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &mine); err != nil {
		t.Fatalf("cannot decode grants: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != created.ID {
		t.Fatalf("unexpected grant listing: %+v", mine)
	}

	// Revocar corta el acceso de inmediato.
	resp, raw = doRequest(t, srv, http.MethodDelete, "/api/access-permissions/"+created.ID, "patient1-token", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("owner revoking grant: got status %d: %s", resp.StatusCode, raw)
	}
	resp, _ = doRequest(t, srv, http.MethodGet, "/api/patients/1", "intruder-token", nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("revoked grant must not allow: got status %d", resp.StatusCode)
	}
}

func TestExpiredGrantDoesNotAllow(t *testing.T) {
	srv := newTestServer(t)
	createPatient(t, srv) // id 1

	lastMonth := time.Now().UTC().AddDate(0, -1, 0).Format("2006-01-02")
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")

	resp, raw := doRequest(t, srv, http.MethodPost, "/api/access-permissions", "patient1-token", map[string]any{
		"patient_id":      1,
		"grantee_id":      12,
		"access_level":    "read",
		"effective_date":  lastMonth,
		"expiration_date": yesterday,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("creating expired grant: got status %d: %s", resp.StatusCode, raw)
	}

	// El grant existe pero está vencido: deny con no_grant.
	resp, raw = doRequest(t, srv, http.MethodGet, "/api/patients/1", "intruder-token", nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expired grant: got status %d, want 403", resp.StatusCode)
	}
	var denial struct {
		Reason string `json:"reason"`
	}
	if err := json.Unmarshal(raw, &denial); err != nil {
		t.Fatalf("cannot decode denial: %v", err)
	}
	if denial.Reason != "no_grant" {
		t.Fatalf("got reason %q, want no_grant", denial.Reason)
	}
}

func TestGrantValidationOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	createPatient(t, srv)

	resp, raw := doRequest(t, srv, http.MethodPost, "/api/access-permissions", "patient1-token", map[string]any{
		"patient_id":      1,
		"grantee_id":      12,
		"access_level":    "read",
		"effective_date":  "2024-03-31",
		"expiration_date": "2024-03-01",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("inverted window: got status %d: %s", resp.StatusCode, raw)
	}
	var out struct {
		Field string `json:"field"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("cannot decode error: %v", err)
	}
	if out.Field != "expiration_date" {
		t.Fatalf("got field %q, want expiration_date", out.Field)
	}
}

func TestAppointmentFlowOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	createPatient(t, srv) // id 1

	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")

	// El doctor agenda; el propio paciente no escribe citas.
	body := map[string]any{
		"patient_id":       1,
		"doctor_id":        50,
		"appointment_date": tomorrow,
		"appointment_time": "10:30",
		"reason_for_visit": "control anual",
	}
	resp, _ := doRequest(t, srv, http.MethodPost, "/api/appointments", "patient1-token", body)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("patient scheduling: got status %d, want 403", resp.StatusCode)
	}

	resp, raw := doRequest(t, srv, http.MethodPost, "/api/appointments", "doctor-token", body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("doctor scheduling: got status %d: %s", resp.StatusCode, raw)
	}
	var created struct {
		ID     int64  `json:"id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(raw, &created); err != nil {
		t.Fatalf("cannot decode appointment: %v", err)
	}
	if created.Status != "Scheduled" {
		t.Fatalf("got status %q, want Scheduled", created.Status)
	}

	// El paciente ve sus propias citas.
	resp, raw = doRequest(t, srv, http.MethodGet, "/api/patients/1/appointments", "patient1-token", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("patient listing own appointments: got status %d: %s", resp.StatusCode, raw)
	}
	var items []struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		t.Fatalf("cannot decode appointments: %v", err)
	}
	if len(items) != 1 || items[0].ID != created.ID {
		t.Fatalf("unexpected appointments: %+v", items)
	}

	// Otro paciente no.
	resp, _ = doRequest(t, srv, http.MethodGet, "/api/patients/1/appointments", "intruder-token", nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("intruder listing appointments: got status %d, want 403", resp.StatusCode)
	}
}
